package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Root {
	t.Helper()
	root, err := Parse(Lex([]byte(src)))
	require.NoError(t, err)
	return root
}

func TestParseBracketBalance(t *testing.T) {
	t.Run("unmatched left", func(t *testing.T) {
		_, err := Parse(Lex([]byte("[+")))
		require.Error(t, err)
		require.IsType(t, UnmatchedLeftBracketError{}, err)
	})

	t.Run("unmatched right", func(t *testing.T) {
		_, err := Parse(Lex([]byte("+]")))
		require.Error(t, err)
		require.IsType(t, UnmatchedRightBracketError{}, err)
	})

	t.Run("nested balance", func(t *testing.T) {
		root := mustParse(t, "[[+]-]")
		require.Len(t, root.Children, 1)
		outer, ok := root.Children[0].(Loop)
		require.True(t, ok)
		require.True(t, outer.Summary.HasNestedLoops)
		require.True(t, outer.Summary.HasAdd)
	})
}

func TestParseSummary(t *testing.T) {
	root := mustParse(t, "+>+<-")
	require.True(t, root.Summary.HasAdd)
	require.True(t, root.Summary.HasAddPtr)
	require.False(t, root.Summary.HasIO)
	require.True(t, root.Summary.PtrMoveValid)
	require.Equal(t, 0, root.Summary.PtrMove)
	require.Equal(t, 0, root.Summary.MinPtr)
	require.Equal(t, 1, root.Summary.MaxPtr)
}

func TestParseNestedLoopBlocksPtrMoveValidity(t *testing.T) {
	// the loop's own net pointer delta (a direct '>') is provably 1.
	root := mustParse(t, "[>]")
	loop := root.Children[0].(Loop)
	require.True(t, loop.Summary.PtrMoveValid)
	require.Equal(t, 1, loop.Summary.PtrMove)

	// but the root scope contains that loop as a nested loop whose own net
	// delta isn't 0, so the root's own PtrMove isn't provably valid.
	require.False(t, root.Summary.PtrMoveValid)
}

func TestParseIOSummary(t *testing.T) {
	root := mustParse(t, ",.")
	require.True(t, root.Summary.HasIO)
	require.False(t, root.Summary.HasAdd)
}
