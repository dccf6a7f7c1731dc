package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want []byte
	}{
		{"empty", "", nil},
		{"all significant", "+-><[],.", []byte("+-><[],.")},
		{"comments ignored", "hello + world - \n ><", []byte("+-><")},
		{"only comments", "this is a program", nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks := Lex([]byte(tc.src))
			require.Len(t, toks, len(tc.want))
			for i, want := range tc.want {
				require.Equal(t, want, toks[i].Char, "token %d", i)
			}
		})
	}
}

func TestLexLocation(t *testing.T) {
	toks := Lex([]byte("+\n >"))
	require.Len(t, toks, 2)
	require.Equal(t, Location{Line: 1, Col: 1}, toks[0].Loc)
	require.Equal(t, Location{Line: 2, Col: 2}, toks[1].Loc)
}
