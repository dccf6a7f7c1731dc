package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustAnalyze(t *testing.T, src string) *IRRoot {
	t.Helper()
	root := mustParse(t, src)
	return Analyze(root)
}

// renderBasicOps renders a flat (no-loop) IR sequence back into the
// MovePtr/Add vocabulary as a string of '>'/'<'/'+'/'-', for comparing
// against spec's worked canonicalization examples.
func renderBasicOps(t *testing.T, insts []Inst) string {
	t.Helper()
	var out []byte
	for _, inst := range insts {
		switch v := inst.(type) {
		case MovePtr:
			c := byte('>')
			if v.D < 0 {
				c = '<'
			}
			for i := 0; i < v.D || i < -v.D; i++ {
				out = append(out, c)
			}
		case Add:
			c := byte('+')
			n := int8(v.V)
			if n < 0 {
				c = '-'
				n = -n
			}
			for i := int8(0); i < n; i++ {
				out = append(out, c)
			}
		default:
			t.Fatalf("unexpected non-basic inst %T in flat sequence", inst)
		}
	}
	return string(out)
}

func TestSummarizeOpsReorderingRoundTrip(t *testing.T) {
	prog := mustAnalyze(t, "-<<<++><>>--<>>++<<+>>-")
	require.Equal(t, "<--<+<++>>>", renderBasicOps(t, prog.Children))
}

func TestSummarizeOpsCollapsesRunBeforeIO(t *testing.T) {
	// "+++--" collapses to its net delta (+1) before the write observes
	// it, rather than replaying all five ops individually.
	prog := mustAnalyze(t, "+++--.")
	require.Len(t, prog.Children, 2)
	require.Equal(t, Add{V: 1}, prog.Children[0])
	require.Equal(t, Write{N: 1}, prog.Children[1])
}

func TestSummarizeOpsCancelsToNothing(t *testing.T) {
	// "+-" nets to zero and is dropped entirely.
	prog := mustAnalyze(t, "+-.")
	require.Equal(t, []Inst{Write{N: 1}}, prog.Children)
}

func TestSummarizeOpsCoalescesIO(t *testing.T) {
	prog := mustAnalyze(t, "...")
	require.Equal(t, []Inst{Write{N: 3}}, prog.Children)
}

func TestSummarizeOpsOrdersAddAfterIOCorrectly(t *testing.T) {
	// the '+' happens after the '.' in forward order, so the write must
	// observe the cell's value *before* that add, not after.
	prog := mustAnalyze(t, ".+.")
	require.Equal(t, []Inst{
		Write{N: 1},
		Add{V: 1},
		Write{N: 1},
	}, prog.Children)
}

func TestSummarizeOpsOrdersAddAfterReadCorrectly(t *testing.T) {
	prog := mustAnalyze(t, ",+.")
	require.Equal(t, []Inst{
		Read{N: 1},
		Add{V: 1},
		Write{N: 1},
	}, prog.Children)
}

func TestAnalyzePureLoops(t *testing.T) {
	t.Run("empty loop (no add, net-zero move)", func(t *testing.T) {
		// the body moves the pointer but cancels to nothing, so the
		// pointer-only branch classifies it as an EmptyLoop.
		prog := mustAnalyze(t, "[><]")
		require.Equal(t, []Inst{EmptyLoop{}}, prog.Children)
	})

	t.Run("odd step is SetZero", func(t *testing.T) {
		prog := mustAnalyze(t, "[-]")
		require.Equal(t, []Inst{SetZero{}}, prog.Children)
	})

	t.Run("even nonzero step is a CountedLoop", func(t *testing.T) {
		prog := mustAnalyze(t, "[--]")
		require.Len(t, prog.Children, 1)
		cl, ok := prog.Children[0].(CountedLoop)
		require.True(t, ok)
		require.Equal(t, byte(254), cl.FlagStep)
	})

	t.Run("pure pointer scan", func(t *testing.T) {
		prog := mustAnalyze(t, "[>>]")
		require.Equal(t, []Inst{JumpToNextZero{Step: 2}}, prog.Children)
	})
}

func TestAnalyzeCountedMultiply(t *testing.T) {
	// ++++[>++++<-] : while cell 0 is nonzero, add 4 to cell 1 and
	// decrement cell 0 -- a balanced counted loop with flag_step -1.
	prog := mustAnalyze(t, "++++[>++++<-]")
	require.Len(t, prog.Children, 2)
	require.Equal(t, Add{V: 4}, prog.Children[0])
	cl, ok := prog.Children[1].(CountedLoop)
	require.True(t, ok)
	require.Equal(t, byte(255), cl.FlagStep) // -1 mod 256
}

func TestAnalyzeIOLoopKeepsIOOrder(t *testing.T) {
	prog := mustAnalyze(t, "[.,]")
	require.Len(t, prog.Children, 1)
	lp, ok := prog.Children[0].(IRLoop)
	require.True(t, ok)
	require.Equal(t, []Inst{Write{N: 1}, Read{N: 1}}, lp.Children)
}

func TestAnalyzeNestedLoop(t *testing.T) {
	prog := mustAnalyze(t, "[[-]>]")
	require.Len(t, prog.Children, 1)
	outer, ok := prog.Children[0].(IRLoop)
	require.True(t, ok)
	require.Len(t, outer.Children, 2)
	require.Equal(t, SetZero{}, outer.Children[0])
	require.Equal(t, MovePtr{D: 1}, outer.Children[1])
}
