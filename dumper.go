package main

import (
	"fmt"
	"io"
	"strings"
)

// Dumper renders a compiled program and the executor's current tape window
// for the --dump diagnostic, writing through a io.Writer (typically a
// logio.Writer so each line goes out as its own log record).
type Dumper struct {
	Ex  *Executor
	Out io.Writer
}

const dumpTapeWindow = 16

// Dump writes the current pointer and a window of tape cells centered on
// it, followed by the program's IR tree.
func (d Dumper) Dump(prog *IRRoot) {
	fmt.Fprintf(d.Out, "# bf dump\n")
	fmt.Fprintf(d.Out, "  ptr: %d\n", d.Ex.Ptr())
	d.dumpTape()
	fmt.Fprintf(d.Out, "  program:\n")
	d.dumpInsts(prog.Children, 2)
}

func (d Dumper) dumpTape() {
	tape := d.Ex.Tape()
	ptr := d.Ex.Ptr()
	lo := ptr - dumpTapeWindow
	if lo < 0 {
		lo = 0
	}
	hi := ptr + dumpTapeWindow

	var buf strings.Builder
	fmt.Fprintf(&buf, "  tape[%d:%d]:", lo, hi)
	for a := lo; a <= hi; a++ {
		v, err := tape.Read(a)
		if err != nil {
			continue
		}
		mark := byte(' ')
		if a == ptr {
			mark = '*'
		}
		fmt.Fprintf(&buf, " %c%02x", mark, v)
	}
	fmt.Fprintln(d.Out, buf.String())
}

func (d Dumper) dumpInsts(insts []Inst, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, inst := range insts {
		switch v := inst.(type) {
		case Add:
			fmt.Fprintf(d.Out, "%sadd %d\n", indent, int8(v.V))
		case VecAdd:
			fmt.Fprintf(d.Out, "%svecadd %v\n", indent, v.V)
		case MovePtr:
			fmt.Fprintf(d.Out, "%smove %d\n", indent, v.D)
		case Read:
			fmt.Fprintf(d.Out, "%sread x%d\n", indent, v.N)
		case Write:
			fmt.Fprintf(d.Out, "%swrite x%d\n", indent, v.N)
		case IRLoop:
			fmt.Fprintf(d.Out, "%sloop {\n", indent)
			d.dumpInsts(v.Children, depth+1)
			fmt.Fprintf(d.Out, "%s}\n", indent)
		case CountedLoop:
			fmt.Fprintf(d.Out, "%scounted step=%d vec=[%d,%d) {\n", indent, int8(v.FlagStep), v.VecBegin, v.VecEnd)
			d.dumpInsts(v.Body, depth+1)
			fmt.Fprintf(d.Out, "%s} tail {\n", indent)
			d.dumpInsts(v.Tail, depth+1)
			fmt.Fprintf(d.Out, "%s}\n", indent)
		case EmptyLoop:
			fmt.Fprintf(d.Out, "%sempty-loop\n", indent)
		case SetZero:
			fmt.Fprintf(d.Out, "%ssetzero\n", indent)
		case JumpToNextZero:
			fmt.Fprintf(d.Out, "%sscan %d\n", indent, v.Step)
		default:
			fmt.Fprintf(d.Out, "%s?%T\n", indent, v)
		}
	}
}
