package main

import (
	"context"
	"fmt"
)

// Executor walks compiled IR against a Tape. It is built by New with
// Option values and run with Execute.
type Executor struct {
	Core

	tape Tape
	ptr  int64

	tapeLimit    int64
	initialSize  int
	negativeTape bool
	trace        bool
}

const defaultSegmentPageSize = 512

// buildTape lazily constructs the tape model chosen by options, the first
// time Execute runs.
func (ex *Executor) buildTape() {
	if ex.tape != nil {
		return
	}
	if ex.negativeTape {
		ex.tape = NewSegmentedTape(defaultSegmentPageSize, ex.tapeLimit)
	} else {
		ex.tape = NewFlatTape(ex.initialSize, ex.tapeLimit)
	}
}

// Execute runs a compiled program to completion, or until ctx is done, or
// until a tape, I/O or dead-loop error halts it. A nil return means the
// program ran to the end of its own instruction stream.
func (ex *Executor) Execute(ctx context.Context, prog *IRRoot) (err error) {
	ex.buildTape()
	defer func() {
		if r := recover(); r != nil {
			if he, ok := r.(haltError); ok {
				err = he.error
				return
			}
			panic(r)
		}
	}()
	ex.execSeq(ctx, prog.Children)
	if ex.out != nil {
		if ferr := ex.out.Flush(); ferr != nil && err == nil {
			err = OutputFailedError{Err: ferr}
		}
	}
	return err
}

// Ptr reports the current tape pointer, for diagnostics.
func (ex *Executor) Ptr() int64 { return ex.ptr }

// Tape reports the underlying Tape, for diagnostics (memory reports, dump).
func (ex *Executor) Tape() Tape { ex.buildTape(); return ex.tape }

func (ex *Executor) execSeq(ctx context.Context, insts []Inst) {
	for _, inst := range insts {
		ex.execInst(ctx, inst)
	}
}

func (ex *Executor) execInst(ctx context.Context, inst Inst) {
	if ex.trace {
		ex.logf("TRACE", "@%d %#v", ex.ptr, inst)
	}
	switch v := inst.(type) {
	case Add:
		ex.cellAdd(ex.ptr, v.V)

	case VecAdd:
		for i, d := range v.V {
			if d != 0 {
				ex.cellAdd(ex.ptr+int64(i), d)
			}
		}

	case MovePtr:
		ex.ptr += int64(v.D)

	case Read:
		ex.doRead(v.N)

	case Write:
		ex.doWrite(v.N)

	case IRLoop:
		defer ex.traceIndent()()
		for ex.load(ex.ptr) != 0 {
			ex.checkDone(ctx)
			ex.execSeq(ctx, v.Children)
		}

	case CountedLoop:
		ex.execCountedLoop(ctx, v)

	case EmptyLoop:
		if entry := ex.load(ex.ptr); entry != 0 {
			ex.halt(DeadLoopError{Entry: entry, Step: 0})
		}

	case SetZero:
		ex.store(ex.ptr, 0)

	case JumpToNextZero:
		for ex.load(ex.ptr) != 0 {
			ex.checkDone(ctx)
			ex.ptr += int64(v.Step)
		}

	default:
		panic(fmt.Sprintf("bf: unhandled instruction %T", inst))
	}
}

func (ex *Executor) checkDone(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		ex.halt(err)
	}
}

func (ex *Executor) load(ptr int64) byte {
	v, err := ex.tape.Read(ptr)
	if err != nil {
		ex.halt(err)
	}
	return v
}

func (ex *Executor) store(ptr int64, v byte) {
	if err := ex.tape.Write(ptr, v); err != nil {
		ex.halt(err)
	}
}

func (ex *Executor) cellAdd(ptr int64, d byte) {
	ex.store(ptr, ex.load(ptr)+d)
}

func (ex *Executor) doRead(n uint) {
	var b byte
	for i := uint(0); i < n; i++ {
		v, err := ex.readByte()
		if err != nil {
			ex.halt(err)
		}
		b = v
	}
	ex.store(ex.ptr, b)
}

func (ex *Executor) doWrite(n uint) {
	v := ex.load(ex.ptr)
	for i := uint(0); i < n; i++ {
		if err := ex.writeByte(v); err != nil {
			ex.halt(err)
		}
	}
}

// execCountedLoop runs a CountedLoop: computes the iteration count from the
// flag cell's entry value and step (halting with DeadLoopError if the
// residue is unreachable under mod-256 arithmetic), runs Body that many
// times, then Tail once.
func (ex *Executor) execCountedLoop(ctx context.Context, cl CountedLoop) {
	entry := ex.load(ex.ptr)
	if entry == 0 {
		return
	}
	iters, ok := countedIterations(entry, cl.FlagStep)
	if !ok {
		ex.halt(DeadLoopError{Entry: entry, Step: cl.FlagStep})
	}
	defer ex.traceIndent()()
	for i := uint(0); i < iters; i++ {
		ex.checkDone(ctx)
		ex.execSeq(ctx, cl.Body)
	}
	ex.execSeq(ctx, cl.Tail)
}

// traceIndent nests trace output one level deeper for the duration of a
// loop body, so --trace output visually reflects IRLoop/CountedLoop
// recursion instead of printing every instruction at the same depth. A
// no-op when tracing is off or no log function was configured.
func (ex *Executor) traceIndent() func() {
	if !ex.trace || ex.logfn == nil {
		return func() {}
	}
	return ex.withLogPrefix("  ")
}

// countedIterations finds the smallest k in [1,256) such that
// entry + k*step == 0 (mod 256), reporting false if none exists (a dead
// loop: gcd(step, 256) does not divide (256-entry) mod 256).
func countedIterations(entry, step byte) (uint, bool) {
	g := gcdInt(int(step), 256)
	need := (256 - int(entry)) % 256
	if need%g != 0 {
		return 0, false
	}
	v := int(entry)
	for k := 1; k <= 256; k++ {
		v = (v + int(step)) & 0xff
		if v == 0 {
			return uint(k), true
		}
	}
	return 0, false
}

func gcdInt(a, b int) int {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 256
	}
	return a
}
