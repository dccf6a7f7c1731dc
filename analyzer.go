package main

// Analyze rewrites a parsed Root into the semantic IR: straight-line basic-op
// runs are canonicalized by summarizeOps, and each Loop is dispatched by its
// static Summary into one of the three loop-analysis paths (pure, I/O,
// nested).
func Analyze(root *Root) *IRRoot {
	return &IRRoot{Children: analyzeSeq(root.Children)}
}

// analyzeSeq walks a sequence of AST nodes left to right, collapsing each
// maximal run of basic ops through summarizeOps and dispatching each Loop
// through analyzeLoop, concatenating the results in order.
func analyzeSeq(nodes []Node) []Inst {
	var out []Inst
	i := 0
	for i < len(nodes) {
		if lp, ok := nodes[i].(Loop); ok {
			out = append(out, analyzeLoop(lp))
			i++
			continue
		}
		j := i
		var run []BasicOp
		for j < len(nodes) {
			bo, ok := nodes[j].(BasicOp)
			if !ok {
				break
			}
			run = append(run, bo)
			j++
		}
		out = append(out, summarizeOps(run)...)
		i = j
	}
	return out
}

// analyzeLoop dispatches a parsed Loop node to one of the three loop
// analysis paths by its static summary.
func analyzeLoop(lp Loop) Inst {
	switch {
	case !lp.Summary.HasNestedLoops && !lp.Summary.HasIO:
		return analyzePureLoop(lp)
	case !lp.Summary.HasNestedLoops && lp.Summary.HasIO:
		return analyzeIOLoop(lp)
	default:
		return analyzeNestedLoop(lp)
	}
}

func basicOps(nodes []Node) []BasicOp {
	ops := make([]BasicOp, len(nodes))
	for i, n := range nodes {
		ops[i] = n.(BasicOp)
	}
	return ops
}

// analyzeIOLoop handles a loop with I/O but no nested loops: its body is a
// single straight-line run, so the general summarize_ops algorithm already
// does exactly what's needed (merging +/- and ,/. runs, barrier-flushing
// across I/O, honoring any pointer motion).
func analyzeIOLoop(lp Loop) Inst {
	return IRLoop{Children: summarizeOps(basicOps(lp.Children))}
}

// analyzeNestedLoop handles a loop containing further nested loops: split on
// loop boundaries, summarize_ops each straight-line segment, recurse on each
// nested loop, and concatenate — precisely analyzeSeq's job.
func analyzeNestedLoop(lp Loop) Inst {
	return IRLoop{Children: analyzeSeq(lp.Children)}
}

// analyzePureLoop handles a loop with no nested loops and no I/O, classified
// by which of has_add/has_addptr hold.
func analyzePureLoop(lp Loop) Inst {
	s := lp.Summary
	switch {
	case !s.HasAdd && !s.HasAddPtr:
		return EmptyLoop{}

	case s.HasAdd && !s.HasAddPtr:
		net := sumAddDeltas(basicOps(lp.Children))
		flagStep := byte(net)
		if flagStep == 0 {
			return EmptyLoop{}
		}
		if flagStep%2 != 0 {
			// odd step: gcd(step, 256) == 1 divides any residue, so this
			// always terminates regardless of the entry value.
			return SetZero{}
		}
		return CountedLoop{
			Body:     []Inst{Add{V: flagStep}},
			FlagStep: flagStep,
		}

	case !s.HasAdd && s.HasAddPtr:
		if !s.PtrMoveValid || s.PtrMove == 0 {
			return EmptyLoop{}
		}
		return JumpToNextZero{Step: s.PtrMove}

	default:
		return analyzeMixedLoop(lp)
	}
}

// analyzeMixedLoop handles a loop with both has_add and has_addptr, and
// neither nested loops nor I/O. It simulates one iteration on a zeroed
// buffer to learn the flag cell's per-iteration step, then picks between an
// ordinary Loop (the flag cell isn't what terminates it), a CountedLoop (a
// balanced loop whose iteration count is computable), or an ordinary Loop
// over the canonical body (an unbalanced, non-counted loop).
func analyzeMixedLoop(lp Loop) Inst {
	ops := basicOps(lp.Children)
	s := lp.Summary
	delta := denseDeltas(ops, s.MinPtr, s.MaxPtr)
	flagStep := delta[-s.MinPtr]

	if flagStep == 0 {
		return IRLoop{Children: summarizeOps(ops)}
	}

	if s.PtrMoveValid && s.PtrMove == 0 {
		body, vecBegin, vecEnd := canonicalizeDense(delta, s.MinPtr)
		return CountedLoop{
			Body:     body,
			FlagStep: flagStep,
			VecBegin: vecBegin,
			VecEnd:   vecEnd,
		}
	}

	return IRLoop{Children: summarizeOps(ops)}
}

// sumAddDeltas sums the signed deltas of a straight-line run of Add/Sub ops
// (no pointer motion, no I/O — only valid for the has_add-without-addptr
// pure-loop case), reducing mod 256 into the result byte.
func sumAddDeltas(ops []BasicOp) byte {
	var v byte
	for _, op := range ops {
		switch op.Kind {
		case OpAdd:
			v++
		case OpSub:
			v--
		}
	}
	return v
}

// denseDeltas forward-simulates a straight-line, I/O-free run of basic ops
// into a dense per-offset delta array spanning [minPtr, maxPtr], used by the
// mixed-loop analysis to learn the flag step and to build a CountedLoop body.
func denseDeltas(ops []BasicOp, minPtr, maxPtr int) []byte {
	delta := make([]byte, maxPtr-minPtr+1)
	p := -minPtr
	for _, op := range ops {
		switch op.Kind {
		case OpAdd:
			delta[p]++
		case OpSub:
			delta[p]--
		case OpIncPtr:
			p++
		case OpDecPtr:
			p--
		}
	}
	return delta
}

// canonicalizeDense renders a dense per-offset delta array (indexed 0 at
// offset minPtr) into canonical IR: a vectorized middle of VecAdd blocks
// plus a scalar fringe when the range is large enough to be worth
// vectorizing, or plain ascending Add/MovePtr otherwise. Returns the body
// along with the absolute offsets the vectorized middle begins and ends at
// (both equal to minPtr when no vectorization was applied). The pointer is
// always left back at offset 0 (the loop's resting place) at the end.
func canonicalizeDense(delta []byte, minPtr int) (body []Inst, vecBegin, vecEnd int) {
	cur := 0
	emitMove := func(to int) {
		if to != cur {
			body = append(body, MovePtr{D: to - cur})
			cur = to
		}
	}

	span := len(delta)
	if span < SmallBodyThreshold {
		for i, v := range delta {
			if v == 0 {
				continue
			}
			off := minPtr + i
			emitMove(off)
			body = append(body, Add{V: v})
		}
		emitMove(0)
		return body, minPtr, minPtr
	}

	vecBegin, vecEnd = minPtr, minPtr
	i := 0
	for i+VecWidth <= span {
		off := minPtr + i
		emitMove(off)
		var v [VecWidth]byte
		copy(v[:], delta[i:i+VecWidth])
		body = append(body, VecAdd{V: v})
		i += VecWidth
		vecEnd = minPtr + i
	}
	for ; i < span; i++ {
		if delta[i] == 0 {
			continue
		}
		off := minPtr + i
		emitMove(off)
		body = append(body, Add{V: delta[i]})
	}
	emitMove(0)
	return body, vecBegin, vecEnd
}

// ioItem is a deferred I/O effect captured while summarizeOps walks a
// straight-line op run in reverse: an optional flushed pending Add (the net
// effect of the adds that follow this I/O on the same cell in forward order,
// up to the next I/O there), paired with the coalesced Read/Write run it
// follows.
type ioItem struct {
	pos      int
	preAdd   byte
	preDirty bool
	kind     OpKind
	n        uint
}

// summarizeOps is the heart of basic-op rewriting (spec §4.3.1): given a
// straight-line sequence of basic ops, it produces a canonical offset-sorted
// IR segment. Non-I/O cell updates are free to commute (they touch
// independent cells); I/O acts as a barrier, so a run is walked in reverse,
// accumulating pending per-cell deltas and flushing them out whenever an I/O
// op needs to observe that cell.
func summarizeOps(ops []BasicOp) []Inst {
	if len(ops) == 0 {
		return nil
	}

	minPtr, maxPtr, net := opsRange(ops)
	mem := make([]byte, maxPtr-minPtr+1)
	dirty := make([]bool, len(mem))

	p := net - minPtr
	var deferred []ioItem
	lastIOIdx := -2

	for idx := len(ops) - 1; idx >= 0; idx-- {
		op := ops[idx]
		switch op.Kind {
		case OpAdd:
			mem[p]++
			dirty[p] = true
		case OpSub:
			mem[p]--
			dirty[p] = true
		case OpIncPtr:
			p--
		case OpDecPtr:
			p++
		case OpRead, OpWrite:
			if n := len(deferred); n > 0 && lastIOIdx == idx+1 &&
				deferred[n-1].kind == op.Kind && deferred[n-1].pos == p {
				deferred[n-1].n++
			} else {
				item := ioItem{pos: p, kind: op.Kind, n: 1}
				if dirty[p] {
					item.preAdd, item.preDirty = mem[p], true
					mem[p], dirty[p] = 0, false
				}
				deferred = append(deferred, item)
			}
			lastIOIdx = idx
		}
	}

	var out []Inst
	cur := 0
	emitMove := func(to int) {
		if to != cur {
			out = append(out, MovePtr{D: to - cur})
			cur = to
		}
	}

	lo, hi := 0, len(mem)-1
	for lo <= hi && mem[lo] == 0 {
		lo++
	}
	for hi >= lo && mem[hi] == 0 {
		hi--
	}
	// emit in descending-offset order (highest offset first), which is
	// what falls out of the reverse walk above without a second
	// re-reversal, and matches the worked reordering example.
	for i := hi; i >= lo; i-- {
		if !dirty[i] || mem[i] == 0 {
			continue
		}
		emitMove(minPtr + i)
		out = append(out, Add{V: mem[i]})
	}

	for k := len(deferred) - 1; k >= 0; k-- {
		item := deferred[k]
		emitMove(minPtr + item.pos)
		switch item.kind {
		case OpRead:
			out = append(out, Read{N: item.n})
		case OpWrite:
			out = append(out, Write{N: item.n})
		}
		// preAdd was accumulated from ops after this I/O in forward order
		// (the reverse walk saw them first), so it must follow the I/O it
		// was flushed ahead of, restoring original execution order.
		if item.preDirty {
			out = append(out, Add{V: item.preAdd})
		}
	}

	emitMove(net)
	return out
}

// opsRange computes the minimum and maximum pointer offsets reached, and the
// net pointer delta, of a straight-line (no nested loop) run of basic ops.
func opsRange(ops []BasicOp) (minPtr, maxPtr, net int) {
	p := 0
	for _, op := range ops {
		switch op.Kind {
		case OpIncPtr:
			p++
		case OpDecPtr:
			p--
		default:
			continue
		}
		if p < minPtr {
			minPtr = p
		}
		if p > maxPtr {
			maxPtr = p
		}
	}
	return minPtr, maxPtr, p
}
