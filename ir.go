package main

// VecWidth is the compile-time SIMD width used by VecAdd and by the
// analyzer's decision to split a counted loop's body into a vectorized
// middle and a scalar fringe. It is a constant chosen for the host rather
// than a runtime value: IR produced with one width is not portable to a host
// built with a different one.
const VecWidth = 32

// SmallBodyThreshold is the dynamic-range cutoff (exclusive) under which a
// counted loop's body is considered "small" and left entirely scalar rather
// than split into a vectorized middle and scalar fringe.
const SmallBodyThreshold = VecWidth / 2

// Inst is one of the eleven semantic IR variants.
type Inst interface{ inst() }

// IRRoot is the whole compiled program.
type IRRoot struct{ Children []Inst }

// Add adds V into tape[ptr], mod 256.
type Add struct{ V byte }

// VecAdd adds a VecWidth-wide vector into tape[ptr : ptr+VecWidth], wrapping
// per byte. Used for the dense middle of a large counted-loop body.
type VecAdd struct{ V [VecWidth]byte }

// MovePtr adds D to the pointer.
type MovePtr struct{ D int }

// Read skips N-1 input bytes, then reads one into tape[ptr].
type Read struct{ N uint }

// Write emits tape[ptr] N times.
type Write struct{ N uint }

// IRLoop executes Children repeatedly while tape[ptr] != 0.
type IRLoop struct{ Children []Inst }

// CountedLoop is a balanced, I/O-free loop whose iteration count is
// computable from tape[ptr] and FlagStep at entry. Body runs that many
// times, Tail runs once after. VecBegin/VecEnd record the offsets (relative to the
// loop's resting pointer) covered by any VecAdd within Body, for diagnostics.
type CountedLoop struct {
	Body     []Inst
	Tail     []Inst
	FlagStep byte
	VecBegin int
	VecEnd   int
}

// EmptyLoop is a no-op if tape[ptr] == 0 on entry; otherwise it is a dead
// loop (the flag cell can never reach 0 from a nonzero entry value under
// this loop's semantics).
type EmptyLoop struct{}

// SetZero sets tape[ptr] = 0. Emitted for loops statically known to
// terminate by zeroing their own flag cell without moving the pointer.
type SetZero struct{}

// JumpToNextZero repeatedly adds Step to ptr until tape[ptr] == 0.
type JumpToNextZero struct{ Step int }

func (IRRoot) inst()         {}
func (Add) inst()            {}
func (VecAdd) inst()         {}
func (MovePtr) inst()        {}
func (Read) inst()           {}
func (Write) inst()          {}
func (IRLoop) inst()         {}
func (CountedLoop) inst()    {}
func (EmptyLoop) inst()      {}
func (SetZero) inst()        {}
func (JumpToNextZero) inst() {}
