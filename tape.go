package main

import "github.com/jcorbin/bf/internal/mem"

// Tape is the byte-addressed memory the executor walks the semantic IR
// against. The executor only ever sees a program through this interface; it
// does not know whether the backing store is flat or segmented.
type Tape interface {
	Read(ptr int64) (byte, error)
	Write(ptr int64, v byte) error

	// HighWater reports one past the highest non-negative index ever
	// written, for the "bf memory used" report.
	HighWater() int64

	// Allocated reports the number of bytes currently backing the tape, for
	// the "bf memory allocated" report.
	Allocated() int64
}

// FlatTape is a zero-initialized byte array that grows by doubling up to a
// hard Limit. Negative indices are rejected with PointerUnderflowError.
type FlatTape struct {
	cells     []byte
	limit     int64
	highWater int64
}

// NewFlatTape creates a FlatTape with the given initial size and hard limit.
// A limit of 0 means unbounded.
func NewFlatTape(initialSize int, limit int64) *FlatTape {
	return &FlatTape{cells: make([]byte, initialSize), limit: limit}
}

func (t *FlatTape) Read(ptr int64) (byte, error) {
	if ptr < 0 {
		return 0, PointerUnderflowError{Addr: ptr}
	}
	if ptr >= int64(len(t.cells)) {
		return 0, nil
	}
	return t.cells[ptr], nil
}

func (t *FlatTape) Write(ptr int64, v byte) error {
	if ptr < 0 {
		return PointerUnderflowError{Addr: ptr}
	}
	if ptr >= int64(len(t.cells)) {
		if err := t.grow(ptr + 1); err != nil {
			return err
		}
	}
	t.cells[ptr] = v
	if ptr+1 > t.highWater {
		t.highWater = ptr + 1
	}
	return nil
}

func (t *FlatTape) grow(need int64) error {
	if t.limit != 0 && need > t.limit {
		return MemoryLimitExceededError{Addr: need - 1}
	}
	size := int64(len(t.cells))
	if size == 0 {
		size = 1
	}
	for size < need {
		size *= 2
		if t.limit != 0 && size > t.limit {
			size = t.limit
		}
	}
	grown := make([]byte, size)
	copy(grown, t.cells)
	t.cells = grown
	return nil
}

func (t *FlatTape) HighWater() int64 { return t.highWater }
func (t *FlatTape) Allocated() int64 { return int64(len(t.cells)) }

// SegmentedTape is a directory of fixed-size blocks in two fans (positive
// offsets from the start, negative offsets from the end), supporting
// negative pointers. The directory grows by doubling as either fan's page
// count grows, and retains unused blocks until the SegmentedTape itself is
// discarded.
type SegmentedTape struct {
	core      mem.Segmented
	highWater int64
}

// NewSegmentedTape creates a SegmentedTape with the given block size and
// hard limit (on pointer magnitude). A limit of 0 means unbounded.
func NewSegmentedTape(blockSize int, limit int64) *SegmentedTape {
	return &SegmentedTape{core: mem.Segmented{PageSize: uint(blockSize), Limit: uint(limit)}}
}

func (t *SegmentedTape) Read(ptr int64) (byte, error) {
	v, err := t.core.Load(ptr)
	if err != nil {
		return 0, toMemError(err, ptr)
	}
	return v, nil
}

func (t *SegmentedTape) Write(ptr int64, v byte) error {
	if err := t.core.Stor(ptr, v); err != nil {
		return toMemError(err, ptr)
	}
	if ptr >= 0 && ptr+1 > t.highWater {
		t.highWater = ptr + 1
	}
	return nil
}

func (t *SegmentedTape) HighWater() int64 { return t.highWater }

func (t *SegmentedTape) Allocated() int64 {
	d := t.core.Dump()
	var n int64
	for _, sz := range d.Pos.Sizes {
		n += int64(sz)
	}
	for _, sz := range d.Neg.Sizes {
		n += int64(sz)
	}
	return n
}

func toMemError(err error, ptr int64) error {
	if _, ok := err.(mem.LimitError); ok {
		return MemoryLimitExceededError{Addr: ptr}
	}
	return err
}
