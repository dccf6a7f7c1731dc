package mem

// Segmented implements a byte-oriented paged memory addressed by a signed
// int64, by directing non-negative addresses into one Bytes fan and negative
// addresses into a second Bytes fan (indexed by -addr-1). Each fan grows its
// own page directory independently; pages are retained once allocated.
//
// This is the "segmented array" tape model: a page directory in two fans,
// resized by doubling as either fan's page count grows, retaining unused
// pages until the whole Segmented value is discarded.
type Segmented struct {
	// PageSize sized newly allocated pages in either fan.
	PageSize uint

	// Limit bounds the magnitude of any addressed position; 0 means
	// unbounded.
	Limit uint

	pos Bytes
	neg Bytes
}

func (m *Segmented) init() {
	if m.pos.PageSize == 0 {
		sz := m.PageSize
		if sz == 0 {
			sz = DefaultBytesPageSize
		}
		m.pos.PageSize = sz
		m.neg.PageSize = sz
		m.pos.Limit = m.Limit
		m.neg.Limit = m.Limit
	}
}

// Load returns a single value from the given address.
func (m *Segmented) Load(addr int64) (byte, error) {
	m.init()
	if addr >= 0 {
		return m.pos.Load(uint(addr))
	}
	return m.neg.Load(uint(-addr - 1))
}

// Stor stores a single value at addr, allocating pages if necessary.
func (m *Segmented) Stor(addr int64, val byte) error {
	m.init()
	if addr >= 0 {
		return m.pos.Stor(uint(addr), val)
	}
	return m.neg.Stor(uint(-addr-1), val)
}

// LowWater returns the lowest negative address ever allocated, or 0 if none.
func (m *Segmented) LowWater() int64 {
	if sz := m.neg.Size(); sz > 0 {
		return -int64(sz)
	}
	return 0
}

// HighWater returns an address one past the highest positive address ever
// allocated, or 0 if none.
func (m *Segmented) HighWater() int64 {
	return int64(m.pos.Size())
}

// SegmentedDump provides data for testing.
type SegmentedDump struct {
	Pos BytesDump
	Neg BytesDump
}

// Dump memory data for testing.
func (m *Segmented) Dump() SegmentedDump {
	return SegmentedDump{Pos: m.pos.Dump(), Neg: m.neg.Dump()}
}
