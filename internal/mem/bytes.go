package mem

// DefaultBytesPageSize provides a default for Bytes.PageSize.
const DefaultBytesPageSize = 512

// Bytes implements a byte-oriented paged memory, addressed by a
// non-negative uint. It is the building block for each of the two fans of a
// Segmented tape.
type Bytes struct {
	PagedCore
	pages [][]byte
}

// Size returns an address one position higher than the last position in the
// last page allocated so far.
func (m *Bytes) Size() uint {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + uint(len(m.pages[i]))
	}
	return 0
}

// Load returns a single value from the given address.
// Unallocated pages are left unallocated, resulting in implicit 0 values.
// Returns an error if addr exceeds any Limit.
func (m *Bytes) Load(addr uint) (byte, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}

	if m.PageSize == 0 || len(m.pages) == 0 {
		return 0, nil
	}

	pageID := m.findPage(addr)
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := int(addr) - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}

	return 0, nil
}

// Stor stores a single value at addr, allocating pages if necessary.
// Returns an error if Limit would be exceeded.
func (m *Bytes) Stor(addr uint, val byte) error {
	if err := m.checkLimit(addr, "stor"); err != nil {
		return err
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultBytesPageSize
	}

	// findPage's binary search only ever lands on an existing page's index;
	// it never reports the append-a-new-page sentinel (len(bases)) except
	// when there are no pages at all. So when addr falls past the page
	// findPage found, walk forward a page at a time until allocPage either
	// lands in range or appends the right one.
	for pageID := m.findPage(addr); ; pageID++ {
		base, size, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= size {
				continue
			}
			page = page[skip:]
		}
		if len(page) > 0 {
			page[0] = val
		}
		return nil
	}
}

func (m *Bytes) allocPage(pageID int, addr uint) (base, size uint, page []byte) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if isNew {
		page = make([]byte, size)
		if pageID == len(m.bases) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}

// BytesDump provides data for testing.
type BytesDump struct {
	Bases []uint
	Sizes []uint
	Pages [][]byte
}

// Dump memory data for testing.
func (m *Bytes) Dump() (d BytesDump) {
	d.Bases = m.bases
	d.Sizes = m.sizes
	d.Pages = m.pages
	return d
}
