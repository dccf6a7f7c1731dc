package mem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/bf/internal/mem"
)

func TestBytesLoadUnallocatedIsZero(t *testing.T) {
	var m mem.Bytes
	v, err := m.Load(42)
	require.NoError(t, err)
	require.Equal(t, byte(0), v)
	require.Equal(t, uint(0), m.Size())
}

func TestBytesStorAndLoad(t *testing.T) {
	var m mem.Bytes
	m.PageSize = 4

	require.NoError(t, m.Stor(0, 'a'))
	require.NoError(t, m.Stor(3, 'd'))
	require.NoError(t, m.Stor(5, 'f')) // lands in a second page

	v, err := m.Load(0)
	require.NoError(t, err)
	require.Equal(t, byte('a'), v)

	v, err = m.Load(3)
	require.NoError(t, err)
	require.Equal(t, byte('d'), v)

	v, err = m.Load(5)
	require.NoError(t, err)
	require.Equal(t, byte('f'), v)

	// untouched cell within an allocated page reads back as 0
	v, err = m.Load(1)
	require.NoError(t, err)
	require.Equal(t, byte(0), v)
}

func TestBytesStorOutOfOrderAllocatesGapPage(t *testing.T) {
	var m mem.Bytes
	m.PageSize = 4

	require.NoError(t, m.Stor(20, 'z'))
	require.NoError(t, m.Stor(0, 'a')) // allocates a page before the first

	v, err := m.Load(0)
	require.NoError(t, err)
	require.Equal(t, byte('a'), v)

	v, err = m.Load(20)
	require.NoError(t, err)
	require.Equal(t, byte('z'), v)
}

func TestBytesLimitError(t *testing.T) {
	var m mem.Bytes
	m.PageSize = 4
	m.Limit = 10

	require.NoError(t, m.Stor(10, 'x'))

	_, err := m.Load(11)
	require.Error(t, err)
	limErr, ok := err.(mem.LimitError)
	require.True(t, ok)
	require.Equal(t, uint(11), limErr.Addr)
	require.Equal(t, "load", limErr.Op)

	err = m.Stor(11, 'y')
	require.Error(t, err)
	require.IsType(t, mem.LimitError{}, err)
}

func TestBytesDump(t *testing.T) {
	var m mem.Bytes
	m.PageSize = 4
	require.NoError(t, m.Stor(0, 'a'))
	require.NoError(t, m.Stor(4, 'b'))

	d := m.Dump()
	require.Equal(t, []uint{0, 4}, d.Bases)
	require.Equal(t, []uint{4, 4}, d.Sizes)
	require.Len(t, d.Pages, 2)
	require.Equal(t, byte('a'), d.Pages[0][0])
	require.Equal(t, byte('b'), d.Pages[1][0])
}
