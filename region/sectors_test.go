package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelforge/nbtkit/errs"
)

func TestAllocatorFirstFitSplitsRun(t *testing.T) {
	a := newAllocator(12) // sectors 2..11 free

	require.Equal(t, uint32(2), a.allocate(3))
	require.Equal(t, uint32(5), a.allocate(2))
	require.Equal(t, []run{{start: 7, count: 5}}, a.free)
}

func TestAllocatorExtendsWhenFull(t *testing.T) {
	a := newAllocator(2) // nothing beyond the header

	require.Equal(t, uint32(2), a.allocate(4))
	require.Equal(t, uint32(6), a.allocate(1))
	require.Equal(t, uint32(7), a.fileSectors)
	require.Empty(t, a.free)
}

func TestAllocatorReleaseCoalesces(t *testing.T) {
	a := newAllocator(2)
	first := a.allocate(2)
	second := a.allocate(2)
	third := a.allocate(2)

	a.release(run{start: first, count: 2})
	a.release(run{start: third, count: 2})
	require.Len(t, a.free, 2, "non-adjacent runs stay separate")

	a.release(run{start: second, count: 2})
	require.Equal(t, []run{{start: 2, count: 6}}, a.free,
		"freeing the middle run merges all three")

	require.Equal(t, uint32(2), a.allocate(6), "coalesced run satisfies a large request")
}

func TestAllocatorPrefersLowestFit(t *testing.T) {
	a := newAllocator(2)
	lowStart := a.allocate(1)
	keep := a.allocate(1)
	highStart := a.allocate(3)
	_ = keep

	a.release(run{start: lowStart, count: 1})
	a.release(run{start: highStart, count: 3})

	// A 1-sector request fits the low run; a 3-sector one must skip it.
	require.Equal(t, highStart, a.allocate(3))
	require.Equal(t, lowStart, a.allocate(1))
}

func TestRebuildComputesGaps(t *testing.T) {
	a, err := rebuild(10, []run{
		{start: 4, count: 2},
		{start: 8, count: 1},
	})
	require.NoError(t, err)
	require.Equal(t, []run{
		{start: 2, count: 2},
		{start: 6, count: 2},
		{start: 9, count: 1},
	}, a.free)
}

func TestRebuildRejectsOverlap(t *testing.T) {
	_, err := rebuild(10, []run{
		{start: 2, count: 3},
		{start: 4, count: 2},
	})
	require.ErrorIs(t, err, errs.ErrInvalidHeader)
}

func TestRebuildRunPastFileEnd(t *testing.T) {
	// A location entry may claim sectors beyond the physical file; the
	// claimed space is treated as occupied rather than rejected.
	a, err := rebuild(4, []run{{start: 3, count: 5}})
	require.NoError(t, err)
	require.Equal(t, uint32(8), a.fileSectors)
	require.Equal(t, []run{{start: 2, count: 1}}, a.free)
}
