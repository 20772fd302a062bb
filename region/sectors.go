package region

import (
	"fmt"
	"slices"

	"github.com/voxelforge/nbtkit/errs"
)

// run is a contiguous span of sectors.
type run struct {
	start uint32
	count uint32
}

func (r run) end() uint32 {
	return r.start + r.count
}

// allocator tracks sector occupancy for one region file. No free list is
// persisted on disk; the allocator is rebuilt from the location table at
// open time and mutated in memory until the file is closed.
//
// Free runs are kept sorted by start sector and never adjacent, so first-fit
// is a linear scan and every free() coalesces with its neighbors.
type allocator struct {
	free        []run
	fileSectors uint32
}

// newAllocator returns an allocator for a file spanning fileSectors sectors
// with everything beyond the header free.
func newAllocator(fileSectors uint32) *allocator {
	a := &allocator{fileSectors: max(fileSectors, headerSectors)}
	if a.fileSectors > headerSectors {
		a.free = []run{{start: headerSectors, count: a.fileSectors - headerSectors}}
	}

	return a
}

// rebuild derives the free-run list from the live location runs. Runs that
// overlap each other or reach into the header make the table unusable and
// fail with ErrInvalidHeader.
func rebuild(fileSectors uint32, live []run) (*allocator, error) {
	occupied := slices.Clone(live)
	slices.SortFunc(occupied, func(x, y run) int {
		return int(int64(x.start) - int64(y.start))
	})

	a := &allocator{fileSectors: max(fileSectors, headerSectors)}
	cursor := uint32(headerSectors)
	for _, r := range occupied {
		if r.start < cursor {
			return nil, fmt.Errorf("%w: sector runs overlap at sector %d", errs.ErrInvalidHeader, r.start)
		}
		if r.start > cursor {
			a.free = append(a.free, run{start: cursor, count: r.start - cursor})
		}
		cursor = r.end()
	}

	// A run may point past the current physical end; the space it claims is
	// occupied either way, and reads against it fail as corrupt sectors.
	a.fileSectors = max(a.fileSectors, cursor)
	if cursor < a.fileSectors {
		a.free = append(a.free, run{start: cursor, count: a.fileSectors - cursor})
	}

	return a, nil
}

// allocate reserves count sectors, scanning free runs in ascending offset
// order and splitting the first one large enough. When no run fits, the file
// is logically extended.
func (a *allocator) allocate(count uint32) uint32 {
	for i, r := range a.free {
		if r.count < count {
			continue
		}
		if r.count == count {
			a.free = slices.Delete(a.free, i, i+1)
		} else {
			a.free[i] = run{start: r.start + count, count: r.count - count}
		}

		return r.start
	}

	start := a.fileSectors
	a.fileSectors += count

	return start
}

// release returns a run to the free list, coalescing with adjacent runs.
func (a *allocator) release(r run) {
	if r.count == 0 {
		return
	}

	i, _ := slices.BinarySearchFunc(a.free, r, func(x, y run) int {
		return int(int64(x.start) - int64(y.start))
	})
	a.free = slices.Insert(a.free, i, r)

	// Merge with the next run, then the previous one.
	if i+1 < len(a.free) && a.free[i].end() == a.free[i+1].start {
		a.free[i].count += a.free[i+1].count
		a.free = slices.Delete(a.free, i+1, i+2)
	}
	if i > 0 && a.free[i-1].end() == a.free[i].start {
		a.free[i-1].count += a.free[i].count
		a.free = slices.Delete(a.free, i, i+1)
	}
}
