// Package zone implements the top-level allocator: it maps an arbitrarily
// sized allocation request onto one of a fixed set of size classes and
// dispatches to the size-class allocator responsible for it.
package zone

import (
	"github.com/achilleasa/slabcore/slab"
	"github.com/achilleasa/slabcore/slab/page"
	"github.com/achilleasa/slabcore/slab/sc"
)

func smallPageAt(addr uintptr) page.AllocablePage { return page.AtAddress(addr) }
func largePageAt(addr uintptr) page.AllocablePage { return page.AtAddressLarge(addr) }

// ZoneAllocator owns a fixed table of size-class allocators for small
// pages and a parallel table for large pages. There is no global state:
// callers construct one with New and pass it around explicitly.
type ZoneAllocator struct {
	small [NumSmallClasses]*sc.SCAllocator
	large [NumLargeClasses]*sc.SCAllocator
}

// New constructs a ZoneAllocator with empty size classes for every entry in
// the small and large schedules. No pages are owned until Refill or
// RefillLarge is called.
func New() *ZoneAllocator {
	z := &ZoneAllocator{}
	for i, cs := range smallClassSizes {
		z.small[i] = sc.New(cs, naturalAlignment(cs), page.SizeSmall, smallPageAt)
	}
	for i, cs := range largeClassSizes {
		z.large[i] = sc.New(cs, naturalAlignment(cs), page.SizeLarge, largePageAt)
	}
	return z
}

// Allocate dispatches to the smallest size class able to satisfy layout,
// trying the small-page schedule first. Every large class is bigger than
// the largest small class, so the large-page schedule is consulted only for
// layouts that no small class can satisfy.
func (z *ZoneAllocator) Allocate(layout slab.Layout) (uintptr, error) {
	if !layout.Valid() {
		return 0, slab.ErrInvalidLayout
	}

	if idx := classIndex(smallClassSizes[:], layout.Size, layout.Align); idx >= 0 {
		return z.allocateFrom(z.small[idx], layout)
	}
	if idx := classIndex(largeClassSizes[:], layout.Size, layout.Align); idx >= 0 {
		return z.allocateFrom(z.large[idx], layout)
	}

	return 0, slab.ErrInvalidLayout
}

func (z *ZoneAllocator) allocateFrom(s *sc.SCAllocator, layout slab.Layout) (uintptr, error) {
	ptr, err := s.Allocate(layout.Align)
	if err == sc.ErrOutOfMemory {
		return 0, slab.ErrOutOfMemory
	}
	return ptr, err
}

// Deallocate re-derives the owning size class from layout — the same
// lookup Allocate used to pick it — rather than reading the page header
// first, since layout alone determines the class unambiguously.
func (z *ZoneAllocator) Deallocate(ptr uintptr, layout slab.Layout) error {
	if !layout.Valid() {
		return slab.ErrInvalidLayout
	}

	if idx := classIndex(smallClassSizes[:], layout.Size, layout.Align); idx >= 0 {
		return z.small[idx].Deallocate(ptr)
	}
	if idx := classIndex(largeClassSizes[:], layout.Size, layout.Align); idx >= 0 {
		return z.large[idx].Deallocate(ptr)
	}

	return slab.ErrInvalidLayout
}

// Refill inserts page into the empty list of the small size class chosen
// by layout. page must already have had BitfieldInit called on it.
func (z *ZoneAllocator) Refill(layout slab.Layout, p page.ObjectPage) error {
	idx := classIndex(smallClassSizes[:], layout.Size, layout.Align)
	if idx < 0 {
		return slab.ErrInvalidLayout
	}
	z.small[idx].Refill(p)
	return nil
}

// RefillLarge is Refill's large-page counterpart.
func (z *ZoneAllocator) RefillLarge(layout slab.Layout, p page.LargeObjectPage) error {
	idx := classIndex(largeClassSizes[:], layout.Size, layout.Align)
	if idx < 0 {
		return slab.ErrInvalidLayout
	}
	z.large[idx].Refill(p)
	return nil
}
