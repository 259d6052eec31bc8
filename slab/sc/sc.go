// Package sc implements the size-class allocator: the middle tier that
// manages the empty/partial/full page lists for a single fixed slot size
// and mediates between the zone allocator above it and the page layer
// below it.
package sc

import (
	"github.com/achilleasa/slabcore/kernel/errors"
	"github.com/achilleasa/slabcore/slab/page"
)

// ErrOutOfMemory is returned by Allocate when every page in this class is
// full. The caller (ordinarily the zone allocator) is expected to obtain a
// page from its frame supplier and call Refill before retrying.
var ErrOutOfMemory = errors.KernelError("sc: out of memory")

type classification int

const (
	classEmpty classification = iota
	classPartial
	classFull
)

func classify(p page.AllocablePage, slotSize uintptr) classification {
	switch {
	case p.IsEmpty(slotSize):
		return classEmpty
	case p.IsFull(slotSize):
		return classFull
	default:
		return classPartial
	}
}

// SCAllocator manages every page backing one fixed slot size. It is bound
// to exactly one page kind (small or large) via the pageAt factory supplied
// at construction.
type SCAllocator struct {
	slotSize       uintptr
	alignmentFloor uintptr
	pageSize       uintptr

	empty, partial, full list
}

// New constructs an SCAllocator for the given slot size and natural
// alignment, bound to page kind pageSize (page.SizeSmall or
// page.SizeLarge) via at, which reconstructs an AllocablePage from a base
// address of that kind.
func New(slotSize, alignmentFloor, pageSize uintptr, at pageAt) *SCAllocator {
	s := &SCAllocator{
		slotSize:       slotSize,
		alignmentFloor: alignmentFloor,
		pageSize:       pageSize,
	}
	s.empty.at, s.partial.at, s.full.at = at, at, at
	return s
}

func (s *SCAllocator) listFor(c classification) *list {
	switch c {
	case classEmpty:
		return &s.empty
	case classFull:
		return &s.full
	default:
		return &s.partial
	}
}

// SlotSize returns the fixed slot size this allocator serves.
func (s *SCAllocator) SlotSize() uintptr { return s.slotSize }

// Allocate searches the partial list first, then the empty list, for a
// slot satisfying align. Each list is walked from its most-recently-touched
// head so that hot pages are tried first; a page that cannot satisfy align
// (its free slots don't happen to land on the requested boundary) is
// skipped in favor of the next page in the same list, rather than giving up
// immediately: an 8-byte class must still be able to satisfy a
// 64-byte-aligned request as long as some page in it has a slot that lands
// on the boundary.
func (s *SCAllocator) Allocate(align uintptr) (uintptr, error) {
	for _, which := range [...]classification{classPartial, classEmpty} {
		lst := s.listFor(which)
		for addr := lst.head; addr != 0; {
			p := lst.at(addr)
			next := p.Next()

			if ptr, ok := p.Allocate(s.slotSize, align); ok {
				lst.remove(p)
				s.listFor(classify(p, s.slotSize)).pushFront(p)
				return ptr, nil
			}

			addr = next
		}
	}

	return 0, ErrOutOfMemory
}

// Deallocate frees the slot ptr belongs to on the page that owns it.
// Ownership is established purely by masking ptr down to this allocator's
// page size, matching the header-at-tail layout: no lookup is needed to
// recover the page from the pointer.
func (s *SCAllocator) Deallocate(ptr uintptr) error {
	p := s.empty.at(ptr &^ (s.pageSize - 1))

	lst := s.listFor(classify(p, s.slotSize))
	lst.remove(p)

	if err := p.Deallocate(ptr, s.slotSize); err != nil {
		// No mutation happened; put the page back at the head of the
		// list it came from so the failed call leaves every page in
		// the same list as before.
		lst.pushFront(p)
		return err
	}

	s.listFor(classify(p, s.slotSize)).pushFront(p)
	return nil
}

// Refill donates a page to this class's empty list. The page must already
// have had BitfieldInit called on it by the embedder; Refill does not
// re-initialize it, since whether a page is fresh or was previously used
// (and then fully drained) by a different class is not this method's
// concern.
func (s *SCAllocator) Refill(p page.AllocablePage) {
	s.empty.pushFront(p)
}

// Stats reports the empty/partial/full page counts for this class. It
// exists purely for observability; nothing on the allocate/deallocate path
// depends on it, matching the no-redundant-counters invariant pages
// themselves follow.
func (s *SCAllocator) Stats() (empty, partial, full int) {
	count := func(l *list) int {
		n := 0
		for addr := l.head; addr != 0; {
			p := l.at(addr)
			addr = p.Next()
			n++
		}
		return n
	}
	return count(&s.empty), count(&s.partial), count(&s.full)
}
