package zone

import (
	"github.com/achilleasa/slabcore/kernel"
	"github.com/achilleasa/slabcore/slab"
)

// MustDeallocate is Deallocate's fail-fast counterpart. ErrInvalidLayout is
// still returned since a malformed layout is the caller's mistake to fix,
// not a corrupted-allocator condition; any other error reaching this far -
// a double free, a foreign pointer, or ptr belonging to a different class
// than layout names - means the caller's bookkeeping, not the allocator, is
// broken, and is reported through kernel.Panic instead of returned.
func (z *ZoneAllocator) MustDeallocate(ptr uintptr, layout slab.Layout) error {
	err := z.Deallocate(ptr, layout)
	if err != nil && err != slab.ErrInvalidLayout {
		kernel.Panic(err)
	}
	return err
}
