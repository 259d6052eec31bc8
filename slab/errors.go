package slab

import "github.com/achilleasa/slabcore/kernel/errors"

// Recoverable allocation errors. These are the only two error values
// ZoneAllocator's Allocate returns. Deallocate returns ErrInvalidLayout or,
// from the page layer, a double-free or foreign-pointer error; those, and a
// pointer deallocated under the wrong layout, are programming errors that
// zone.ZoneAllocator's Must* wrappers report through kernel.Panic rather
// than surface as a value.
var (
	// ErrOutOfMemory is returned when every page belonging to the chosen
	// size class is full. The caller may obtain a page from its frame
	// supplier and call Refill (or RefillLarge) before retrying.
	ErrOutOfMemory = errors.KernelError("slab: out of memory")

	// ErrInvalidLayout is returned when the requested size is zero, the
	// alignment is not a power of two, or the size exceeds the largest
	// supported size class.
	ErrInvalidLayout = errors.KernelError("slab: invalid layout")
)
