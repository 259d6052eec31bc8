package page

import "github.com/achilleasa/slabcore/kernel/errors"

var (
	// errDoubleFree is returned when Deallocate is asked to clear a bit
	// that is already clear.
	errDoubleFree = errors.KernelError("page: double free")

	// errForeignPointer is returned when Deallocate is given a pointer
	// that does not fall on a slotSize boundary within this page.
	errForeignPointer = errors.KernelError("page: pointer not owned by this page")
)
