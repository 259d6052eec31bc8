package page

// ObjectPage is a 4 KiB AllocablePage. It is a thin handle over memory the
// embedder owns; ObjectPage itself stores nothing but the page's base
// address, so it is safe to pass by value and to reconstruct from any
// address that is known to be a page base (e.g. by masking an object
// pointer down to SizeSmall alignment).
type ObjectPage struct {
	Base uintptr
}

// AtAddress returns the ObjectPage whose base is addr. It performs no
// validation; the caller is expected to have derived addr via masking a
// pointer this allocator previously returned.
func AtAddress(addr uintptr) ObjectPage { return ObjectPage{Base: addr} }

func (p ObjectPage) Address() uintptr { return p.Base }

func (p ObjectPage) header() *header { return headerAt(p.Base, SizeSmall) }

func (p ObjectPage) Allocate(slotSize, align uintptr) (uintptr, bool) {
	return allocateFrom(p.Base, SizeSmall, p.header(), slotSize, align)
}

func (p ObjectPage) Deallocate(ptr, slotSize uintptr) error {
	return deallocateFrom(p.Base, p.header(), ptr, slotSize)
}

func (p ObjectPage) IsEmpty(slotSize uintptr) bool { return isEmptyFrom(SizeSmall, p.header(), slotSize) }

func (p ObjectPage) IsFull(slotSize uintptr) bool { return isFullFrom(SizeSmall, p.header(), slotSize) }

func (p ObjectPage) BitfieldInit() { bitfieldInit(p.header()) }

func (p ObjectPage) Next() uintptr { return p.header().next }

func (p ObjectPage) Prev() uintptr { return p.header().prev }

func (p ObjectPage) SetNext(addr uintptr) { p.header().next = addr }

func (p ObjectPage) SetPrev(addr uintptr) { p.header().prev = addr }
