package page

// LargeObjectPage is a 2 MiB AllocablePage. It shares header and bitmap
// layout with ObjectPage and differs only in the page size constant used to
// locate the header and to bound the occupancy scan; see object_page.go for
// the identical pattern with the small-page constant.
type LargeObjectPage struct {
	Base uintptr
}

// AtAddressLarge returns the LargeObjectPage whose base is addr.
func AtAddressLarge(addr uintptr) LargeObjectPage { return LargeObjectPage{Base: addr} }

func (p LargeObjectPage) Address() uintptr { return p.Base }

func (p LargeObjectPage) header() *header { return headerAt(p.Base, SizeLarge) }

func (p LargeObjectPage) Allocate(slotSize, align uintptr) (uintptr, bool) {
	return allocateFrom(p.Base, SizeLarge, p.header(), slotSize, align)
}

func (p LargeObjectPage) Deallocate(ptr, slotSize uintptr) error {
	return deallocateFrom(p.Base, p.header(), ptr, slotSize)
}

func (p LargeObjectPage) IsEmpty(slotSize uintptr) bool {
	return isEmptyFrom(SizeLarge, p.header(), slotSize)
}

func (p LargeObjectPage) IsFull(slotSize uintptr) bool {
	return isFullFrom(SizeLarge, p.header(), slotSize)
}

func (p LargeObjectPage) BitfieldInit() { bitfieldInit(p.header()) }

func (p LargeObjectPage) Next() uintptr { return p.header().next }

func (p LargeObjectPage) Prev() uintptr { return p.header().prev }

func (p LargeObjectPage) SetNext(addr uintptr) { p.header().next = addr }

func (p LargeObjectPage) SetPrev(addr uintptr) { p.header().prev = addr }
