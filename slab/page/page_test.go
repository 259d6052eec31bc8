package page

import (
	"math/rand"
	"testing"
	"unsafe"
)

// TestHeaderLayout enforces the single most load-bearing invariant this
// package depends on: the header must fit exactly in the metadata budget
// so that page_base + PageSize == header_end always holds.
func TestHeaderLayout(t *testing.T) {
	if got := unsafe.Sizeof(header{}); got != MetadataOverhead {
		t.Fatalf("expected sizeof(header) == %d; got %d", MetadataOverhead, got)
	}
}

func alignedArena(t *testing.T, pageSize uintptr) uintptr {
	t.Helper()
	buf := make([]byte, pageSize*2)
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := (base + pageSize - 1) &^ (pageSize - 1)
	t.Cleanup(func() { _ = buf }) // keep buf alive for the duration of the test
	return aligned
}

func TestAllocateAlignment(t *testing.T) {
	base := alignedArena(t, SizeSmall)
	p := AtAddress(base)
	p.BitfieldInit()

	specs := []struct {
		slotSize, align uintptr
	}{
		{8, 1},
		{8, 8},
		{16, 16},
		{32, 32},
	}

	for _, spec := range specs {
		p.BitfieldInit()
		ptr, ok := p.Allocate(spec.slotSize, spec.align)
		if !ok {
			t.Fatalf("slotSize=%d align=%d: expected allocation to succeed", spec.slotSize, spec.align)
		}
		if ptr%spec.align != 0 {
			t.Fatalf("slotSize=%d align=%d: ptr 0x%x is not aligned", spec.slotSize, spec.align, ptr)
		}
	}
}

func TestAlignmentPromotionWithinPage(t *testing.T) {
	base := alignedArena(t, SizeSmall)
	p := AtAddress(base)
	p.BitfieldInit()

	// An 8-byte class serving a 64-byte-aligned request must still only
	// ever return 64-byte-aligned addresses, even though most of its
	// slots aren't.
	for i := 0; i < 4; i++ {
		ptr, ok := p.Allocate(8, 64)
		if !ok {
			t.Fatalf("allocation %d: expected success", i)
		}
		if ptr%64 != 0 {
			t.Fatalf("allocation %d: ptr 0x%x not 64-byte aligned", i, ptr)
		}
	}
}

func TestExhaustOnePageNoAliasing(t *testing.T) {
	const slotSize = 8
	base := alignedArena(t, SizeSmall)
	p := AtAddress(base)
	p.BitfieldInit()

	expected := slotCount(SizeSmall, slotSize)

	type alloc struct {
		ptr     uintptr
		pattern byte
	}
	var allocs []alloc

	for {
		ptr, ok := p.Allocate(slotSize, 1)
		if !ok {
			break
		}
		allocs = append(allocs, alloc{ptr: ptr, pattern: byte(rand.Intn(256))})
	}

	if len(allocs) != expected {
		t.Fatalf("expected exactly %d slots; got %d", expected, len(allocs))
	}
	if !p.IsFull(slotSize) {
		t.Fatal("expected page to report full after exhausting all slots")
	}

	// Write each slot with its own pattern, then verify none were
	// clobbered by a neighboring allocation.
	for _, a := range allocs {
		data := (*[slotSize]byte)(unsafe.Pointer(a.ptr))
		for i := range data {
			data[i] = a.pattern
		}
	}
	for _, a := range allocs {
		data := (*[slotSize]byte)(unsafe.Pointer(a.ptr))
		for i := range data {
			if data[i] != a.pattern {
				t.Fatalf("slot 0x%x: expected pattern 0x%x at byte %d; got 0x%x (aliasing)", a.ptr, a.pattern, i, data[i])
			}
		}
	}

	for _, a := range allocs {
		if err := p.Deallocate(a.ptr, slotSize); err != nil {
			t.Fatalf("unexpected error deallocating 0x%x: %v", a.ptr, err)
		}
	}
	if !p.IsEmpty(slotSize) {
		t.Fatal("expected page to report empty after freeing all slots")
	}

	// The page must return to serving allocations, lowest address first.
	ptr, ok := p.Allocate(slotSize, 1)
	if !ok || ptr != base {
		t.Fatalf("expected next allocation to reuse the lowest address 0x%x; got 0x%x, ok=%v", base, ptr, ok)
	}
}

func TestDoubleFree(t *testing.T) {
	base := alignedArena(t, SizeSmall)
	p := AtAddress(base)
	p.BitfieldInit()

	ptr, ok := p.Allocate(8, 1)
	if !ok {
		t.Fatal("expected allocation to succeed")
	}
	if err := p.Deallocate(ptr, 8); err != nil {
		t.Fatalf("unexpected error on first free: %v", err)
	}
	if err := p.Deallocate(ptr, 8); err != errDoubleFree {
		t.Fatalf("expected errDoubleFree on second free; got %v", err)
	}
}

func TestForeignPointer(t *testing.T) {
	base := alignedArena(t, SizeSmall)
	p := AtAddress(base)
	p.BitfieldInit()

	if err := p.Deallocate(base+3, 8); err != errForeignPointer {
		t.Fatalf("expected errForeignPointer for a misaligned pointer; got %v", err)
	}
}

func TestLargePageParity(t *testing.T) {
	const slotSize = 4096
	base := alignedArena(t, SizeLarge)
	p := AtAddressLarge(base)
	p.BitfieldInit()

	expected := slotCount(SizeLarge, slotSize)
	if want := (SizeLarge - MetadataOverhead) / slotSize; expected != want {
		// The last slot's range overlaps the trailing header, so the
		// usable count is one short of a clean SizeLarge/slotSize
		// division.
		t.Fatalf("expected slotCount to account for the trailing header; got %d want %d", expected, want)
	}

	count := 0
	for {
		if _, ok := p.Allocate(slotSize, 1); !ok {
			break
		}
		count++
	}
	if count != expected {
		t.Fatalf("expected to exhaust exactly %d slots; got %d", expected, count)
	}
	if !p.IsFull(slotSize) {
		t.Fatal("expected large page to report full")
	}
}

func TestPagesLeaveRoomForSlots(t *testing.T) {
	if SizeSmall-MetadataOverhead <= 0 {
		t.Fatal("small page must have room for at least one byte of slots")
	}
	if SizeLarge-MetadataOverhead <= 0 {
		t.Fatal("large page must have room for at least one byte of slots")
	}
}
