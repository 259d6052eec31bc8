package sc

import "github.com/achilleasa/slabcore/slab/page"

// pageAt reconstructs an AllocablePage handle from a base address. Each
// SCAllocator is bound to exactly one concrete page kind (ObjectPage or
// LargeObjectPage) via this function, supplied at construction time, so the
// allocator's own code never branches on page kind.
type pageAt func(addr uintptr) page.AllocablePage

// list is an intrusive doubly-linked list over AllocablePage values. The
// linkage lives in each page's own header (see the page package), not in
// any node external to the page, so splicing a page in or out never
// touches memory outside that page.
type list struct {
	head uintptr // base address of the head page, 0 if empty
	at   pageAt
}

func (l *list) empty() bool { return l.head == 0 }

// pushFront splices p onto the head of the list. O(1).
func (l *list) pushFront(p page.AllocablePage) {
	p.SetPrev(0)
	p.SetNext(l.head)
	if l.head != 0 {
		l.at(l.head).SetPrev(p.Address())
	}
	l.head = p.Address()
}

// remove splices p out of whichever list it currently sits in. O(1)
// because the page carries both neighbors in its own header.
func (l *list) remove(p page.AllocablePage) {
	prev, next := p.Prev(), p.Next()
	if prev != 0 {
		l.at(prev).SetNext(next)
	} else {
		l.head = next
	}
	if next != 0 {
		l.at(next).SetPrev(prev)
	}
	p.SetNext(0)
	p.SetPrev(0)
}

// front returns the head page and true, or the zero value and false if the
// list is empty.
func (l *list) front() (page.AllocablePage, bool) {
	if l.head == 0 {
		var zero page.AllocablePage
		return zero, false
	}
	return l.at(l.head), true
}
