package zone

// ClassStats reports the empty/partial/full page counts for one size class.
type ClassStats struct {
	SlotSize             uintptr
	Empty, Partial, Full int
}

// Stats reports per-class occupancy across every small and large size
// class, in schedule order. It exists purely for observability.
func (z *ZoneAllocator) Stats() (small, large []ClassStats) {
	small = make([]ClassStats, NumSmallClasses)
	for i, s := range z.small {
		e, p, f := s.Stats()
		small[i] = ClassStats{SlotSize: smallClassSizes[i], Empty: e, Partial: p, Full: f}
	}

	large = make([]ClassStats, NumLargeClasses)
	for i, s := range z.large {
		e, p, f := s.Stats()
		large[i] = ClassStats{SlotSize: largeClassSizes[i], Empty: e, Partial: p, Full: f}
	}

	return small, large
}
