package schedule

// RangesOverlap reports whether [s1,e1) and [s2,e2) collide. Ranges that
// share a start or an end always collide. Ranges that merely touch
// (e1 == s2 or e2 == s1) collide unless allowAdjacent is set.
func RangesOverlap(s1, e1, s2, e2 int64, allowAdjacent bool) bool {
	if s1 == s2 || e1 == e2 {
		return true
	}
	if allowAdjacent {
		return s1 < e2 && e1 > s2
	}
	return s1 <= e2 && e1 >= s2
}

// OverlapValidator rejects status segments that double-book a machine.
type OverlapValidator struct {
	AllowAdjacent bool
}

// Validate checks candidate against existing items. Work orders are exempt
// both as candidates and as existing items; only items on the candidate's
// machine are considered, and the candidate never collides with itself.
// On collision it returns an *OverlapError naming the first conflicting item.
func (v OverlapValidator) Validate(candidate Item, existing []Item) error {
	if candidate.IsOrder() {
		return nil
	}
	cs, ce := candidate.Start.UnixNano(), candidate.End.UnixNano()
	for _, other := range existing {
		if other.Group != candidate.Group || other.ID == candidate.ID || other.IsOrder() {
			continue
		}
		if RangesOverlap(cs, ce, other.Start.UnixNano(), other.End.UnixNano(), v.AllowAdjacent) {
			return &OverlapError{ID: candidate.ID, Conflict: other.ID, Group: candidate.Group}
		}
	}
	return nil
}

// ValidateOverlap applies the strict rule: touching segments collide.
func ValidateOverlap(candidate Item, existing []Item) error {
	return OverlapValidator{}.Validate(candidate, existing)
}
