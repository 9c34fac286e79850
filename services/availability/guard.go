package availability

import "fmt"

// ExistingRule is a stored rule reduced to what the conflict check needs.
type ExistingRule struct {
	ID   string
	Rule Rule
}

// CheckConflict is the write-path gate: it runs the candidate against every
// existing rule of the same kind and scope and returns a conflict error for
// the first overlap, or nil if the candidate is clear to insert. It is a pure
// decision; the caller owns the actual write and must serialize
// check-then-write per provider and kind, because two concurrent writers can
// both pass this check before either commits.
func CheckConflict(candidate Rule, existing []ExistingRule) error {
	for _, e := range existing {
		if Conflicts(candidate, e.Rule) {
			return NewConflictError(e.ID)
		}
	}
	return nil
}

// CheckContainment enforces that an exception's minute range sits fully
// inside its parent base's range.
func CheckContainment(startMinute, endMinute int, base Rule) error {
	if startMinute < base.Interval.StartMinute || endMinute > base.Interval.EndMinute {
		return NewError(KindInvalidRange, fmt.Sprintf(
			"exception [%d, %d) not contained in base [%d, %d)",
			startMinute, endMinute, base.Interval.StartMinute, base.Interval.EndMinute))
	}
	return nil
}
