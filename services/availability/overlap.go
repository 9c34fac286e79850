package availability

// Conflicts decides whether two rules collide. The matching is type-aware:
//
//   - A recurring rule and a one-time rule never conflict. This is inherited
//     behavior the rest of the product depends on, not an oversight: the two
//     kinds live in separate namespaces and are only checked against their
//     own kind.
//   - Two recurring rules conflict when they share a weekday and their minute
//     ranges overlap.
//   - Two one-time rules conflict when their date ranges overlap and their
//     minute ranges overlap.
//
// Minute ranges are half-open, so back-to-back rules ([9:00,10:00) followed
// by [10:00,11:00)) do not conflict.
func Conflicts(a, b Rule) bool {
	if a.Recurring() != b.Recurring() {
		return false
	}
	if a.Recurring() {
		if !a.Recurrence.Intersects(b.Recurrence) {
			return false
		}
		return minutesOverlap(a.Interval, b.Interval)
	}
	if !datesOverlap(a.Interval, b.Interval) {
		return false
	}
	return minutesOverlap(a.Interval, b.Interval)
}

func minutesOverlap(a, b TimeInterval) bool {
	return a.StartMinute < b.EndMinute && b.StartMinute < a.EndMinute
}

func datesOverlap(a, b TimeInterval) bool {
	return !a.StartDate.After(b.EndDate) && !b.StartDate.After(a.EndDate)
}
