package availability

import (
	"fmt"
	"strings"
	"time"
)

// DaySet is a set of weekdays packed into a bitmask, bit n = time.Weekday n
// (Sunday = 0). The zero value is the empty set, which means "no recurrence".
type DaySet uint8

// NewDaySet builds a DaySet from the given weekdays.
func NewDaySet(days ...time.Weekday) DaySet {
	var s DaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// Add returns the set with d included.
func (s DaySet) Add(d time.Weekday) DaySet {
	return s | 1<<uint(d)
}

// Has reports whether d is in the set.
func (s DaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether the set contains no days.
func (s DaySet) IsEmpty() bool {
	return s == 0
}

// Intersects reports whether the two sets share at least one weekday.
func (s DaySet) Intersects(o DaySet) bool {
	return s&o != 0
}

// Days lists the members in canonical Sun..Sat order.
func (s DaySet) Days() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

const weeklyPrefix = "weekly:"

var dayAbbrevs = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// EncodeRecurrence renders a weekly day set as the wire token, e.g.
// "weekly:Mon,Wed,Fri". Days are emitted in Sun-first canonical order.
// An empty set cannot be encoded.
func EncodeRecurrence(days DaySet) (string, error) {
	if days.IsEmpty() {
		return "", NewError(KindInvalidInput, "recurrence requires at least one weekday")
	}
	parts := make([]string, 0, 7)
	for _, d := range days.Days() {
		parts = append(parts, dayAbbrevs[d])
	}
	return weeklyPrefix + strings.Join(parts, ","), nil
}

// DecodeRecurrence parses a recurrence token back into a DaySet. Malformed or
// absent tokens decode to the empty set rather than an error; callers treat
// an empty set as "no recurrence". This permissive behavior is load-bearing:
// legacy rows carry all manner of junk in this column.
func DecodeRecurrence(token string) DaySet {
	if !strings.HasPrefix(token, weeklyPrefix) {
		return 0
	}
	var days DaySet
	for _, part := range strings.Split(strings.TrimPrefix(token, weeklyPrefix), ",") {
		d, ok := abbrevToDay(strings.TrimSpace(part))
		if !ok {
			return 0
		}
		days = days.Add(d)
	}
	return days
}

func abbrevToDay(abbrev string) (time.Weekday, bool) {
	for i, a := range dayAbbrevs {
		if a == abbrev {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// ParseWeekday validates a 0..6 (Sun..Sat) day index from a wire payload.
func ParseWeekday(n int) (time.Weekday, error) {
	if n < 0 || n > 6 {
		return 0, NewError(KindMalformedTime, fmt.Sprintf("day_of_week %d out of range 0..6", n))
	}
	return time.Weekday(n), nil
}
