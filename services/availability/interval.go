package availability

import (
	"fmt"
	"strings"
	"time"

	"slotwise/models"
)

const (
	// DayMinutes is the exclusive upper bound of a minute range within one day.
	DayMinutes = 1440

	dateLayout = "2006-01-02"
)

// TimeInterval is the normalized "when" of a rule. For a one-time rule the
// inclusive date range [StartDate, EndDate] anchors it to the calendar; for a
// recurring rule both dates are zero and the weekday set on the enclosing
// Rule does the anchoring. Minute ranges are half-open: [StartMinute,
// EndMinute) with 0 <= StartMinute < EndMinute <= 1440. Multi-day spans are
// expressed through the date range, never by minutes past midnight.
type TimeInterval struct {
	StartDate   time.Time
	EndDate     time.Time
	StartMinute int
	EndMinute   int
}

// Rule pairs an interval with its recurrence. An empty DaySet means the rule
// is one-time; a non-empty set means it repeats weekly on those days.
type Rule struct {
	Recurrence DaySet
	Interval   TimeInterval
}

// Recurring reports whether the rule repeats weekly.
func (r Rule) Recurring() bool {
	return !r.Recurrence.IsEmpty()
}

// coversDay reports whether the rule applies on the given calendar day.
func (r Rule) coversDay(day time.Time) bool {
	if r.Recurring() {
		return r.Recurrence.Has(day.Weekday())
	}
	d := dateOnly(day)
	return !d.Before(r.Interval.StartDate) && !d.After(r.Interval.EndDate)
}

// coversInstant reports whether the rule applies at the given instant.
func (r Rule) coversInstant(at time.Time) bool {
	m := minuteOf(at)
	return r.coversDay(at) && m >= r.Interval.StartMinute && m < r.Interval.EndMinute
}

// ParseClock parses a zero-padded 24-hour "HH:MM" wall-clock string into
// minutes from midnight.
func ParseClock(clock string) (int, error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, NewError(KindMalformedTime, fmt.Sprintf("invalid wall-clock time %q, want HH:MM", clock))
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, NewError(KindMalformedTime, fmt.Sprintf("invalid wall-clock time %q, want HH:MM", clock))
	}
	return t.Hour()*60 + t.Minute(), nil
}

func parseDate(date string) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, NewError(KindMalformedTime, fmt.Sprintf("invalid date %q, want %s", date, dateLayout))
	}
	return d, nil
}

func parseClockRange(startClock, endClock string) (int, int, error) {
	start, err := ParseClock(startClock)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(endClock)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, NewError(KindInvalidRange, fmt.Sprintf("end %s must be after start %s", endClock, startClock))
	}
	return start, end, nil
}

// NormalizeInput converts any of the three legacy write shapes into a Rule.
// The resolution and conflict logic only ever sees Rules; no caller branches
// on which shape a rule arrived in.
func NormalizeInput(in models.ScheduleRuleInput) (Rule, error) {
	switch {
	case strings.Contains(in.StartTime, "T") || strings.Contains(in.EndTime, "T"):
		return FromTimestamps(in.StartTime, in.EndTime, in.Recurrence)
	case in.StartDate != "" || in.EndDate != "" || in.AllDay:
		return FromDateRange(in)
	default:
		return FromWallClock(in.DayOfWeek, in.StartTime, in.EndTime, in.IsRecurring, in.SpecificDate)
	}
}

// FromTimestamps normalizes the oldest shape: an ISO-8601 timestamp pair with
// an optional recurrence token. When the token decodes to a weekly day set
// only the wall-clock portion of the timestamps is kept; otherwise the rule
// is one-time over the timestamps' date range.
func FromTimestamps(startISO, endISO, token string) (Rule, error) {
	start, err := time.Parse(time.RFC3339, startISO)
	if err != nil {
		return Rule{}, NewError(KindMalformedTime, fmt.Sprintf("invalid timestamp %q", startISO))
	}
	end, err := time.Parse(time.RFC3339, endISO)
	if err != nil {
		return Rule{}, NewError(KindMalformedTime, fmt.Sprintf("invalid timestamp %q", endISO))
	}

	startMin, endMin := minuteOf(start), minuteOf(end)
	if endMin <= startMin {
		return Rule{}, NewError(KindInvalidRange, fmt.Sprintf("end %s must be after start %s within the day", endISO, startISO))
	}

	if days := DecodeRecurrence(token); !days.IsEmpty() {
		return Rule{
			Recurrence: days,
			Interval:   TimeInterval{StartMinute: startMin, EndMinute: endMin},
		}, nil
	}

	startDate, endDate := dateOnly(start), dateOnly(end)
	if endDate.Before(startDate) {
		return Rule{}, NewError(KindInvalidRange, fmt.Sprintf("end date %s before start date %s", endISO, startISO))
	}
	return Rule{
		Interval: TimeInterval{
			StartDate:   startDate,
			EndDate:     endDate,
			StartMinute: startMin,
			EndMinute:   endMin,
		},
	}, nil
}

// FromWallClock normalizes the day-of-week shape: "HH:MM" times plus either
// an is_recurring flag with a weekday, or a specific date for a one-time
// slot. A recurring rule without an explicit weekday is seeded from the
// specific date's weekday, matching what the legacy writers produced.
func FromWallClock(dayOfWeek *int, startClock, endClock string, recurring bool, specificDate string) (Rule, error) {
	startMin, endMin, err := parseClockRange(startClock, endClock)
	if err != nil {
		return Rule{}, err
	}

	if recurring {
		var day time.Weekday
		switch {
		case dayOfWeek != nil:
			day, err = ParseWeekday(*dayOfWeek)
			if err != nil {
				return Rule{}, err
			}
		case specificDate != "":
			d, err := parseDate(specificDate)
			if err != nil {
				return Rule{}, err
			}
			day = d.Weekday()
		default:
			return Rule{}, NewError(KindInvalidInput, "recurring rule requires day_of_week or specific_date")
		}
		return Rule{
			Recurrence: NewDaySet(day),
			Interval:   TimeInterval{StartMinute: startMin, EndMinute: endMin},
		}, nil
	}

	d, err := parseDate(specificDate)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Interval: TimeInterval{
			StartDate:   d,
			EndDate:     d, // single date collapses to [d, d]
			StartMinute: startMin,
			EndMinute:   endMin,
		},
	}, nil
}

// FromDateRange normalizes the time-off shape: a date range or weekday plus
// wall-clock times, with all_day standing in for the full [00:00, 24:00)
// window.
func FromDateRange(in models.ScheduleRuleInput) (Rule, error) {
	var startMin, endMin int
	if in.AllDay {
		startMin, endMin = 0, DayMinutes
	} else {
		var err error
		startMin, endMin, err = parseClockRange(in.StartTime, in.EndTime)
		if err != nil {
			return Rule{}, err
		}
	}

	days := DecodeRecurrence(in.Recurrence)
	if days.IsEmpty() && in.DayOfWeek != nil {
		day, err := ParseWeekday(*in.DayOfWeek)
		if err != nil {
			return Rule{}, err
		}
		days = NewDaySet(day)
	}
	if !days.IsEmpty() {
		return Rule{
			Recurrence: days,
			Interval:   TimeInterval{StartMinute: startMin, EndMinute: endMin},
		}, nil
	}

	if in.StartDate == "" {
		return Rule{}, NewError(KindInvalidInput, "one-time rule requires start_date")
	}
	startDate, err := parseDate(in.StartDate)
	if err != nil {
		return Rule{}, err
	}
	endDate := startDate
	if in.EndDate != "" {
		endDate, err = parseDate(in.EndDate)
		if err != nil {
			return Rule{}, err
		}
	}
	if endDate.Before(startDate) {
		return Rule{}, NewError(KindInvalidRange, fmt.Sprintf("end_date %s before start_date %s", in.EndDate, in.StartDate))
	}
	return Rule{
		Interval: TimeInterval{
			StartDate:   startDate,
			EndDate:     endDate,
			StartMinute: startMin,
			EndMinute:   endMin,
		},
	}, nil
}

// RuleFromBase rebuilds the normalized rule from a stored base.
func RuleFromBase(b models.AvailabilityBase) Rule {
	return storedRule(b.Recurrence, b.StartDate, b.EndDate, b.StartMinute, b.EndMinute)
}

// RuleFromTimeOff rebuilds the normalized rule from a stored time-off entry.
func RuleFromTimeOff(t models.TimeOff) Rule {
	return storedRule(t.Recurrence, t.StartDate, t.EndDate, t.StartMinute, t.EndMinute)
}

// RuleFromException rebuilds an exception's rule. Exceptions inherit their
// day scope from the parent base and only narrow the minute range.
func RuleFromException(e models.AvailabilityException, base models.AvailabilityBase) Rule {
	r := RuleFromBase(base)
	r.Interval.StartMinute = e.StartMinute
	r.Interval.EndMinute = e.EndMinute
	return r
}

func storedRule(token, startDate, endDate string, startMin, endMin int) Rule {
	r := Rule{Interval: TimeInterval{StartMinute: startMin, EndMinute: endMin}}
	if days := DecodeRecurrence(token); !days.IsEmpty() {
		r.Recurrence = days
		return r
	}
	// Stored rows are already normalized; a bad date here means corrupt data,
	// and a zero date simply never covers anything.
	r.Interval.StartDate, _ = time.Parse(dateLayout, startDate)
	r.Interval.EndDate, _ = time.Parse(dateLayout, endDate)
	return r
}

func minuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
