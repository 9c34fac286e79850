package availability

import (
	"fmt"
	"sort"
	"time"

	"slotwise/models"
)

// IsAvailable composes a provider's rules into the final verdict for one
// instant. A base must cover the instant for it to be available at all; an
// exception on a covering base carves that base's contribution out; time-off
// is checked last and always wins.
func IsAvailable(bases []models.AvailabilityBase, exceptionsByBase map[string][]models.AvailabilityException, timeOff []models.TimeOff, at time.Time) bool {
	open := false
	for _, b := range bases {
		r := RuleFromBase(b)
		if !r.coversInstant(at) {
			continue
		}
		carved := false
		for _, e := range exceptionsByBase[b.ID] {
			if RuleFromException(e, b).coversInstant(at) {
				carved = true
				break
			}
		}
		if !carved {
			open = true
			break
		}
	}
	if !open {
		return false
	}
	for _, t := range timeOff {
		if RuleFromTimeOff(t).coversInstant(at) {
			return false
		}
	}
	return true
}

// span is a half-open minute range within one day.
type span struct {
	start, end int
}

// ResolveDay produces the merged open intervals for one calendar day:
// the union of covering base ranges, minus each base's own exceptions, minus
// every covering time-off entry. The result is sorted by start time with
// touching or overlapping intervals coalesced.
func ResolveDay(bases []models.AvailabilityBase, exceptionsByBase map[string][]models.AvailabilityException, timeOff []models.TimeOff, day time.Time) []models.AvailableInterval {
	var open []span
	for _, b := range bases {
		r := RuleFromBase(b)
		if !r.coversDay(day) {
			continue
		}
		segs := []span{{start: b.StartMinute, end: b.EndMinute}}
		for _, e := range exceptionsByBase[b.ID] {
			segs = subtract(segs, span{start: e.StartMinute, end: e.EndMinute})
		}
		open = append(open, segs...)
	}

	for _, t := range timeOff {
		r := RuleFromTimeOff(t)
		if !r.coversDay(day) {
			continue
		}
		open = subtract(open, span{start: t.StartMinute, end: t.EndMinute})
	}

	return mergeSpans(open)
}

// subtract removes the blocked range from every span, splitting spans that
// straddle it.
func subtract(spans []span, blocked span) []span {
	var updated []span
	for _, s := range spans {
		if blocked.end <= s.start || blocked.start >= s.end {
			updated = append(updated, s)
			continue
		}
		if blocked.start > s.start {
			updated = append(updated, span{start: s.start, end: blocked.start})
		}
		if blocked.end < s.end {
			updated = append(updated, span{start: blocked.end, end: s.end})
		}
	}
	return updated
}

func mergeSpans(spans []span) []models.AvailableInterval {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})

	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	out := make([]models.AvailableInterval, 0, len(merged))
	for _, s := range merged {
		out = append(out, models.AvailableInterval{
			Start: s.start,
			End:   s.end,
			Label: fmt.Sprintf("%s - %s", formatMinutes(s.start), formatMinutes(s.end)),
		})
	}
	return out
}

// formatMinutes renders minutes from midnight as a 12-hour clock label.
func formatMinutes(minutes int) string {
	t := time.Date(0, 1, 1, 0, minutes, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}
