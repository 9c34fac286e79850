package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotwise/models"
)

// 2026-03-02 is a Monday, 2026-03-06 a Friday.
var (
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	friday = time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.UTC)
}

func TestIsAvailableBaseWithException(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", ProviderID: "p1", Recurrence: "weekly:Mon", StartMinute: 540, EndMinute: 1020},
	}
	excs := map[string][]models.AvailabilityException{
		"b1": {{ID: "e1", BaseID: "b1", StartMinute: 720, EndMinute: 780}}, // 12:00-13:00 lunch
	}

	assert.True(t, IsAvailable(bases, excs, nil, at(monday, 11, 30)), "open before the exception")
	assert.False(t, IsAvailable(bases, excs, nil, at(monday, 12, 30)), "carved out by the exception")
	assert.True(t, IsAvailable(bases, excs, nil, at(monday, 13, 0)), "open again at the exception's exclusive end")
	assert.False(t, IsAvailable(bases, excs, nil, at(monday, 8, 0)), "before the base opens")
	assert.False(t, IsAvailable(bases, excs, nil, at(monday, 17, 0)), "base end is exclusive")
	assert.False(t, IsAvailable(bases, excs, nil, at(friday, 11, 30)), "wrong weekday")
}

func TestIsAvailableExceptionOnlyCarvesItsOwnBase(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", ProviderID: "p1", Recurrence: "weekly:Mon", StartMinute: 540, EndMinute: 780},
		{ID: "b2", ProviderID: "p1", Recurrence: "weekly:Mon", StartMinute: 700, EndMinute: 1020},
	}
	excs := map[string][]models.AvailabilityException{
		"b1": {{ID: "e1", BaseID: "b1", StartMinute: 720, EndMinute: 780}},
	}

	// 12:30 is carved from b1 but still covered by b2.
	assert.True(t, IsAvailable(bases, excs, nil, at(monday, 12, 30)))
}

func TestIsAvailableTimeOffAlwaysWins(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", ProviderID: "p1", Recurrence: "weekly:Mon,Fri", StartMinute: 540, EndMinute: 1020},
	}
	timeOff := []models.TimeOff{
		{ID: "t1", ProviderID: "p1", StartDate: "2026-03-06", EndDate: "2026-03-06", StartMinute: 0, EndMinute: DayMinutes},
	}

	assert.True(t, IsAvailable(bases, nil, timeOff, at(monday, 10, 0)))
	assert.False(t, IsAvailable(bases, nil, timeOff, at(friday, 10, 0)), "all-day time off blocks the whole Friday")
}

func TestIsAvailableRecurringTimeOff(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", ProviderID: "p1", Recurrence: "weekly:Mon,Fri", StartMinute: 540, EndMinute: 1020},
	}
	timeOff := []models.TimeOff{
		{ID: "t1", ProviderID: "p1", Recurrence: "weekly:Fri", StartMinute: 0, EndMinute: DayMinutes},
	}

	assert.True(t, IsAvailable(bases, nil, timeOff, at(monday, 10, 0)))
	assert.False(t, IsAvailable(bases, nil, timeOff, at(friday, 10, 0)), "every Friday is blocked")
	assert.False(t, IsAvailable(bases, nil, timeOff, at(friday.AddDate(0, 0, 7), 10, 0)))
}

func TestIsAvailableNoRules(t *testing.T) {
	assert.False(t, IsAvailable(nil, nil, nil, at(monday, 10, 0)), "no bases means closed, regardless of time off")
}

func TestResolveDayMerging(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", Recurrence: "weekly:Mon", StartMinute: 540, EndMinute: 720},  // 09:00-12:00
		{ID: "b2", Recurrence: "weekly:Mon", StartMinute: 660, EndMinute: 900},  // 11:00-15:00, overlaps b1
		{ID: "b3", Recurrence: "weekly:Mon", StartMinute: 960, EndMinute: 1020}, // 16:00-17:00, disjoint
	}

	got := ResolveDay(bases, nil, nil, monday)
	require.Len(t, got, 2)
	assert.Equal(t, 540, got[0].Start)
	assert.Equal(t, 900, got[0].End)
	assert.Equal(t, "9:00 AM - 3:00 PM", got[0].Label)
	assert.Equal(t, 960, got[1].Start)
	assert.Equal(t, 1020, got[1].End)
	assert.Equal(t, "4:00 PM - 5:00 PM", got[1].Label)
}

func TestResolveDayExceptionSplitsItsBase(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", Recurrence: "weekly:Mon", StartMinute: 540, EndMinute: 1020},
	}
	excs := map[string][]models.AvailabilityException{
		"b1": {{ID: "e1", BaseID: "b1", StartMinute: 720, EndMinute: 780}},
	}

	got := ResolveDay(bases, excs, nil, monday)
	require.Len(t, got, 2)
	assert.Equal(t, models.AvailableInterval{Start: 540, End: 720, Label: "9:00 AM - 12:00 PM"}, got[0])
	assert.Equal(t, models.AvailableInterval{Start: 780, End: 1020, Label: "1:00 PM - 5:00 PM"}, got[1])
}

func TestResolveDayTimeOffSubtraction(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", Recurrence: "weekly:Mon", StartMinute: 540, EndMinute: 1020},
	}
	timeOff := []models.TimeOff{
		{ID: "t1", StartDate: "2026-03-02", EndDate: "2026-03-02", StartMinute: 840, EndMinute: 1020}, // 14:00-17:00
	}

	got := ResolveDay(bases, nil, timeOff, monday)
	require.Len(t, got, 1)
	assert.Equal(t, 540, got[0].Start)
	assert.Equal(t, 840, got[0].End)
}

func TestResolveDayFullyBlocked(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", Recurrence: "weekly:Fri", StartMinute: 540, EndMinute: 1020},
	}
	timeOff := []models.TimeOff{
		{ID: "t1", StartDate: "2026-03-06", EndDate: "2026-03-06", StartMinute: 0, EndMinute: DayMinutes},
	}

	assert.Empty(t, ResolveDay(bases, nil, timeOff, friday))
}

func TestResolveDayUncoveredDay(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", Recurrence: "weekly:Mon", StartMinute: 540, EndMinute: 1020},
	}
	assert.Empty(t, ResolveDay(bases, nil, nil, friday))
}

func TestResolveDayOneTimeBaseInRange(t *testing.T) {
	bases := []models.AvailabilityBase{
		{ID: "b1", StartDate: "2026-03-02", EndDate: "2026-03-04", StartMinute: 600, EndMinute: 720},
	}

	got := ResolveDay(bases, nil, nil, monday)
	require.Len(t, got, 1)
	assert.Equal(t, "10:00 AM - 12:00 PM", got[0].Label)

	assert.Empty(t, ResolveDay(bases, nil, nil, friday), "outside the inclusive date range")
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name    string
		spans   []span
		blocked span
		want    []span
	}{
		{
			name:    "no overlap leaves spans untouched",
			spans:   []span{{540, 720}},
			blocked: span{720, 780},
			want:    []span{{540, 720}},
		},
		{
			name:    "straddling block splits the span",
			spans:   []span{{540, 1020}},
			blocked: span{720, 780},
			want:    []span{{540, 720}, {780, 1020}},
		},
		{
			name:    "block clips the head",
			spans:   []span{{540, 720}},
			blocked: span{500, 600},
			want:    []span{{600, 720}},
		},
		{
			name:    "block clips the tail",
			spans:   []span{{540, 720}},
			blocked: span{660, 780},
			want:    []span{{540, 660}},
		},
		{
			name:    "block swallows the span",
			spans:   []span{{540, 720}},
			blocked: span{500, 780},
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subtract(tt.spans, tt.blocked))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "12:00 AM", formatMinutes(0))
	assert.Equal(t, "9:30 AM", formatMinutes(570))
	assert.Equal(t, "12:00 PM", formatMinutes(720))
	assert.Equal(t, "5:00 PM", formatMinutes(1020))
	assert.Equal(t, "12:00 AM", formatMinutes(DayMinutes))
}
