package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func recurringRule(startMin, endMin int, days ...time.Weekday) Rule {
	return Rule{
		Recurrence: NewDaySet(days...),
		Interval:   TimeInterval{StartMinute: startMin, EndMinute: endMin},
	}
}

func oneTimeRule(startDate, endDate string, startMin, endMin int) Rule {
	sd, _ := time.Parse("2006-01-02", startDate)
	ed, _ := time.Parse("2006-01-02", endDate)
	return Rule{
		Interval: TimeInterval{
			StartDate:   sd,
			EndDate:     ed,
			StartMinute: startMin,
			EndMinute:   endMin,
		},
	}
}

func TestConflictsRecurring(t *testing.T) {
	tests := []struct {
		name string
		a, b Rule
		want bool
	}{
		{
			name: "same day overlapping minutes",
			a:    recurringRule(540, 1020, time.Monday),
			b:    recurringRule(600, 660, time.Monday),
			want: true,
		},
		{
			name: "shared day among several",
			a:    recurringRule(540, 720, time.Monday, time.Wednesday),
			b:    recurringRule(600, 660, time.Wednesday, time.Friday),
			want: true,
		},
		{
			name: "disjoint days",
			a:    recurringRule(540, 1020, time.Monday),
			b:    recurringRule(540, 1020, time.Tuesday),
			want: false,
		},
		{
			name: "back-to-back ranges do not conflict",
			a:    recurringRule(540, 600, time.Monday),
			b:    recurringRule(600, 660, time.Monday),
			want: false,
		},
		{
			name: "one minute of overlap is enough",
			a:    recurringRule(540, 601, time.Monday),
			b:    recurringRule(600, 660, time.Monday),
			want: true,
		},
		{
			name: "containment conflicts",
			a:    recurringRule(540, 1020, time.Monday),
			b:    recurringRule(600, 660, time.Monday),
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conflicts(tt.a, tt.b))
			assert.Equal(t, tt.want, Conflicts(tt.b, tt.a), "conflict detection must be symmetric")
		})
	}
}

func TestConflictsOneTime(t *testing.T) {
	tests := []struct {
		name string
		a, b Rule
		want bool
	}{
		{
			name: "same day overlapping minutes",
			a:    oneTimeRule("2026-03-02", "2026-03-02", 540, 720),
			b:    oneTimeRule("2026-03-02", "2026-03-02", 600, 660),
			want: true,
		},
		{
			name: "date ranges touch at the boundary day",
			a:    oneTimeRule("2026-03-02", "2026-03-04", 540, 720),
			b:    oneTimeRule("2026-03-04", "2026-03-06", 600, 660),
			want: true,
		},
		{
			name: "disjoint date ranges",
			a:    oneTimeRule("2026-03-02", "2026-03-03", 540, 720),
			b:    oneTimeRule("2026-03-04", "2026-03-05", 540, 720),
			want: false,
		},
		{
			name: "overlapping dates but disjoint minutes",
			a:    oneTimeRule("2026-03-02", "2026-03-04", 540, 600),
			b:    oneTimeRule("2026-03-03", "2026-03-05", 600, 660),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conflicts(tt.a, tt.b))
			assert.Equal(t, tt.want, Conflicts(tt.b, tt.a), "conflict detection must be symmetric")
		})
	}
}

// Recurring and one-time rules live in separate namespaces: a Monday 09:00
// window and a one-time slot on an actual Monday at 09:00 must coexist.
func TestConflictsAcrossKindsNeverMatch(t *testing.T) {
	weekly := recurringRule(540, 1020, time.Monday)
	// 2026-03-02 is a Monday, squarely inside the weekly window.
	oneTime := oneTimeRule("2026-03-02", "2026-03-02", 540, 1020)

	assert.False(t, Conflicts(weekly, oneTime))
	assert.False(t, Conflicts(oneTime, weekly))
}

func TestConflictsSelf(t *testing.T) {
	r := recurringRule(540, 1020, time.Monday)
	assert.True(t, Conflicts(r, r), "a rule always conflicts with an identical rule")

	o := oneTimeRule("2026-03-02", "2026-03-02", 540, 1020)
	assert.True(t, Conflicts(o, o))
}
