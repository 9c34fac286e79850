package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRecurrence(t *testing.T) {
	tests := []struct {
		name string
		days DaySet
		want string
	}{
		{
			name: "single day",
			days: NewDaySet(time.Monday),
			want: "weekly:Mon",
		},
		{
			name: "canonical order is Sun-first regardless of insertion order",
			days: NewDaySet(time.Friday, time.Monday, time.Wednesday),
			want: "weekly:Mon,Wed,Fri",
		},
		{
			name: "sunday sorts first",
			days: NewDaySet(time.Saturday, time.Sunday),
			want: "weekly:Sun,Sat",
		},
		{
			name: "full week",
			days: NewDaySet(time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday),
			want: "weekly:Sun,Mon,Tue,Wed,Thu,Fri,Sat",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeRecurrence(tt.days)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeRecurrenceEmptySet(t *testing.T) {
	_, err := EncodeRecurrence(0)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidInput))
}

func TestDecodeRecurrence(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  DaySet
	}{
		{"single day", "weekly:Mon", NewDaySet(time.Monday)},
		{"multiple days", "weekly:Mon,Wed,Fri", NewDaySet(time.Monday, time.Wednesday, time.Friday)},
		{"spaces around abbrevs tolerated", "weekly:Mon, Wed", NewDaySet(time.Monday, time.Wednesday)},
		{"empty token", "", 0},
		{"missing prefix", "Mon,Wed", 0},
		{"wrong prefix", "daily:Mon", 0},
		{"unknown abbrev poisons the whole token", "weekly:Mon,Funday", 0},
		{"full day names rejected", "weekly:Monday", 0},
		{"case sensitive", "weekly:mon", 0},
		{"bare prefix", "weekly:", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeRecurrence(tt.token))
		})
	}
}

func TestRecurrenceRoundTrip(t *testing.T) {
	days := NewDaySet(time.Tuesday, time.Thursday, time.Saturday)
	token, err := EncodeRecurrence(days)
	require.NoError(t, err)
	assert.Equal(t, days, DecodeRecurrence(token))
}

func TestDaySetOperations(t *testing.T) {
	s := NewDaySet(time.Monday, time.Friday)

	assert.True(t, s.Has(time.Monday))
	assert.True(t, s.Has(time.Friday))
	assert.False(t, s.Has(time.Sunday))
	assert.False(t, s.IsEmpty())
	assert.True(t, DaySet(0).IsEmpty())

	assert.True(t, s.Intersects(NewDaySet(time.Friday, time.Saturday)))
	assert.False(t, s.Intersects(NewDaySet(time.Tuesday, time.Wednesday)))

	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, s.Days())
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(0)
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	d, err = ParseWeekday(6)
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, d)

	_, err = ParseWeekday(7)
	assert.True(t, IsKind(err, KindMalformedTime))

	_, err = ParseWeekday(-1)
	assert.True(t, IsKind(err, KindMalformedTime))
}
