package models

import "time"

// AvailabilityBase is a provider's standing availability rule. A recurring
// base carries a recurrence token ("weekly:Mon,Wed,Fri") and empty dates; a
// one-time base carries an inclusive date range and an empty token.
type AvailabilityBase struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"provider_id" json:"provider_id"`
	Recurrence  string    `bson:"recurrence,omitempty" json:"recurrence,omitempty"`
	StartDate   string    `bson:"start_date,omitempty" json:"start_date,omitempty"` // "2006-01-02"
	EndDate     string    `bson:"end_date,omitempty" json:"end_date,omitempty"`     // inclusive
	StartMinute int       `bson:"start" json:"start"`                               // minutes from midnight
	EndMinute   int       `bson:"end" json:"end"`                                   // exclusive
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// AvailabilityException carves a window out of one AvailabilityBase. Its
// minute range is always fully contained in the parent base's range, and its
// lifecycle is bound to the base (cascade delete).
type AvailabilityException struct {
	ID          string    `bson:"id" json:"id"`
	BaseID      string    `bson:"base_id" json:"base_id"`
	ProviderID  string    `bson:"provider_id" json:"provider_id"`
	StartMinute int       `bson:"start" json:"start"`
	EndMinute   int       `bson:"end" json:"end"`
	Reason      string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// TimeOff is an independent block-out period. It is not tied to any base and
// always wins over base availability when both cover the same instant.
type TimeOff struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"provider_id" json:"provider_id"`
	Recurrence  string    `bson:"recurrence,omitempty" json:"recurrence,omitempty"`
	StartDate   string    `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     string    `bson:"end_date,omitempty" json:"end_date,omitempty"`
	StartMinute int       `bson:"start" json:"start"`
	EndMinute   int       `bson:"end" json:"end"`
	Reason      string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// ScheduleRuleInput is the unified write payload. It accepts the three legacy
// shapes the old clients still send: an ISO timestamp pair with an optional
// recurrence token, a day-of-week plus wall-clock times with an is_recurring
// flag and optional specific date, or a date range plus wall-clock times with
// an all-day flag (time-off).
type ScheduleRuleInput struct {
	StartTime    string `json:"start_time,omitempty"` // RFC3339 timestamp or "HH:MM"
	EndTime      string `json:"end_time,omitempty"`
	Recurrence   string `json:"recurrence,omitempty"` // e.g. "weekly:Mon,Wed,Fri"
	DayOfWeek    *int   `json:"day_of_week,omitempty"`
	IsRecurring  bool   `json:"is_recurring,omitempty"`
	SpecificDate string `json:"specific_date,omitempty"` // "2006-01-02"
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	AllDay       bool   `json:"all_day,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// ExceptionInput is the write payload for an exception under a base.
type ExceptionInput struct {
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason,omitempty"`
}

// AvailableInterval represents a continuous open time block on one day.
type AvailableInterval struct {
	Start int    `json:"start"` // Minutes from midnight
	End   int    `json:"end"`   // Minutes from midnight
	Label string `json:"label"` // e.g., "9:00 AM - 10:30 AM"
}
