package availability

import (
	"errors"
	"fmt"
)

// Kind classifies engine errors so the HTTP layer can map them onto statuses
// without string matching.
type Kind string

const (
	KindInvalidInput     Kind = "invalidInput"     // empty day set, missing fields
	KindMalformedTime    Kind = "malformedTime"    // unparsable clock, date or timestamp
	KindInvalidRange     Kind = "invalidRange"     // end not after start, exception outside base
	KindConflict         Kind = "conflict"         // overlap with an existing same-kind rule
	KindNotFound         Kind = "notFound"         // provider or base does not exist
	KindStoreUnavailable Kind = "storeUnavailable" // store call failed or exceeded its budget
)

// Error is the engine's error type.
type Error struct {
	Kind       Kind
	Message    string
	ConflictID string // set for KindConflict: the ID of the rule we collided with
	Timeout    bool   // set for KindStoreUnavailable when the store budget elapsed
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds an engine error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// NewConflictError reports an overlap with the existing rule withID.
func NewConflictError(withID string) *Error {
	return &Error{
		Kind:       KindConflict,
		Message:    fmt.Sprintf("overlaps existing rule %s", withID),
		ConflictID: withID,
	}
}

// AsError unwraps err into an engine *Error, or nil if it is not one.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, kind Kind) bool {
	if e := AsError(err); e != nil {
		return e.Kind == kind
	}
	return false
}

// IsConflict reports whether err is a conflict rejection.
func IsConflict(err error) bool {
	return IsKind(err, KindConflict)
}
