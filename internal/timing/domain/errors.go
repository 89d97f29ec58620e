package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is returned when a timing record cannot be found
	ErrRecordNotFound = errors.New("timing record not found")

	// ErrJobNotFound is returned when the linked job is absent
	ErrJobNotFound = errors.New("job not found")

	// ErrUserNotFound is returned when the linked user is absent
	ErrUserNotFound = errors.New("user not found")

	// ErrScheduleConflict is returned when a transition is attempted on a
	// submission that is not in the scheduled state
	ErrScheduleConflict = errors.New("scheduled submission is not in scheduled status")

	// ErrHistoryIndexOutOfRange is returned when a response targets a
	// submission history index that does not exist
	ErrHistoryIndexOutOfRange = errors.New("submission history index out of range")

	// ErrResponseAlreadyRecorded is returned when a history entry's
	// response fields have already been set
	ErrResponseAlreadyRecorded = errors.New("response already recorded for this submission")
)

// ValidationError reports invalid caller input. No mutation has happened
// when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
