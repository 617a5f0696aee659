package schedule

import (
	"errors"
	"fmt"
)

// Error codes for expected scheduling validation failures. These are
// returned, never panicked; callers translate them into user-facing
// messaging.
const (
	CodeInvalidTimeOrder      = "invalidTimeOrder"
	CodeOverlapConflict       = "overlapConflict"
	CodeNoSlotAvailable       = "noSlotAvailable"
	CodeOutOfRangeDuration    = "outOfRangeDuration"
	CodeNoAvailabilityForDate = "noAvailabilityForDate"
)

// ScheduleError is a typed validation failure from the availability editor
// or the slot calculator.
type ScheduleError struct {
	Code    string
	Message string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a ScheduleError with one of the Code* constants. Exposed
// so the booking layer can raise taxonomy errors (out-of-range duration)
// that only it can detect.
func NewError(code, format string, args ...any) error {
	return &ScheduleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func newScheduleError(code, format string, args ...any) error {
	return NewError(code, format, args...)
}

// ErrCode extracts the schedule error code from err, or "" when err is nil
// or not a ScheduleError.
func ErrCode(err error) string {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
