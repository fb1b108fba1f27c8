package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrMissingReason     = errors.New("a reason is required for late check-in")
	ErrNotCheckedIn      = errors.New("not checked in")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrRecordNotFound    = errors.New("attendance record not found")
)
