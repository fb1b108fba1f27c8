package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
	StatusHalfDay Status = "Half-day"
)

// ReasonOnTime is stored for every check-in that is not late.
const ReasonOnTime = "On Time"

// Record is one user's attendance for one calendar date.
type Record struct {
	ID         string
	UserID     string
	Date       string // YYYY-MM-DD in the attendance time zone
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	TotalHours float64
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined from users
	UserName     *string
	EmployeeCode *string
	Department   *string
}

// CheckedOut reports whether the record reached its terminal state.
func (r *Record) CheckedOut() bool {
	return r.CheckOut != nil
}
