package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the record store.
type AttendanceRepository interface {
	// Create inserts a record. A second record for the same (user, date) fails with ErrAlreadyCheckedIn.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByUserAndDate returns ErrRecordNotFound when the user has no record for date.
	GetByUserAndDate(ctx context.Context, userID string, date string) (Record, error)

	// CompleteCheckOut sets the check-out once. A record that already has one fails with ErrAlreadyCheckedOut.
	CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (Record, error)

	// ListByUser returns the user's records, newest date first.
	ListByUser(ctx context.Context, userID string) ([]Record, error)

	// ListByDate returns every record for date with user fields populated.
	ListByDate(ctx context.Context, date string) ([]Record, error)

	// ListAll returns every record with user fields populated, newest date first.
	ListAll(ctx context.Context) ([]Record, error)
}
