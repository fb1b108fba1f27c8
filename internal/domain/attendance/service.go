package attendance

import (
	"context"
)

// AttendanceService drives the per user, per day check-in/check-out lifecycle.
type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// Today reports whether the user has a record for the current date.
	Today(ctx context.Context, userID string) (TodayResponse, error)

	// History returns the user's records, newest date first.
	History(ctx context.Context, userID string) ([]RecordResponse, error)

	// TodayStatus returns every record for the current date with user names.
	TodayStatus(ctx context.Context) ([]RecordResponse, error)
}
