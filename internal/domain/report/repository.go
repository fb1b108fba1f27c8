package report

import "context"

// StatusCounts holds persisted record counts per status for one user.
type StatusCounts struct {
	Present int64
	Late    int64
	Absent  int64
}

type ReportRepository interface {
	// CountByStatus counts the user's stored records by status.
	CountByStatus(ctx context.Context, userID string) (StatusCounts, error)

	// CountMissedDays counts the distinct dates in [from, to] on which anyone has a record
	// and the user has none.
	CountMissedDays(ctx context.Context, userID string, from, to string) (int64, error)
}
