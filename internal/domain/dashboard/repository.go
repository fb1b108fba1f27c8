package dashboard

import (
	"context"
	"time"
)

// DayCounts holds the attendance counts of one date.
type DayCounts struct {
	Present int64 // Present or Late
	Late    int64
}

// UnknownDepartment buckets records whose user has no department.
const UnknownDepartment = "Unknown"

type DashboardRepository interface {
	CountEmployees(ctx context.Context) (int64, error)
	CountByDate(ctx context.Context, date string) (DayCounts, error)

	// ListAbsentEmployees returns employees without any record on date, whatever its status.
	ListAbsentEmployees(ctx context.Context, date string) ([]AbsentEmployee, error)

	// WeeklyStats groups records created at or after since by record date, ascending.
	WeeklyStats(ctx context.Context, since time.Time) ([]WeeklyStat, error)

	// DepartmentStats groups the date's records by user department.
	DepartmentStats(ctx context.Context, date string) ([]DepartmentStat, error)
}
