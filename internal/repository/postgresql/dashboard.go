package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployees returns the number of users with the employee role
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'employee'`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}

// CountByDate returns present (Present or Late) and late counts in single query
func (r *dashboardRepositoryImpl) CountByDate(ctx context.Context, date string) (dashboard.DayCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status IN ('Present', 'Late') THEN 1 ELSE 0 END), 0) AS present,
			COALESCE(SUM(CASE WHEN status = 'Late' THEN 1 ELSE 0 END), 0) AS late
		FROM attendances
		WHERE date = $1
	`

	var counts dashboard.DayCounts
	if err := q.QueryRow(ctx, query, date).Scan(&counts.Present, &counts.Late); err != nil {
		return dashboard.DayCounts{}, fmt.Errorf("failed to count attendance by date: %w", err)
	}
	return counts, nil
}

// ListAbsentEmployees returns employees with no record at all on date
func (r *dashboardRepositoryImpl) ListAbsentEmployees(ctx context.Context, date string) ([]dashboard.AbsentEmployee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.employee_code, u.department
		FROM users u
		WHERE u.role = 'employee'
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a WHERE a.user_id = u.id AND a.date = $1
		  )
		ORDER BY u.name ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list absent employees: %w", err)
	}
	defer rows.Close()

	absent := make([]dashboard.AbsentEmployee, 0)
	for rows.Next() {
		var e dashboard.AbsentEmployee
		if err := rows.Scan(&e.ID, &e.Name, &e.EmployeeID, &e.Department); err != nil {
			return nil, fmt.Errorf("failed to scan absent employee: %w", err)
		}
		absent = append(absent, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absent employees: %w", err)
	}
	return absent, nil
}

// WeeklyStats groups records created since the given instant by their date
func (r *dashboardRepositoryImpl) WeeklyStats(ctx context.Context, since time.Time) ([]dashboard.WeeklyStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, COUNT(*)
		FROM attendances
		WHERE created_at >= $1
		GROUP BY date
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly stats: %w", err)
	}
	defer rows.Close()

	stats := make([]dashboard.WeeklyStat, 0)
	for rows.Next() {
		var s dashboard.WeeklyStat
		if err := rows.Scan(&s.Date, &s.Attendees); err != nil {
			return nil, fmt.Errorf("failed to scan weekly stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly stats: %w", err)
	}
	return stats, nil
}

// DepartmentStats groups the date's records by department
func (r *dashboardRepositoryImpl) DepartmentStats(ctx context.Context, date string) ([]dashboard.DepartmentStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(NULLIF(u.department, ''), $2) AS department, COUNT(*)
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.date = $1
		GROUP BY 1
		ORDER BY 1 ASC
	`

	rows, err := q.Query(ctx, query, date, dashboard.UnknownDepartment)
	if err != nil {
		return nil, fmt.Errorf("failed to get department stats: %w", err)
	}
	defer rows.Close()

	stats := make([]dashboard.DepartmentStat, 0)
	for rows.Next() {
		var s dashboard.DepartmentStat
		if err := rows.Scan(&s.Name, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan department stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate department stats: %w", err)
	}
	return stats, nil
}
