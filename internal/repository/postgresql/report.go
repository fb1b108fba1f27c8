package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// CountByStatus implements report.ReportRepository.
func (r *reportRepositoryImpl) CountByStatus(ctx context.Context, userID string) (report.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'Present' THEN 1 ELSE 0 END), 0) AS present,
			COALESCE(SUM(CASE WHEN status = 'Late' THEN 1 ELSE 0 END), 0) AS late,
			COALESCE(SUM(CASE WHEN status = 'Absent' THEN 1 ELSE 0 END), 0) AS absent
		FROM attendances
		WHERE user_id = $1
	`

	var counts report.StatusCounts
	if err := q.QueryRow(ctx, query, userID).Scan(&counts.Present, &counts.Late, &counts.Absent); err != nil {
		return report.StatusCounts{}, fmt.Errorf("failed to count attendance by status: %w", err)
	}
	return counts, nil
}

// CountMissedDays implements report.ReportRepository.
func (r *reportRepositoryImpl) CountMissedDays(ctx context.Context, userID string, from, to string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT a.date)
		FROM attendances a
		WHERE a.date BETWEEN $2 AND $3
		  AND NOT EXISTS (
			SELECT 1 FROM attendances mine
			WHERE mine.user_id = $1 AND mine.date = a.date
		  )
	`

	var missed int64
	if err := q.QueryRow(ctx, query, userID, from, to).Scan(&missed); err != nil {
		return 0, fmt.Errorf("failed to count missed days: %w", err)
	}
	return missed, nil
}
