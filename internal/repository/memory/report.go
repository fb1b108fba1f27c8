package memory

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
)

type reportRepository struct {
	store *Store
}

func NewReportRepository(store *Store) report.ReportRepository {
	return &reportRepository{store: store}
}

// CountByStatus implements report.ReportRepository.
func (r *reportRepository) CountByStatus(_ context.Context, userID string) (report.StatusCounts, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var counts report.StatusCounts
	for _, rec := range r.store.records {
		if rec.UserID != userID {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			counts.Present++
		case attendance.StatusLate:
			counts.Late++
		case attendance.StatusAbsent:
			counts.Absent++
		}
	}
	return counts, nil
}

// CountMissedDays implements report.ReportRepository.
func (r *reportRepository) CountMissedDays(_ context.Context, userID string, from, to string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	attended := make(map[string]bool)
	for _, rec := range r.store.records {
		if rec.Date < from || rec.Date > to {
			continue
		}
		if rec.UserID == userID {
			attended[rec.Date] = true
		} else if _, seen := attended[rec.Date]; !seen {
			attended[rec.Date] = false
		}
	}

	var missed int64
	for _, mine := range attended {
		if !mine {
			missed++
		}
	}
	return missed, nil
}
