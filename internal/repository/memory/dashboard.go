package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type dashboardRepository struct {
	store *Store
}

func NewDashboardRepository(store *Store) dashboard.DashboardRepository {
	return &dashboardRepository{store: store}
}

// CountEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountEmployees(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var total int64
	for _, u := range r.store.users {
		if u.Role == user.RoleEmployee {
			total++
		}
	}
	return total, nil
}

// CountByDate implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountByDate(_ context.Context, date string) (dashboard.DayCounts, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var counts dashboard.DayCounts
	for _, rec := range r.store.records {
		if rec.Date != date {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			counts.Present++
		case attendance.StatusLate:
			counts.Present++
			counts.Late++
		}
	}
	return counts, nil
}

// ListAbsentEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepository) ListAbsentEmployees(_ context.Context, date string) ([]dashboard.AbsentEmployee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	hasRecord := make(map[string]bool)
	for _, rec := range r.store.records {
		if rec.Date == date {
			hasRecord[rec.UserID] = true
		}
	}

	absent := make([]dashboard.AbsentEmployee, 0)
	for _, u := range r.store.users {
		if u.Role != user.RoleEmployee || hasRecord[u.ID] {
			continue
		}
		absent = append(absent, dashboard.AbsentEmployee{
			ID:         u.ID,
			Name:       u.Name,
			EmployeeID: u.EmployeeCode,
			Department: u.Department,
		})
	}
	sort.Slice(absent, func(i, j int) bool { return absent[i].Name < absent[j].Name })
	return absent, nil
}

// WeeklyStats implements dashboard.DashboardRepository.
func (r *dashboardRepository) WeeklyStats(_ context.Context, since time.Time) ([]dashboard.WeeklyStat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	perDate := make(map[string]int64)
	for _, rec := range r.store.records {
		if rec.CreatedAt.Before(since) {
			continue
		}
		perDate[rec.Date]++
	}

	stats := make([]dashboard.WeeklyStat, 0, len(perDate))
	for date, n := range perDate {
		stats = append(stats, dashboard.WeeklyStat{Date: date, Attendees: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats, nil
}

// DepartmentStats implements dashboard.DashboardRepository.
func (r *dashboardRepository) DepartmentStats(_ context.Context, date string) ([]dashboard.DepartmentStat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	perDept := make(map[string]int64)
	for _, rec := range r.store.records {
		if rec.Date != date {
			continue
		}
		dept := dashboard.UnknownDepartment
		if u, ok := r.store.users[rec.UserID]; ok && u.Department != "" {
			dept = u.Department
		}
		perDept[dept]++
	}

	stats := make([]dashboard.DepartmentStat, 0, len(perDept))
	for name, n := range perDept {
		stats = append(stats, dashboard.DepartmentStat{Name: name, Value: n})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats, nil
}
