package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	weeklyWindow = 7 * 24 * time.Hour
	recentLimit  = 5
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	classifier     attendance.Classifier
	now            func() time.Time
}

// NewDashboardService builds the dashboard service. A nil clock means time.Now.
func NewDashboardService(
	repo dashboard.DashboardRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	classifier attendance.Classifier,
	clock func() time.Time,
) dashboard.DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		attendanceRepo:      attendanceRepo,
		userRepo:            userRepo,
		classifier:          classifier,
		now:                 clock,
	}
}

// Manager implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Manager(ctx context.Context) (dashboard.ManagerSnapshot, error) {
	now := s.now()
	today := s.classifier.DateKey(now)
	since := now.Add(-weeklyWindow)

	snapshot := dashboard.ManagerSnapshot{Date: today}

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Directory size
	g.Go(func() error {
		total, err := s.CountEmployees(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		snapshot.TotalEmployees = total
		return nil
	})

	// 2. Present and late counts for today (1 query)
	g.Go(func() error {
		counts, err := s.CountByDate(gCtx, today)
		if err != nil {
			return fmt.Errorf("failed to count today's attendance: %w", err)
		}
		snapshot.PresentToday = counts.Present
		snapshot.LateToday = counts.Late
		return nil
	})

	// 3. Employees without a record today
	g.Go(func() error {
		absent, err := s.ListAbsentEmployees(gCtx, today)
		if err != nil {
			return fmt.Errorf("failed to list absent employees: %w", err)
		}
		snapshot.AbsentEmployees = absent
		return nil
	})

	// 4. Trailing week trend
	g.Go(func() error {
		stats, err := s.WeeklyStats(gCtx, since)
		if err != nil {
			return fmt.Errorf("failed to get weekly stats: %w", err)
		}
		snapshot.WeeklyStats = stats
		return nil
	})

	// 5. Department breakdown for today
	g.Go(func() error {
		stats, err := s.DepartmentStats(gCtx, today)
		if err != nil {
			return fmt.Errorf("failed to get department stats: %w", err)
		}
		snapshot.DepartmentStats = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.ManagerSnapshot{}, err
	}

	if snapshot.AbsentEmployees == nil {
		snapshot.AbsentEmployees = []dashboard.AbsentEmployee{}
	}
	if snapshot.WeeklyStats == nil {
		snapshot.WeeklyStats = []dashboard.WeeklyStat{}
	}
	if snapshot.DepartmentStats == nil {
		snapshot.DepartmentStats = []dashboard.DepartmentStat{}
	}

	return snapshot, nil
}

// Employee implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Employee(ctx context.Context, userID string) (dashboard.EmployeeDashboard, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return dashboard.EmployeeDashboard{}, err
	}

	records, err := s.attendanceRepo.ListByUser(ctx, userID)
	if err != nil {
		return dashboard.EmployeeDashboard{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(decimal.NewFromFloat(rec.TotalHours))
	}

	recent := records
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return dashboard.EmployeeDashboard{
		TotalHours: total.Round(1).InexactFloat64(),
		Recent:     attendance.NewRecordResponses(recent),
	}, nil
}
