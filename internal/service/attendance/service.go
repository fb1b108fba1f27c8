package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	userRepo   user.UserRepository
	classifier attendance.Classifier
	now        func() time.Time
}

// NewAttendanceService builds the lifecycle service. A nil clock means time.Now.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	classifier attendance.Classifier,
	clock func() time.Time,
) attendance.AttendanceService {
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		userRepo:             userRepo,
		classifier:           classifier,
		now:                  clock,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().UTC()
	date := s.classifier.DateKey(now)

	_, err := s.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, date)
	switch {
	case err == nil:
		metrics.RejectedTransitions.WithLabelValues("check_in", "already_checked_in").Inc()
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	case !errors.Is(err, attendance.ErrRecordNotFound):
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up today's attendance: %w", err)
	}

	status := s.classifier.Classify(now)
	reason := attendance.ReasonOnTime
	if status == attendance.StatusLate {
		if strings.TrimSpace(req.Reason) == "" {
			metrics.RejectedTransitions.WithLabelValues("check_in", "missing_reason").Inc()
			return attendance.RecordResponse{}, attendance.ErrMissingReason
		}
		reason = req.Reason
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Record{
		UserID:    req.UserID,
		Date:      date,
		CheckIn:   &now,
		Status:    status,
		Reason:    reason,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			metrics.RejectedTransitions.WithLabelValues("check_in", "already_checked_in").Inc()
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	metrics.CheckIns.WithLabelValues(string(status)).Inc()
	return attendance.NewRecordResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().UTC()
	date := s.classifier.DateKey(now)

	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			metrics.RejectedTransitions.WithLabelValues("check_out", "not_checked_in").Inc()
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if record.CheckedOut() {
		metrics.RejectedTransitions.WithLabelValues("check_out", "already_checked_out").Inc()
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	var hours float64
	if record.CheckIn != nil {
		hours = attendance.WorkedHours(*record.CheckIn, now)
	}

	updated, err := s.AttendanceRepository.CompleteCheckOut(ctx, record.ID, now, hours)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			metrics.RejectedTransitions.WithLabelValues("check_out", "already_checked_out").Inc()
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	metrics.CheckOuts.Inc()
	metrics.WorkedHours.Observe(hours)
	return attendance.NewRecordResponse(updated), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	record, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, s.classifier.DateKey(s.now()))
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.TodayResponse{CheckedIn: false}, nil
		}
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	resp := attendance.NewRecordResponse(record)
	return attendance.TodayResponse{CheckedIn: true, Record: &resp}, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, userID string) ([]attendance.RecordResponse, error) {
	records, err := s.AttendanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}
	return attendance.NewRecordResponses(records), nil
}

// TodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayStatus(ctx context.Context) ([]attendance.RecordResponse, error) {
	records, err := s.AttendanceRepository.ListByDate(ctx, s.classifier.DateKey(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendance: %w", err)
	}
	return attendance.NewRecordResponses(records), nil
}
