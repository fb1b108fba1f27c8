package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.records {
		if existing.UserID == rec.UserID && existing.Date == rec.Date {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.UpdatedAt = rec.CreatedAt
	rec.UserName, rec.EmployeeCode, rec.Department = nil, nil, nil
	r.store.records[rec.ID] = rec
	return rec, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByUserAndDate(_ context.Context, userID string, date string) (attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, rec := range r.store.records {
		if rec.UserID == userID && rec.Date == date {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

// CompleteCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) CompleteCheckOut(_ context.Context, id string, checkOut time.Time, totalHours float64) (attendance.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	if rec.CheckedOut() {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}

	rec.CheckOut = &checkOut
	rec.TotalHours = totalHours
	rec.UpdatedAt = checkOut
	r.store.records[id] = rec
	return rec, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(_ context.Context, userID string) ([]attendance.Record, error) {
	return r.list(func(rec attendance.Record) bool { return rec.UserID == userID }, false), nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(_ context.Context, date string) ([]attendance.Record, error) {
	records := r.list(func(rec attendance.Record) bool { return rec.Date == date }, true)
	sort.SliceStable(records, func(i, j int) bool {
		return checkInBefore(records[i], records[j])
	})
	return records, nil
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListAll(_ context.Context) ([]attendance.Record, error) {
	return r.list(func(attendance.Record) bool { return true }, true), nil
}

// list returns matching records newest date first, latest check-in first within a date.
func (r *attendanceRepository) list(match func(attendance.Record) bool, withUser bool) []attendance.Record {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]attendance.Record, 0)
	for _, rec := range r.store.records {
		if !match(rec) {
			continue
		}
		if withUser {
			rec = r.store.withUser(rec)
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		if checkInBefore(records[j], records[i]) {
			return true
		}
		if checkInBefore(records[i], records[j]) {
			return false
		}
		return records[i].ID < records[j].ID
	})
	return records
}

// checkInBefore orders by check-in ascending with missing check-ins last.
func checkInBefore(a, b attendance.Record) bool {
	switch {
	case a.CheckIn == nil:
		return false
	case b.CheckIn == nil:
		return true
	default:
		return a.CheckIn.Before(*b.CheckIn)
	}
}
