package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	a.id, a.user_id, a.date, a.check_in, a.check_out, a.status, a.total_hours, a.reason,
	a.created_at, a.updated_at`

const recordWithUserColumns = recordColumns + `,
	u.name, u.employee_code, u.department`

func scanRecord(row pgx.Row, withUser bool) (attendance.Record, error) {
	var rec attendance.Record
	dest := []any{
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status, &rec.TotalHours, &rec.Reason,
		&rec.CreatedAt, &rec.UpdatedAt,
	}
	if withUser {
		dest = append(dest, &rec.UserName, &rec.EmployeeCode, &rec.Department)
	}
	err := row.Scan(dest...)
	return rec, err
}

func collectRecords(rows pgx.Rows, withUser bool) ([]attendance.Record, error) {
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows, withUser)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return records, nil
}

// Create implements attendance.AttendanceRepository.
// The (user_id, date) unique constraint makes a concurrent second check-in lose.
func (a *attendanceRepository) Create(ctx context.Context, newRecord attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	if newRecord.ID == "" {
		newRecord.ID = uuid.New().String()
	}
	if newRecord.CreatedAt.IsZero() {
		newRecord.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO attendances AS a (
			id, user_id, date, check_in, check_out, status, total_hours, reason, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $9
		)
		ON CONFLICT ON CONSTRAINT attendances_user_date_key DO NOTHING
		RETURNING ` + recordColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		newRecord.ID,
		newRecord.UserID,
		newRecord.Date,
		newRecord.CheckIn,
		newRecord.CheckOut,
		newRecord.Status,
		newRecord.TotalHours,
		newRecord.Reason,
		newRecord.CreatedAt,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordColumns + ` FROM attendances a WHERE a.user_id = $1 AND a.date = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, userID, date), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}
	return rec, nil
}

// CompleteCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances AS a
		SET check_out = $2, total_hours = $3, updated_at = $2
		WHERE a.id = $1 AND a.check_out IS NULL
		RETURNING ` + recordColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, id, checkOut, totalHours), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Record{}, fmt.Errorf("failed to check out attendance: %w", err)
	}
	return rec, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		ORDER BY a.date DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by user: %w", err)
	}
	return collectRecords(rows, false)
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordWithUserColumns + `
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.date = $1
		ORDER BY a.check_in ASC NULLS LAST`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	return collectRecords(rows, true)
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordWithUserColumns + `
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.date DESC, a.check_in DESC NULLS LAST`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return collectRecords(rows, true)
}
