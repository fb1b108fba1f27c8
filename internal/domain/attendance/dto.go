package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "userId",
			Message: "userId is required",
		})
	}

	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	UserID string `json:"userId"`
}

func (r *CheckOutRequest) Validate() error {
	if validator.IsEmpty(r.UserID) {
		return validator.ValidationErrors{{
			Field:   "userId",
			Message: "userId is required",
		}}
	}
	return nil
}

// RecordUser carries the populated user fields of a record.
type RecordUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId,omitempty"`
	Department string `json:"department,omitempty"`
}

type RecordResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	User         *RecordUser `json:"user,omitempty"`
	Date         string      `json:"date"`
	CheckInTime  *string     `json:"checkInTime"`
	CheckOutTime *string     `json:"checkOutTime"`
	Status       Status      `json:"status"`
	TotalHours   float64     `json:"totalHours"`
	Reason       string      `json:"reason"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

type TodayResponse struct {
	CheckedIn bool            `json:"checkedIn"`
	Record    *RecordResponse `json:"record"`
}

// timePtrToString safely converts a *time.Time to an RFC 3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func NewRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Date:         r.Date,
		CheckInTime:  timePtrToString(r.CheckIn),
		CheckOutTime: timePtrToString(r.CheckOut),
		Status:       r.Status,
		TotalHours:   r.TotalHours,
		Reason:       r.Reason,
		CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if r.UserName != nil {
		resp.User = &RecordUser{
			ID:         r.UserID,
			Name:       *r.UserName,
			EmployeeID: derefString(r.EmployeeCode),
			Department: derefString(r.Department),
		}
	}
	return resp
}

// NewRecordResponses never returns nil so empty lists encode as [].
func NewRecordResponses(records []Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewRecordResponse(r))
	}
	return out
}
