package report

import (
	"errors"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// SummaryResponse counts a user's days by status.
type SummaryResponse struct {
	Present int64 `json:"present"`
	Late    int64 `json:"late"`
	Absent  int64 `json:"absent"`
}

// LedgerFilter narrows the full ledger. Empty fields match everything.
type LedgerFilter struct {
	Name      string `json:"name,omitempty"`
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
}

func (f *LedgerFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Name = strings.TrimSpace(f.Name)

	start, startOK := validator.IsValidDate(f.StartDate)
	if f.StartDate != "" && !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if f.EndDate != "" && !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Match reports whether r passes the filter. Dates compare as YYYY-MM-DD strings.
func (f LedgerFilter) Match(r attendance.Record) bool {
	if f.Name != "" {
		if r.UserName == nil || !strings.Contains(strings.ToLower(*r.UserName), strings.ToLower(f.Name)) {
			return false
		}
	}
	if f.StartDate != "" && r.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && r.Date > f.EndDate {
		return false
	}
	return true
}

// Apply keeps the records that match, preserving order.
func (f LedgerFilter) Apply(records []attendance.Record) []attendance.Record {
	out := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

type ExportRequest struct {
	LedgerFilter
	Format ExportFormat `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors
	var filterErrs validator.ValidationErrors
	if err := r.LedgerFilter.Validate(); errors.As(err, &filterErrs) {
		errs = append(errs, filterErrs...)
	}

	if r.Format == "" {
		r.Format = ExportCSV
	}
	if r.Format != ExportCSV && r.Format != ExportXLSX {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: csv, xlsx",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportFile is a rendered ledger ready to be served as a download.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
