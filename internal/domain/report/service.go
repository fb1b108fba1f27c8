package report

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

type ReportService interface {
	// Summary counts the user's present, late and absent days.
	Summary(ctx context.Context, userID string) (SummaryResponse, error)

	// Ledger returns every record matching the filter, newest date first.
	Ledger(ctx context.Context, filter LedgerFilter) ([]attendance.RecordResponse, error)

	// Export renders the filtered ledger as CSV or XLSX.
	Export(ctx context.Context, req ExportRequest) (ExportFile, error)
}
