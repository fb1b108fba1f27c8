package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	Ledger(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func ledgerFilterFromQuery(r *http.Request) report.LedgerFilter {
	q := r.URL.Query()
	return report.LedgerFilter{
		Name:      q.Get("name"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
}

// Summary handles GET /attendance/my-summary/{userId}
func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r, "userId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.Summary(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Ledger handles GET /attendance/all?name=&start_date=&end_date=
func (h *reportHandlerImpl) Ledger(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Ledger(r.Context(), ledgerFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export handles GET /attendance/export?format=csv|xlsx
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := report.ExportRequest{
		LedgerFilter: ledgerFilterFromQuery(r),
		Format:       report.ExportFormat(r.URL.Query().Get("format")),
	}

	file, err := h.reportService.Export(r.Context(), req)
	if err != nil {
		slog.Error("Export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.FileName, file.ContentType, file.Content)
}
