package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/xuri/excelize/v2"
)

const (
	exportBaseName = "attendance_report"
	exportSheet    = "Attendance"
	missingCell    = "-"
)

var exportHeader = []string{"Employee", "Date", "In", "Out", "Status", "Reason"}

type ReportServiceImpl struct {
	report.ReportRepository
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	classifier     attendance.Classifier
	now            func() time.Time
}

// NewReportService builds the reporting service. A nil clock means time.Now.
func NewReportService(
	reportRepo report.ReportRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	classifier attendance.Classifier,
	clock func() time.Time,
) report.ReportService {
	if clock == nil {
		clock = time.Now
	}
	return &ReportServiceImpl{
		ReportRepository: reportRepo,
		attendanceRepo:   attendanceRepo,
		userRepo:         userRepo,
		classifier:       classifier,
		now:              clock,
	}
}

// Summary implements report.ReportService.
// Absent counts the days since registration on which someone checked in but the user did not,
// plus any stored Absent records.
func (s *ReportServiceImpl) Summary(ctx context.Context, userID string) (report.SummaryResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return report.SummaryResponse{}, err
	}

	counts, err := s.ReportRepository.CountByStatus(ctx, userID)
	if err != nil {
		return report.SummaryResponse{}, fmt.Errorf("failed to count attendance: %w", err)
	}

	from := s.classifier.DateKey(u.CreatedAt)
	to := s.classifier.DateKey(s.now())
	missed, err := s.ReportRepository.CountMissedDays(ctx, userID, from, to)
	if err != nil {
		return report.SummaryResponse{}, fmt.Errorf("failed to count missed days: %w", err)
	}

	return report.SummaryResponse{
		Present: counts.Present,
		Late:    counts.Late,
		Absent:  counts.Absent + missed,
	}, nil
}

// Ledger implements report.ReportService.
func (s *ReportServiceImpl) Ledger(ctx context.Context, filter report.LedgerFilter) ([]attendance.RecordResponse, error) {
	records, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return attendance.NewRecordResponses(records), nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ExportFile{}, err
	}

	records, err := s.filtered(ctx, req.LedgerFilter)
	if err != nil {
		return report.ExportFile{}, err
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, exportRow(rec))
	}

	switch req.Format {
	case report.ExportXLSX:
		content, err := renderXLSX(rows)
		if err != nil {
			return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
		}
		return report.ExportFile{
			FileName:    exportBaseName + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	default:
		content, err := renderCSV(rows)
		if err != nil {
			return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrExportFailed, err)
		}
		return report.ExportFile{
			FileName:    exportBaseName + ".csv",
			ContentType: "text/csv; charset=utf-8",
			Content:     content,
		}, nil
	}
}

func (s *ReportServiceImpl) filtered(ctx context.Context, filter report.LedgerFilter) ([]attendance.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return filter.Apply(records), nil
}

func exportRow(rec attendance.Record) []string {
	name := missingCell
	if rec.UserName != nil {
		name = escapeFormula(*rec.UserName)
	}
	return []string{
		name,
		rec.Date,
		formatInstant(rec.CheckIn),
		formatInstant(rec.CheckOut),
		string(rec.Status),
		escapeFormula(rec.Reason),
	}
}

// escapeFormula quotes free text that a spreadsheet would otherwise evaluate as a formula.
func escapeFormula(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}

func formatInstant(t *time.Time) string {
	if t == nil {
		return missingCell
	}
	return t.UTC().Format(time.RFC3339)
}

func renderCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, err
	}

	writeRow := func(idx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, idx)
		if err != nil {
			return err
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(exportSheet, cell, &row)
	}

	if err := writeRow(1, exportHeader); err != nil {
		return nil, err
	}
	for i, values := range rows {
		if err := writeRow(i+2, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
