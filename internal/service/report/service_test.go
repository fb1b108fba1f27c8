package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	svc     report.ReportService
	users   user.UserRepository
	records attendance.AttendanceRepository
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		users:   memory.NewUserRepository(store),
		records: memory.NewAttendanceRepository(store),
	}
	f.svc = NewReportService(
		memory.NewReportRepository(store),
		f.records,
		f.users,
		attendance.NewClassifier(10, time.UTC),
		func() time.Time { return now },
	)
	return f
}

func (f *fixture) employee(t *testing.T, name, code string, registered time.Time) user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), user.User{
		Name: name, Email: code + "@example.com", EmployeeCode: code,
		Role: user.RoleEmployee, Department: "IT", CreatedAt: registered,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) record(t *testing.T, u user.User, date string, hour int, status attendance.Status, reason string) {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	in := day.Add(time.Duration(hour) * time.Hour)
	_, err = f.records.Create(context.Background(), attendance.Record{
		UserID: u.ID, Date: date, CheckIn: &in, Status: status, Reason: reason, CreatedAt: in,
	})
	require.NoError(t, err)
}

func TestSummary_CountsMissedDays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC))

	alice := f.employee(t, "Alice", "EMP1001", time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	bob := f.employee(t, "Bob", "EMP1002", time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC))

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"} {
		f.record(t, alice, d, 9, attendance.StatusPresent, attendance.ReasonOnTime)
	}
	f.record(t, bob, "2024-01-03", 11, attendance.StatusLate, "Traffic")

	summary, err := f.svc.Summary(ctx, bob.ID)
	require.NoError(t, err)
	// 2024-01-01 predates Bob's registration
	assert.Equal(t, report.SummaryResponse{Present: 0, Late: 1, Absent: 2}, summary)

	summary, err = f.svc.Summary(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, report.SummaryResponse{Present: 4, Late: 0, Absent: 0}, summary)
}

func TestSummary_UnknownUser(t *testing.T) {
	f := newFixture(t, time.Now())
	_, err := f.svc.Summary(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestLedger_Filters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	registered := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)

	alice := f.employee(t, "Alice Employee", "EMP1001", registered)
	natalia := f.employee(t, "Natalia", "EMP1002", registered)
	bob := f.employee(t, "Bob", "EMP1003", registered)

	f.record(t, alice, "2024-01-31", 9, attendance.StatusPresent, attendance.ReasonOnTime)
	f.record(t, alice, "2024-02-01", 9, attendance.StatusPresent, attendance.ReasonOnTime)
	f.record(t, natalia, "2024-01-01", 9, attendance.StatusPresent, attendance.ReasonOnTime)
	f.record(t, bob, "2024-01-15", 9, attendance.StatusPresent, attendance.ReasonOnTime)

	ledger, err := f.svc.Ledger(ctx, report.LedgerFilter{Name: "ALI", StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, "2024-01-31", ledger[0].Date)
	assert.Equal(t, "Alice Employee", ledger[0].User.Name)
	assert.Equal(t, "2024-01-01", ledger[1].Date)
	assert.Equal(t, "Natalia", ledger[1].User.Name)

	all, err := f.svc.Ledger(ctx, report.LedgerFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "2024-02-01", all[0].Date)

	_, err = f.svc.Ledger(ctx, report.LedgerFilter{StartDate: "yesterday"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestExport_CSV(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	alice := f.employee(t, "Alice", "EMP1001", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.record(t, alice, "2024-01-15", 11, attendance.StatusLate, "Traffic, then rain")

	file, err := f.svc.Export(ctx, report.ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "attendance_report.csv", file.FileName)

	rows, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Employee", "Date", "In", "Out", "Status", "Reason"}, rows[0])
	assert.Equal(t, []string{"Alice", "2024-01-15", "2024-01-15T11:00:00Z", "-", "Late", "Traffic, then rain"}, rows[1])
}

func TestExport_XLSX(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	alice := f.employee(t, "Alice", "EMP1001", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.record(t, alice, "2024-01-15", 9, attendance.StatusPresent, attendance.ReasonOnTime)

	file, err := f.svc.Export(ctx, report.ExportRequest{Format: report.ExportXLSX})
	require.NoError(t, err)
	assert.Equal(t, "attendance_report.xlsx", file.FileName)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	rows, err := wb.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Employee", rows[0][0])
	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "-", rows[1][3])
}

func TestExport_QuotesFormulaCells(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	mallory := f.employee(t, "=HYPERLINK(\"http://x\")", "EMP1001", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.record(t, mallory, "2024-01-15", 11, attendance.StatusLate, "@SUM(A1:A9)")

	file, err := f.svc.Export(ctx, report.ExportRequest{})
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "'=HYPERLINK(\"http://x\")", rows[1][0])
	assert.Equal(t, "-", rows[1][3])
	assert.Equal(t, "'@SUM(A1:A9)", rows[1][5])

	file, err = f.svc.Export(ctx, report.ExportRequest{Format: report.ExportXLSX})
	require.NoError(t, err)
	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	formula, err := wb.GetCellFormula("Attendance", "A2")
	require.NoError(t, err)
	assert.Empty(t, formula)
	name, err := wb.GetCellValue("Attendance", "A2")
	require.NoError(t, err)
	assert.Equal(t, "'=HYPERLINK(\"http://x\")", name)
}

func TestEscapeFormula(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"Alice":       "Alice",
		"On Time":     "On Time",
		"=1+1":        "'=1+1",
		"+44 traffic": "'+44 traffic",
		"-5 minutes":  "'-5 minutes",
		"@cmd":        "'@cmd",
		"\tindent":    "'\tindent",
	}
	for in, want := range cases {
		assert.Equal(t, want, escapeFormula(in), "input %q", in)
	}
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	f := newFixture(t, time.Now())
	_, err := f.svc.Export(context.Background(), report.ExportRequest{Format: "pdf"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
