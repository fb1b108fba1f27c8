package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	handler "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/dashboard"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) }

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	classifier := attendance.NewClassifier(10, time.UTC)

	jwtService, err := jwt.NewJWTService("client-test-secret", "1h", jwt.NewMemoryRevocationStore())
	require.NoError(t, err)

	router := handler.NewRouter(
		config.AppConfig{Env: "test"},
		jwtService,
		handler.NewAuthHandler(authService.NewAuthService(userRepo, jwtService, clock)),
		handler.NewAttendanceHandler(attendanceService.NewAttendanceService(attendanceRepo, userRepo, classifier, clock)),
		handler.NewReportHandler(reportService.NewReportService(memory.NewReportRepository(store), attendanceRepo, userRepo, classifier, clock)),
		handler.NewDashboardHandler(dashboardService.NewDashboardService(memory.NewDashboardRepository(store), attendanceRepo, userRepo, classifier, clock)),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func register(t *testing.T, c *Client, name, email string, role user.Role) {
	t.Helper()
	_, err := c.Register(context.Background(), auth.RegisterRequest{Name: name, Email: email, Password: "secret1", Role: role})
	require.NoError(t, err)
}

func TestStore_EmployeeFlow(t *testing.T) {
	ctx := context.Background()
	srv := newAPI(t)
	c := New(srv.URL, srv.Client())
	register(t, c, "Alice", "alice@example.com", user.RoleEmployee)

	s := NewStore(c)
	assert.Equal(t, StateIdle, s.History.Snapshot().State)

	require.NoError(t, s.Login(ctx, "alice@example.com", "secret1"))
	assert.Equal(t, StateLoaded, s.Session.Snapshot().State)
	assert.NotEmpty(t, c.Token())

	rec, err := s.CheckIn(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)

	history := s.History.Snapshot()
	assert.Equal(t, StateLoaded, history.State)
	assert.Len(t, history.Data, 1)
	assert.True(t, s.Today.Snapshot().Data.CheckedIn)
	assert.Equal(t, int64(1), s.Summary.Snapshot().Data.Present)

	_, err = c.CheckIn(ctx, "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, StateIdle, s.History.Snapshot().State)
	assert.Empty(t, c.Token())
}

func TestStore_ManagerQueryFailureIsPerOperation(t *testing.T) {
	ctx := context.Background()
	srv := newAPI(t)
	c := New(srv.URL, srv.Client())
	register(t, c, "Alice", "alice@example.com", user.RoleEmployee)

	s := NewStore(c)
	require.NoError(t, s.Login(ctx, "alice@example.com", "secret1"))

	err := s.RefreshManager(ctx, report.LedgerFilter{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	snap := s.ManagerDashboard.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Error(t, snap.Err)

	// The session query is untouched by the failed manager refresh.
	assert.Equal(t, StateLoaded, s.Session.Snapshot().State)
}

func TestStore_ManagerFlow(t *testing.T) {
	ctx := context.Background()
	srv := newAPI(t)

	employee := New(srv.URL, srv.Client())
	register(t, employee, "Alice", "alice@example.com", user.RoleEmployee)
	_, err := employee.Login(ctx, auth.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = employee.CheckIn(ctx, "")
	require.NoError(t, err)

	manager := New(srv.URL, srv.Client())
	register(t, manager, "Mona", "mona@example.com", user.RoleManager)
	s := NewStore(manager)
	require.NoError(t, s.Login(ctx, "mona@example.com", "secret1"))

	require.NoError(t, s.RefreshManager(ctx, report.LedgerFilter{Name: "ali"}))
	assert.Equal(t, int64(1), s.ManagerDashboard.Snapshot().Data.PresentToday)
	ledger := s.Ledger.Snapshot()
	assert.Equal(t, StateLoaded, ledger.State)
	require.Len(t, ledger.Data, 1)
	assert.Equal(t, "Alice", ledger.Data[0].User.Name)
}
