package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo user.UserRepository, name, email, code, dept string, role user.Role) user.User {
	t.Helper()
	u, err := repo.Create(context.Background(), user.User{
		Name: name, Email: email, EmployeeCode: code, Department: dept, Role: role,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return u
}

func at(day, hour int) *time.Time {
	t := time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func TestUserRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewStore())

	alice := seedUser(t, repo, "Alice", "alice@example.com", "EMP0001", "IT", user.RoleEmployee)
	assert.NotEmpty(t, alice.ID)

	_, err := repo.Create(ctx, user.User{Email: "ALICE@example.com", EmployeeCode: "EMP0002"})
	assert.ErrorIs(t, err, user.ErrEmailExists)

	_, err = repo.Create(ctx, user.User{Email: "bob@example.com", EmployeeCode: "EMP0001"})
	assert.ErrorIs(t, err, user.ErrEmployeeCodeExists)

	got, err := repo.GetByEmail(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAttendanceRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserRepository(store)
	repo := NewAttendanceRepository(store)
	alice := seedUser(t, users, "Alice", "alice@example.com", "EMP0001", "IT", user.RoleEmployee)

	rec, err := repo.Create(ctx, attendance.Record{
		UserID: alice.ID, Date: "2024-01-15", CheckIn: at(15, 9), Status: attendance.StatusPresent,
		Reason: attendance.ReasonOnTime, CreatedAt: *at(15, 9),
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Record{UserID: alice.ID, Date: "2024-01-15"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	done, err := repo.CompleteCheckOut(ctx, rec.ID, *at(15, 17), 8)
	require.NoError(t, err)
	assert.Equal(t, 8.0, done.TotalHours)

	_, err = repo.CompleteCheckOut(ctx, rec.ID, *at(15, 18), 9)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	_, err = repo.GetByUserAndDate(ctx, alice.ID, "2024-01-16")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].UserName)
	assert.Equal(t, "Alice", *all[0].UserName)
}

func TestAttendanceRepository_ListOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserRepository(store)
	repo := NewAttendanceRepository(store)
	alice := seedUser(t, users, "Alice", "alice@example.com", "EMP0001", "IT", user.RoleEmployee)

	for _, day := range []int{3, 1, 2} {
		_, err := repo.Create(ctx, attendance.Record{
			UserID: alice.ID, Date: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			CheckIn: at(day, 9), Status: attendance.StatusPresent,
		})
		require.NoError(t, err)
	}

	records, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	var dates []string
	for _, r := range records {
		dates = append(dates, r.Date)
	}
	assert.Equal(t, []string{"2024-01-03", "2024-01-02", "2024-01-01"}, dates)
}

func TestReportRepository_CountMissedDays(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserRepository(store)
	repo := NewAttendanceRepository(store)
	reports := NewReportRepository(store)

	alice := seedUser(t, users, "Alice", "alice@example.com", "EMP0001", "IT", user.RoleEmployee)
	bob := seedUser(t, users, "Bob", "bob@example.com", "EMP0002", "Sales", user.RoleEmployee)

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := repo.Create(ctx, attendance.Record{UserID: alice.ID, Date: d, Status: attendance.StatusPresent})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, attendance.Record{UserID: bob.ID, Date: "2024-01-02", Status: attendance.StatusLate})
	require.NoError(t, err)

	missed, err := reports.CountMissedDays(ctx, bob.ID, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, int64(2), missed)

	missed, err = reports.CountMissedDays(ctx, bob.ID, "2024-01-03", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, int64(1), missed)

	counts, err := reports.CountByStatus(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Late)
	assert.Zero(t, counts.Present)
}

func TestDashboardRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUserRepository(store)
	repo := NewAttendanceRepository(store)
	dash := NewDashboardRepository(store)

	alice := seedUser(t, users, "Alice", "alice@example.com", "EMP0001", "IT", user.RoleEmployee)
	bob := seedUser(t, users, "Bob", "bob@example.com", "EMP0002", "", user.RoleEmployee)
	seedUser(t, users, "Carol", "carol@example.com", "EMP0003", "HR", user.RoleEmployee)
	seedUser(t, users, "Mona", "mona@example.com", "EMP0004", "IT", user.RoleManager)

	_, err := repo.Create(ctx, attendance.Record{UserID: alice.ID, Date: "2024-01-15", Status: attendance.StatusPresent, CreatedAt: *at(15, 9)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.Record{UserID: bob.ID, Date: "2024-01-15", Status: attendance.StatusLate, CreatedAt: *at(15, 11)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.Record{UserID: alice.ID, Date: "2024-01-01", Status: attendance.StatusPresent, CreatedAt: *at(1, 9)})
	require.NoError(t, err)

	total, err := dash.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	counts, err := dash.CountByDate(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Present)
	assert.Equal(t, int64(1), counts.Late)

	absent, err := dash.ListAbsentEmployees(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, absent, 1)
	assert.Equal(t, "Carol", absent[0].Name)

	weekly, err := dash.WeeklyStats(ctx, *at(8, 0))
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, int64(2), weekly[0].Attendees)

	depts, err := dash.DepartmentStats(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, depts, 2)
	assert.Equal(t, "IT", depts[0].Name)
	assert.Equal(t, "Unknown", depts[1].Name)
}
