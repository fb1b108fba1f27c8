package postgresql

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and resets the schema data.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.Migrate(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE attendances, users")
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, repo user.UserRepository, name, email, code, dept string, role user.Role) user.User {
	t.Helper()
	u, err := repo.Create(context.Background(), user.User{
		Name: name, Email: email, PasswordHash: "x", Role: role, EmployeeCode: code, Department: dept,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return u
}

func ptr(t time.Time) *time.Time { return &t }

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	alice := createTestUser(t, repo, "Alice", "alice@example.com", "EMP1001", "IT", user.RoleEmployee)
	assert.Equal(t, user.RoleEmployee, alice.Role)

	_, err := repo.Create(ctx, user.User{Name: "X", Email: "alice@example.com", PasswordHash: "x", Role: user.RoleEmployee, EmployeeCode: "EMP1002"})
	assert.ErrorIs(t, err, user.ErrEmailExists)

	_, err = repo.Create(ctx, user.User{Name: "X", Email: "x@example.com", PasswordHash: "x", Role: user.RoleEmployee, EmployeeCode: "EMP1001"})
	assert.ErrorIs(t, err, user.ErrEmployeeCodeExists)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = repo.GetByID(ctx, "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestAttendanceRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	repo := NewAttendanceRepository(db)

	alice := createTestUser(t, users, "Alice", "alice@example.com", "EMP1001", "IT", user.RoleEmployee)
	in := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	rec, err := repo.Create(ctx, attendance.Record{
		UserID: alice.ID, Date: "2024-01-15", CheckIn: ptr(in), Status: attendance.StatusPresent,
		Reason: attendance.ReasonOnTime, CreatedAt: in,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", rec.Date)

	_, err = repo.Create(ctx, attendance.Record{UserID: alice.ID, Date: "2024-01-15", Status: attendance.StatusLate, CreatedAt: in})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	done, err := repo.CompleteCheckOut(ctx, rec.ID, in.Add(8*time.Hour), 8)
	require.NoError(t, err)
	assert.Equal(t, 8.0, done.TotalHours)
	require.NotNil(t, done.CheckOut)

	_, err = repo.CompleteCheckOut(ctx, rec.ID, in.Add(9*time.Hour), 9)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	byDate, err := repo.ListByDate(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	require.NotNil(t, byDate[0].UserName)
	assert.Equal(t, "Alice", *byDate[0].UserName)

	_, err = repo.GetByUserAndDate(ctx, alice.ID, "2024-01-16")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestAttendanceRepository_ConcurrentWritesHaveOneWinner(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewAttendanceRepository(db)
	alice := createTestUser(t, NewUserRepository(db), "Alice", "alice@example.com", "EMP1001", "IT", user.RoleEmployee)
	in := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	race := func(n int, fn func() error) (winners int, losers []error) {
		var (
			mu    sync.Mutex
			wg    sync.WaitGroup
			start = make(chan struct{})
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				err := fn()
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					winners++
					return
				}
				losers = append(losers, err)
			}()
		}
		close(start)
		wg.Wait()
		return winners, losers
	}

	var created attendance.Record
	var createdMu sync.Mutex
	winners, losers := race(32, func() error {
		rec, err := repo.Create(ctx, attendance.Record{
			UserID: alice.ID, Date: "2024-01-15", CheckIn: ptr(in), Status: attendance.StatusPresent,
			Reason: attendance.ReasonOnTime, CreatedAt: in,
		})
		if err == nil {
			createdMu.Lock()
			created = rec
			createdMu.Unlock()
		}
		return err
	})
	assert.Equal(t, 1, winners)
	for _, err := range losers {
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	}

	winners, losers = race(16, func() error {
		_, err := repo.CompleteCheckOut(ctx, created.ID, in.Add(8*time.Hour), 8)
		return err
	})
	assert.Equal(t, 1, winners)
	for _, err := range losers {
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	}

	records, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 8.0, records[0].TotalHours)
}

func TestReportAndDashboardRepositories(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	records := NewAttendanceRepository(db)
	reports := NewReportRepository(db)
	dash := NewDashboardRepository(db)

	alice := createTestUser(t, users, "Alice", "alice@example.com", "EMP1001", "IT", user.RoleEmployee)
	bob := createTestUser(t, users, "Bob", "bob@example.com", "EMP1002", "", user.RoleEmployee)
	createTestUser(t, users, "Carol", "carol@example.com", "EMP1003", "HR", user.RoleEmployee)
	createTestUser(t, users, "Mona", "mona@example.com", "MGR1001", "HR", user.RoleManager)

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	create := func(u user.User, date string, status attendance.Status, created time.Time) {
		_, err := records.Create(ctx, attendance.Record{UserID: u.ID, Date: date, Status: status, Reason: attendance.ReasonOnTime, CreatedAt: created})
		require.NoError(t, err)
	}
	create(alice, "2024-01-14", attendance.StatusPresent, now.Add(-24*time.Hour))
	create(alice, "2024-01-15", attendance.StatusPresent, now)
	create(bob, "2024-01-15", attendance.StatusLate, now)
	create(alice, "2024-01-01", attendance.StatusPresent, now.Add(-14*24*time.Hour))

	counts, err := reports.CountByStatus(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Late)

	missed, err := reports.CountMissedDays(ctx, bob.ID, "2024-01-02", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int64(1), missed)

	total, err := dash.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	day, err := dash.CountByDate(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int64(2), day.Present)
	assert.Equal(t, int64(1), day.Late)

	absent, err := dash.ListAbsentEmployees(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, absent, 1)
	assert.Equal(t, "Carol", absent[0].Name)

	weekly, err := dash.WeeklyStats(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, weekly, 2)
	assert.Equal(t, "2024-01-14", weekly[0].Date)
	assert.Equal(t, int64(2), weekly[1].Attendees)

	depts, err := dash.DepartmentStats(ctx, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, depts, 2)
	assert.Equal(t, "IT", depts[0].Name)
	assert.Equal(t, "Unknown", depts[1].Name)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	err := WithTransaction(ctx, db, func(ctx context.Context) error {
		if _, err := users.Create(ctx, user.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: user.RoleEmployee, EmployeeCode: "EMP1001"}); err != nil {
			return err
		}
		_, err := users.Create(ctx, user.User{Name: "Dup", Email: "alice@example.com", PasswordHash: "x", Role: user.RoleEmployee, EmployeeCode: "EMP1002"})
		return err
	})
	assert.ErrorIs(t, err, user.ErrEmailExists)

	_, err = users.GetByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
