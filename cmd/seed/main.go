package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "secret123"

type seedUser struct {
	Name       string
	Email      string
	Role       user.Role
	Code       string
	Department string
}

var seedUsers = []seedUser{
	{Name: "Manager One", Email: "manager@test.com", Role: user.RoleManager, Code: "MGR1001", Department: "HR"},
	{Name: "Alice Employee", Email: "alice@test.com", Role: user.RoleEmployee, Code: "EMP1001", Department: "IT"},
	{Name: "Bob Worker", Email: "bob@test.com", Role: user.RoleEmployee, Code: "EMP1002", Department: "Sales"},
}

type shift struct {
	inHour, inMinute int
	outHour          int
	reason           string
}

func main() {
	days := flag.Int("days", 5, "number of days of history to generate, ending today")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	if cfg.Database.Type != config.StoreTypePostgres {
		log.Fatal("Seeding requires STORE_TYPE=postgres")
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("Error migrating database: ", err)
	}

	classifier := attendance.NewClassifier(cfg.Attendance.CutoffHour, cfg.Location())
	if err := seed(ctx, db, classifier, time.Now(), *days); err != nil {
		log.Fatal("Seeding failed: ", err)
	}
	slog.Info("Seeding complete", "users", len(seedUsers), "days", *days, "password", seedPassword)
}

func seed(ctx context.Context, db *database.DB, classifier attendance.Classifier, now time.Time, days int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	loc := classifier.Location()
	today := now.In(loc)
	firstDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(days - 1))

	return postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		q := postgresql.GetQuerier(ctx, db)
		if _, err := q.Exec(ctx, "TRUNCATE TABLE attendances, users"); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
		slog.Info("Cleared old data")

		created := make(map[string]user.User, len(seedUsers))
		for _, su := range seedUsers {
			u, err := userRepo.Create(ctx, user.User{
				Name:         su.Name,
				Email:        su.Email,
				PasswordHash: string(hash),
				Role:         su.Role,
				EmployeeCode: su.Code,
				Department:   su.Department,
				CreatedAt:    firstDay,
				UpdatedAt:    firstDay,
			})
			if err != nil {
				return fmt.Errorf("create user %s: %w", su.Email, err)
			}
			created[su.Email] = u
		}

		alice := created["alice@test.com"]
		bob := created["bob@test.com"]

		for i := 0; i < days; i++ {
			day := today.AddDate(0, 0, -i)

			// Alice is on time every day
			if err := seedShift(ctx, attendanceRepo, classifier, alice.ID, day, shift{9, 0, 17, ""}); err != nil {
				return err
			}
			// Bob is late every other day and missing otherwise
			if i%2 == 0 {
				if err := seedShift(ctx, attendanceRepo, classifier, bob.ID, day, shift{10, 30, 18, "Traffic Issue"}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func seedShift(ctx context.Context, repo attendance.AttendanceRepository, classifier attendance.Classifier, userID string, day time.Time, s shift) error {
	loc := classifier.Location()
	in := time.Date(day.Year(), day.Month(), day.Day(), s.inHour, s.inMinute, 0, 0, loc).UTC()
	out := time.Date(day.Year(), day.Month(), day.Day(), s.outHour, 0, 0, 0, loc).UTC()

	status := classifier.Classify(in)
	reason := attendance.ReasonOnTime
	if status == attendance.StatusLate {
		reason = s.reason
	}

	rec, err := repo.Create(ctx, attendance.Record{
		UserID:    userID,
		Date:      classifier.DateKey(in),
		CheckIn:   &in,
		Status:    status,
		Reason:    reason,
		CreatedAt: in,
		UpdatedAt: in,
	})
	if err != nil {
		return fmt.Errorf("create attendance for %s: %w", userID, err)
	}

	if _, err := repo.CompleteCheckOut(ctx, rec.ID, out, attendance.WorkedHours(in, out)); err != nil {
		return fmt.Errorf("check out %s: %w", userID, err)
	}
	return nil
}
