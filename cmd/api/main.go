package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/dashboard"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	"github.com/redis/go-redis/v9"
)

const revocationPurgeInterval = 10 * time.Minute

type repositories struct {
	user       user.UserRepository
	attendance attendance.AttendanceRepository
	report     report.ReportRepository
	dashboard  dashboard.DashboardRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	switch cfg.Database.Type {
	case config.StoreTypeMemory:
		store := memory.NewStore()
		slog.Warn("Using in-memory store, data is lost on restart")
		return repositories{
			user:       memory.NewUserRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			report:     memory.NewReportRepository(store),
			dashboard:  memory.NewDashboardRepository(store),
			close:      func() {},
		}, nil
	case config.StoreTypePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return repositories{}, fmt.Errorf("connect to database: %w", err)
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return repositories{}, fmt.Errorf("migrate database: %w", err)
		}
		return repositories{
			user:       postgresql.NewUserRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			report:     postgresql.NewReportRepository(db),
			dashboard:  postgresql.NewDashboardRepository(db),
			close:      db.Close,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported store type: %s", cfg.Database.Type)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}
	defer repos.close()

	scheduler := cron.NewScheduler()

	var revocations jwt.RevocationStore
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatalf("redis ping failed: %v", err)
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("redis close error", "error", err)
			}
		}()
		revocations = jwt.NewRedisRevocationStore(redisClient, "attendance:revoked:")
	} else {
		memoryRevocations := jwt.NewMemoryRevocationStore()
		cron.RegisterRevocationPurge(scheduler, memoryRevocations, revocationPurgeInterval)
		revocations = memoryRevocations
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, revocations)
	if err != nil {
		log.Fatal("Failed to initialize JWT service: ", err)
	}

	classifier := attendance.NewClassifier(cfg.Attendance.CutoffHour, cfg.Location())

	authService := serviceAuth.NewAuthService(repos.user, JWTService, nil)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.user, classifier, nil)
	reportSvc := reportService.NewReportService(repos.report, repos.attendance, repos.user, classifier, nil)
	dashboardSvc := dashboardService.NewDashboardService(repos.dashboard, repos.attendance, repos.user, classifier, nil)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
	)

	scheduler.Start(ctx)
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Server running",
			"addr", httpServer.Addr,
			"store", cfg.Database.Type,
			"timezone", cfg.Attendance.Timezone,
			"cutoff_hour", cfg.Attendance.CutoffHour,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
