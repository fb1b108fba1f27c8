package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	appConfig config.AppConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appConfig.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-tracker"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appConfig.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appConfig.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/checkin", attendanceHandler.CheckIn)
				r.Post("/checkout", attendanceHandler.CheckOut)

				// Owner or manager
				r.With(middleware.RequireSelfOrManager("userId")).Get("/my-history/{userId}", attendanceHandler.History)
				r.With(middleware.RequireSelfOrManager("userId")).Get("/my-summary/{userId}", reportHandler.Summary)
				r.With(middleware.RequireSelfOrManager("userId")).Get("/today/{userId}", attendanceHandler.Today)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/all", reportHandler.Ledger)
					r.Get("/export", reportHandler.Export)
					r.Get("/employee/{id}", attendanceHandler.EmployeeRecords)
					r.Get("/today-status", attendanceHandler.TodayStatus)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequireSelfOrManager("userId")).Get("/employee/{userId}", dashboardHandler.Employee)
				r.With(middleware.RequireManager).Get("/manager", dashboardHandler.Manager)
			})
		})
	})
	return r
}
