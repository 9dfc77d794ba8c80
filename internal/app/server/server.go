package server

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/captcha"
	"backoffice/internal/domain/directory"
	"backoffice/internal/domain/payslip"
	"backoffice/internal/domain/submission"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/db"
	"backoffice/internal/platform/email"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/ratelimit"
	"backoffice/internal/transport/http/api"
	authhandler "backoffice/internal/transport/http/handlers/auth"
	directoryhandler "backoffice/internal/transport/http/handlers/directory"
	payslipshandler "backoffice/internal/transport/http/handlers/payslips"
	publichandler "backoffice/internal/transport/http/handlers/public"
	"backoffice/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New wires the full application: database, domain services, and the HTTP
// router. The caller owns the lifecycle and must call Close.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	collector := metrics.New()

	challenges := captcha.New(cfg.CaptchaTTL)
	limiter := ratelimit.New(
		ratelimit.NewFileStore(filepath.Join(cfg.RateLimitStateDir, "windows.json")),
		cfg.FormMaxPerWindow, cfg.FormWindow)

	submissions := submission.NewService(
		submission.NewStore(pool), challenges, limiter,
		email.New(cfg), cfg.EmailFrom, cfg.EmailNotifyTo)

	payslips := payslip.NewService(
		payslip.NewStore(pool), payslip.NewPDFRenderer(cfg.PayslipDir))

	directoryStore := directory.NewStore(pool)

	app := &App{Config: cfg, DB: pool, Metrics: collector}
	app.Router = app.buildRouter(submissions, payslips, directoryStore)
	return app, nil
}

func (a *App) buildRouter(submissions *submission.Service, payslips *payslip.Service, directoryStore *directory.Store) http.Handler {
	cfg := a.Config

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(a.DB, cfg.JWTSecret)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.LoginRatePerMin, time.Minute))
			r.Post("/auth/login", authHandler.HandleLogin)
		})
		r.Post("/auth/logout", authHandler.HandleLogout)

		publicHandler := publichandler.NewHandler(submissions, directoryStore)
		publicHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			payslipsHandler := payslipshandler.NewHandler(payslips, a.Metrics)
			payslipsHandler.RegisterRoutes(r)

			directoryHandler := directoryhandler.NewHandler(directoryStore)
			directoryHandler.RegisterRoutes(r)

			if cfg.MetricsEnabled {
				r.Get("/admin/metrics", a.handleMetrics)
			}
		})
	})

	return router
}

func (a *App) handleMetrics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
