package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/app"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/auth"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/branches"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/i18n"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/listview"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/live"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/observability"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/platform/cache"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/platform/db"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/rbac"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/users"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/vans"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{MaxConns: cfg.PGMaxConns})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "admission_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	translator, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		logger.Error("load translations", slog.Any("error", err))
		os.Exit(1)
	}

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	rbacService := rbac.NewService(dbpool)
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}

	auditLogger := shared.NewAuditLogger(dbpool)
	authService := auth.NewService(auth.NewRepository(dbpool))
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager, auditLogger)

	renderer := listview.Renderer{
		Logger:    logger,
		Templates: templates,
		CSRF:      csrfManager,
		PageSize:  cfg.ListingPageSize,
	}
	branchesHandler := branches.NewHandler(branches.NewService(branches.NewRepository(dbpool)), renderer)
	vansHandler := vans.NewHandler(logger, vans.NewService(vans.NewRepository(dbpool)), renderer)
	usersHandler := users.NewHandler(users.NewService(users.NewRepository(dbpool)), renderer)

	liveHandler := live.NewHandler(logger, metrics, live.Config{
		Debounce: cfg.ListingDebounce,
		PageSize: cfg.ListingPageSize,
	}).
		Allow("/branches", shared.PermBranchesView).
		Allow("/vans", shared.PermVansView).
		Allow("/users", shared.PermUsersView)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Templates:       templates,
		SessionManager:  sessionManager,
		CSRFManager:     csrfManager,
		Translator:      translator,
		AuthHandler:     authHandler,
		BranchesHandler: branchesHandler,
		VansHandler:     vansHandler,
		UsersHandler:    usersHandler,
		LiveHandler:     liveHandler,
		RBACMiddleware:  rbacMiddleware,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
