// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/brightpathhr/brightpath/internal/cache"
	"github.com/brightpathhr/brightpath/internal/config"
	"github.com/brightpathhr/brightpath/internal/geoip"
	"github.com/brightpathhr/brightpath/internal/handler"
	"github.com/brightpathhr/brightpath/internal/logging"
	"github.com/brightpathhr/brightpath/internal/middleware"
	"github.com/brightpathhr/brightpath/internal/scheduler"
	"github.com/brightpathhr/brightpath/internal/service"
	"github.com/brightpathhr/brightpath/internal/session"
	"github.com/brightpathhr/brightpath/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "BrightPath HR - marketing site back office\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BP_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BP_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BP_DB_DRIVER       Database driver: sqlite|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BP_DB_PATH         SQLite database path (default: ./data/brightpath.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BP_UPLOADS_DIR     Media upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BP_SMTP_HOST       SMTP host for lead notifications (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BP_REDIS_URL       Redis URL for a shared content cache (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("brightpath %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Bootstrap logger until the database is up.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if cfg.DBDriver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	queries := store.New(db)

	// Upgrade logger to mirror WARN and ERROR records into the event log.
	logging.Setup(queries, cfg.LogLevel, cfg.IsDevelopment())

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	contentCache := cache.NewFromConfig(cfg)
	defer func() {
		if err := contentCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	geo, err := geoip.New(cfg.GeoIPDBPath)
	if err != nil {
		return fmt.Errorf("opening GeoIP database: %w", err)
	}
	defer func() {
		if err := geo.Close(); err != nil {
			slog.Error("error closing GeoIP database", "error", err)
		}
	}()

	secureCookies := !cfg.IsDevelopment()
	siteSessions := session.NewSiteManager(queries, secureCookies)
	adminSessions := session.NewAdminManager(queries, secureCookies)

	authSvc := service.NewAuthService(queries, siteSessions, adminSessions)
	contentSvc := service.NewContentService(queries, contentCache)
	mediaSvc := service.NewMediaService(queries, cfg.UploadsDir)
	mailer := service.NewMailer(cfg)
	statsSvc := service.NewStatsService(queries)
	setupSvc := service.NewSetupService(db, queries, cfg.DBDriver)
	tagger := service.NewIntakeTagger(geo)

	loginProt := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	setupGuard := middleware.NewSetupGuard(setupSvc)

	csrfKey := []byte(cfg.SecretKey)
	if len(csrfKey) == 0 {
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			return fmt.Errorf("generating CSRF key: %w", err)
		}
	}
	csrfMW := middleware.CSRF(middleware.DefaultCSRFConfig(csrfKey, cfg.IsDevelopment(), cfg.ServerAddr()))

	h := handler.New(handler.Deps{
		Cfg:           cfg,
		DB:            db,
		Queries:       queries,
		Auth:          authSvc,
		SiteSessions:  siteSessions,
		AdminSessions: adminSessions,
		Content:       contentSvc,
		Media:         mediaSvc,
		Mailer:        mailer,
		Stats:         statsSvc,
		Setup:         setupSvc,
		Tagger:        tagger,
		LoginProt:     loginProt,
	})
	router := h.Routes(handler.RouterDeps{
		SetupGuard: setupGuard,
		CSRF:       csrfMW,
	})

	sched, err := scheduler.New(queries, siteSessions, adminSessions)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // allows large uploads on slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
