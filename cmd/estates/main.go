// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/azure-estates/estates-go/internal/auth"
	"github.com/azure-estates/estates-go/internal/cache"
	"github.com/azure-estates/estates-go/internal/config"
	"github.com/azure-estates/estates-go/internal/copywriter"
	"github.com/azure-estates/estates-go/internal/gate"
	"github.com/azure-estates/estates-go/internal/geoip"
	"github.com/azure-estates/estates-go/internal/handler"
	"github.com/azure-estates/estates-go/internal/inquiry"
	"github.com/azure-estates/estates-go/internal/logging"
	"github.com/azure-estates/estates-go/internal/media"
	"github.com/azure-estates/estates-go/internal/middleware"
	"github.com/azure-estates/estates-go/internal/model"
	"github.com/azure-estates/estates-go/internal/render"
	"github.com/azure-estates/estates-go/internal/scheduler"
	"github.com/azure-estates/estates-go/internal/session"
	"github.com/azure-estates/estates-go/internal/store"
	"github.com/azure-estates/estates-go/internal/version"
	"github.com/azure-estates/estates-go/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Azure Estates - luxury real estate portal\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTATES_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTATES_DB_PATH          SQLite database path (default: ./data/estates.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTATES_MYSQL_DSN        MySQL DSN, overrides the SQLite store (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTATES_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTATES_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTATES_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTATES_OPENAI_API_KEY   Enables the copy assist endpoint (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTATES_GEOIP_DB_PATH    GeoLite2-Country.mmdb path (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ESTATES_DEMO_MODE        Restore the seed catalog nightly (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("estates %s\n", version.Version)
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

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Open the store backend: MySQL when a DSN is configured, SQLite
	// otherwise. The session table always lives in SQLite.
	var (
		db      *sql.DB
		backend store.Backend
	)
	if cfg.UseMySQL() {
		slog.Info("initializing store", "backend", "mysql")
		mysqlBackend, err := store.NewMySQLBackend(cfg.MySQLDSN)
		if err != nil {
			return fmt.Errorf("initializing mysql store: %w", err)
		}
		backend = mysqlBackend
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err = store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	if backend == nil {
		backend = store.NewSQLiteBackend(db)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing store backend", "error", err)
		}
	}()
	// The store needs no explicit seeding: reads fall back to the seed
	// catalog until the first write.
	st := store.New(backend)

	// Mirror warnings and errors into the store-backed event log shown
	// on the dashboard.
	slog.SetDefault(slog.New(logging.NewEventLogHandler(logger.Handler(), st)))

	sessionManager := session.New(db, cfg.IsDevelopment())

	appCache := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		CleanupInterval: time.Minute,
	}, slog.Default())
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	catalogCache := cache.NewTypedCache[[]model.Project](appCache, time.Duration(cfg.CacheTTL)*time.Second)

	var geo *geoip.Lookup
	if cfg.GeoIPEnabled() {
		geo = geoip.NewLookup()
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip disabled", "error", err)
			geo = nil
		} else {
			defer func() { _ = geo.Close() }()
		}
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		SiteName:       cfg.SiteName,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	inquiryOpts := []inquiry.Option{}
	if geo != nil {
		inquiryOpts = append(inquiryOpts, inquiry.WithGeoResolver(geo))
	}
	inquiryService := inquiry.New(st, slog.Default(), inquiryOpts...)

	writer := copywriter.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, slog.Default())
	if writer.Enabled() {
		slog.Info("copy assist enabled", "model", cfg.OpenAIModel)
	}

	maxUploadBytes := int64(cfg.MaxUploadMB) << 20

	handlers := handler.Handlers{
		Frontend: handler.NewFrontendHandler(st, renderer, gate.New(st), inquiryService, catalogCache),
		Auth:     handler.NewAuthHandler(st, renderer, sessionManager, auth.NewStaticCredentials(cfg.AdminUsername, cfg.AdminPassword)),
		Admin:    handler.NewAdminHandler(st, renderer),
		Projects: handler.NewProjectsHandler(st, renderer, appCache),
		Leads:    handler.NewLeadsHandler(st, renderer, cfg.SiteName),
		Media:    handler.NewMediaHandler(media.NewConverter(maxUploadBytes), maxUploadBytes),
		Assist:   handler.NewAssistHandler(writer),
		Health:   handler.NewHealthHandler(db, st),
	}

	sched := scheduler.New(st, appCache, geo, cfg.DemoMode, slog.Default())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	handler.Routes(r, st, handlers)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
