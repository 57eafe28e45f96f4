package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/stockroom/internal/api"
	"github.com/erazemk/stockroom/internal/cache"
	"github.com/erazemk/stockroom/internal/config"
	"github.com/erazemk/stockroom/internal/db"
	"github.com/erazemk/stockroom/internal/metrics"
	"github.com/erazemk/stockroom/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("stockroom", flag.ContinueOnError)

	var dbURL string
	fs.StringVar(&dbURL, "db", cfg.DatabaseURL, "")
	fs.StringVar(&dbURL, "d", cfg.DatabaseURL, "")

	var addr string
	fs.StringVar(&addr, "addr", ":"+cfg.Port, "")
	fs.StringVar(&addr, "a", ":"+cfg.Port, "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: stockroom [flags]

Flags:
  -d, -db <url>           database URL, sqlite:///path or mysql://dsn (default: $DATABASE_URL)
  -a, -addr <host:port>   listen address (default: :$PORT)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Settings are read from the environment and an optional .env file.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	closeLog, err := setupLogger(logPath, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	database, err := db.Open(dbURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Idempotent, so it runs on every start.
	if err := db.EnsureSchema(database); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "dialect", db.DialectOf(database))

	ctx := context.Background()

	if cfg.Admin.Configured() {
		changed, err := store.SyncAdminUser(ctx, database, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			slog.Error("failed to sync admin account", "error", err)
			os.Exit(1)
		}
		if changed {
			slog.Info("admin account synced", "username", cfg.Admin.Username)
		}
	} else {
		slog.Warn("ADMIN_USERNAME or ADMIN_PASSWORD not set, admin login is disabled")
	}

	if cfg.SecretKey == "" {
		slog.Warn("SECRET_KEY not set")
	}

	opts := api.Options{
		Admin:       cfg.Admin,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     metrics.New(),
	}

	if cfg.Redis.Enabled() {
		statsCache, err := cache.Connect(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("stats cache unavailable, computing stats on every request", "error", err)
		} else {
			defer statsCache.Close()
			opts.StatsCache = statsCache
			slog.Info("stats cache enabled", "ttl", cfg.Redis.StatsTTL)
		}
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(database, opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}
