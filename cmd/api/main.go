// Package main runs the publishing API server: authors, publishers and the
// books that reference them.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/aoideee/publishing-api/internal/config"
	"github.com/aoideee/publishing-api/internal/data"

	_ "github.com/lib/pq"           // postgres dialect
	_ "github.com/mattn/go-sqlite3" // sqlite3 dialect
)

// appVersion is reported by the health check and the startup log.
const appVersion = "1.0.0"

// applicationDependencies is the receiver for every handler, helper and
// middleware in this package.
type applicationDependencies struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	models data.Models
}

func main() {
	cfg, err := config.Load(os.Getenv("PUBLISHING_CONFIG_FILE"))
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	// Flags override the environment and config file.
	flag.IntVar(&cfg.Port, "port", cfg.Port, "API server port")
	flag.StringVar(&cfg.Env, "env", cfg.Env, "Environment (development|staging|production)")
	flag.StringVar(&cfg.DB.Driver, "db-driver", cfg.DB.Driver, "Database driver (sqlite3|postgres)")
	flag.StringVar(&cfg.DB.DSN, "db-dsn", cfg.DB.DSN, "Database DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", cfg.DB.MaxOpenConns, "Database max open connections")
	flag.IntVar(&cfg.DB.MaxIdleConns, "db-max-idle-conns", cfg.DB.MaxIdleConns, "Database max idle connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", cfg.DB.MaxIdleTime, "Database max connection idle time")
	flag.BoolVar(&cfg.Limiter.Enabled, "limiter-enabled", cfg.Limiter.Enabled, "Enable rate limiter")
	flag.Float64Var(&cfg.Limiter.RPS, "limiter-rps", cfg.Limiter.RPS, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.Limiter.Burst, "limiter-burst", cfg.Limiter.Burst, "Rate limiter maximum burst")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (debug|info|warn|error)")
	flag.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "Log format (text|json)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)

	dialect, err := data.ParseDialect(cfg.DB.Driver)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	db, err := openDB(cfg.DB)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connection pool established", "driver", cfg.DB.Driver)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	created, err := data.Bootstrap(ctx, db, dialect)
	cancel()
	if err != nil {
		logger.Error("bootstrap database", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Info("database schema created and seeded")
	}

	app := &applicationDependencies{
		config: cfg,
		logger: logger,
		db:     db,
		models: data.NewModels(db),
	}

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	// Config.Validate has already restricted the value to a known level.
	_ = level.UnmarshalText([]byte(cfg.Level))

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// openDB opens the pool for cfg.Driver and pings it with a 5-second timeout.
func openDB(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
