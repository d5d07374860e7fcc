// Package db provides database connection and management utilities.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/myfans/settlement/internal/config"

	// Register database/sql drivers: "pgx" and "postgres".
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// DB wraps the database connection pool
type DB struct {
	*sqlx.DB
	logger *slog.Logger
}

// Connect establishes a connection to the database
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database",
		"driver", cfg.Driver,
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	db, err := sqlx.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := pingWithRetry(ctx, db, logger); err != nil {
		_ = db.Close() //nolint:errcheck // already returning the ping error
		logger.Error("failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	stats := db.Stats()
	logger.Info("successfully connected to database",
		"max_open_conns", stats.MaxOpenConnections,
		"open_conns", stats.OpenConnections,
		"max_idle_conns", cfg.MaxIdleConns,
		"conn_max_lifetime", cfg.ConnMaxLifetime,
	)

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

const (
	pingAttempts = 5
	pingBackoff  = 500 * time.Millisecond
)

// pingWithRetry pings with doubling delays until the database answers, the
// attempts run out or ctx ends.
func pingWithRetry(ctx context.Context, db *sqlx.DB, logger *slog.Logger) error {
	var err error
	delay := pingBackoff
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if attempt == pingAttempts {
			break
		}

		logger.Warn("database not ready, retrying",
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}

// Close closes the database connection and logs the pool's final counters.
func (db *DB) Close() error {
	stats := db.Stats()
	db.logger.Info("closing database connection",
		"wait_count", stats.WaitCount,
		"wait_duration", stats.WaitDuration,
	)
	return db.DB.Close()
}
