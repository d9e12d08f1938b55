package database

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Pool settings used when the configuration leaves a value at zero.
const (
	defaultMaxConns        = 25
	defaultMinConns        = 10
	defaultMaxConnLifetime = 1 * time.Hour
	defaultMaxConnIdleTime = 30 * time.Minute
	healthCheckPeriod      = 1 * time.Minute
)

// NewPool creates a new PostgreSQL connection pool.
// It verifies connectivity by pinging the database.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int32("max_connections", pc.MaxConns).
		Int32("min_connections", pc.MinConns).
		Dur("max_conn_idle_time", pc.MaxConnIdleTime).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}

// poolConfig parses the connection string and applies pool sizing and lifetimes.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pc.MaxConns = defaultMaxConns
	if cfg.MaxConnections > 0 {
		pc.MaxConns = int32(cfg.MaxConnections)
	}
	pc.MinConns = min(defaultMinConns, pc.MaxConns)
	if cfg.MinConnections > 0 {
		pc.MinConns = int32(cfg.MinConnections)
	}

	pc.MaxConnLifetime = defaultMaxConnLifetime
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	}
	pc.MaxConnIdleTime = defaultMaxConnIdleTime
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleTime) * time.Second
	}
	pc.HealthCheckPeriod = healthCheckPeriod

	return pc, nil
}
