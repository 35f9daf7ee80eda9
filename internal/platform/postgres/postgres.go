package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/retail-pos/internal/config"
)

// Connect opens a traced pgx pool, verifies connectivity and layers GORM on top of it.
// The returned cleanup closes both the GORM handle and the pool.
func Connect(ctx context.Context, cfg config.Postgres) (*gorm.DB, func(), error) {
	pool, err := NewPgxPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return nil, nil, fmt.Errorf("open gorm: %w", err)
	}
	cleanup := func() {
		_ = sqlDB.Close()
		pool.Close()
	}
	return db, cleanup, nil
}

// NewPgxPool creates a pgx pool with otelpgx tracing and pool statistics.
func NewPgxPool(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	pgConf, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	pgConf.ConnConfig.Tracer = otelpgx.NewTracer()

	if cfg.MaxConns > 0 {
		pgConf.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pgConf.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pgConf.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pgConf.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgConf)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := otelpgx.RecordStats(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("record database stats: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// ConnectOptional dials PostgreSQL when a DSN is configured and returns the DB plus a cleanup function.
// When the DSN is missing or the connection fails, it logs and returns nil with a no-op cleanup.
func ConnectOptional(ctx context.Context, cfg config.Postgres, logger *slog.Logger) (*gorm.DB, func()) {
	if !cfg.Enabled() {
		if logger != nil {
			logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		}
		return nil, func() {}
	}
	db, cleanup, err := Connect(ctx, cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("postgres connection established")
	}
	return db, cleanup
}
