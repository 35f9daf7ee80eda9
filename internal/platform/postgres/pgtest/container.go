//go:build integration

// Package pgtest starts a disposable PostgreSQL container with the schema applied.
package pgtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Apurer/retail-pos/internal/config"
	"github.com/Apurer/retail-pos/internal/platform/migrations"
	platformpostgres "github.com/Apurer/retail-pos/internal/platform/postgres"
)

// Start runs postgres:15-alpine, applies migrations and registers cleanup on t.
func Start(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("pos_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, cleanup, err := platformpostgres.Connect(ctx, config.Postgres{DSN: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(cleanup)

	require.NoError(t, migrations.Run(ctx, db))
	return db
}
