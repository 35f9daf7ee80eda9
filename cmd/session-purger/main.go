package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/Apurer/retail-pos/internal/config"
	userpostgres "github.com/Apurer/retail-pos/internal/domains/users/adapters/persistence/postgres"
	applog "github.com/Apurer/retail-pos/internal/log"
	platformpostgres "github.com/Apurer/retail-pos/internal/platform/postgres"
)

type purgerConfig struct {
	Log      config.Log
	Postgres config.Postgres
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Fatalf("session purge: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.New[purgerConfig]()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := applog.NewSlogLogger(cfg.Log)

	db, cleanup, err := platformpostgres.Connect(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("POSTGRES_DSN not set or connection failed: %w", err)
	}
	defer cleanup()

	purged, err := userpostgres.NewSessionStore(db).PurgeExpired(ctx, time.Now())
	if err != nil {
		return err
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
	return nil
}
