package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/retail-pos/internal/app/wiring"
	"github.com/Apurer/retail-pos/internal/config"
	salesapp "github.com/Apurer/retail-pos/internal/domains/sales/application"
	applog "github.com/Apurer/retail-pos/internal/log"
	platformobservability "github.com/Apurer/retail-pos/internal/platform/observability"
	platformpostgres "github.com/Apurer/retail-pos/internal/platform/postgres"
	platformtemporal "github.com/Apurer/retail-pos/internal/platform/temporal"
	salesactivities "github.com/Apurer/retail-pos/internal/platform/temporal/activities/sales"
	salesworkflows "github.com/Apurer/retail-pos/internal/platform/temporal/workflows/sales"
)

const serviceName = "retail-pos-worker"

type workerConfig struct {
	Log      config.Log
	Postgres config.Postgres
	Otel     config.Otel
	Temporal config.Temporal
	Kafka    config.Kafka
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("pos worker: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.New[workerConfig]()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := applog.NewSlogLogger(cfg.Log)

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, cfg.Otel, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()

	// The worker commits sales on behalf of the API, so it must see the same store.
	db, cleanupDB, err := platformpostgres.Connect(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("worker requires postgres: %w", err)
	}
	defer cleanupDB()
	repos := wiring.NewRepositories(db, logger)

	publisher, closePublisher := wiring.NewPublisher(ctx, cfg.Kafka, logger)
	defer closePublisher()

	activities := salesactivities.NewActivities(salesapp.NewRecorder(repos.UnitOfWork, nil), publisher)

	temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments.Tracer("temporal-worker"), logger)
	if err != nil {
		return err
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, salesworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(salesworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: salesworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.CommitSale, activity.RegisterOptions{Name: salesactivities.CommitSaleActivityName})
	w.RegisterActivityWithOptions(activities.PublishSaleCompleted, activity.RegisterOptions{Name: salesactivities.PublishSaleCompletedActivityName})

	logger.Info("worker listening", slog.String("taskQueue", salesworkflows.CheckoutTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}
