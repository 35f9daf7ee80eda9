package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	posserver "github.com/Apurer/retail-pos/go"
	"github.com/Apurer/retail-pos/internal/app/wiring"
	applog "github.com/Apurer/retail-pos/internal/log"
	"github.com/Apurer/retail-pos/internal/platform/clock"
	"github.com/Apurer/retail-pos/internal/platform/migrations"
	platformobservability "github.com/Apurer/retail-pos/internal/platform/observability"
	platformpostgres "github.com/Apurer/retail-pos/internal/platform/postgres"
	platformtemporal "github.com/Apurer/retail-pos/internal/platform/temporal"

	employeeobs "github.com/Apurer/retail-pos/internal/domains/employees/adapters/observability"
	employeeapp "github.com/Apurer/retail-pos/internal/domains/employees/application"
	orderobs "github.com/Apurer/retail-pos/internal/domains/orders/adapters/observability"
	orderapp "github.com/Apurer/retail-pos/internal/domains/orders/application"
	productobs "github.com/Apurer/retail-pos/internal/domains/products/adapters/observability"
	productapp "github.com/Apurer/retail-pos/internal/domains/products/application"
	reportobs "github.com/Apurer/retail-pos/internal/domains/reports/adapters/observability"
	reportapp "github.com/Apurer/retail-pos/internal/domains/reports/application"
	salesmemory "github.com/Apurer/retail-pos/internal/domains/sales/adapters/memory"
	salesobs "github.com/Apurer/retail-pos/internal/domains/sales/adapters/observability"
	salesworkflows "github.com/Apurer/retail-pos/internal/domains/sales/adapters/workflows"
	salesapp "github.com/Apurer/retail-pos/internal/domains/sales/application"
	salesdomain "github.com/Apurer/retail-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/retail-pos/internal/domains/sales/ports"
	supplierobs "github.com/Apurer/retail-pos/internal/domains/suppliers/adapters/observability"
	supplierapp "github.com/Apurer/retail-pos/internal/domains/suppliers/application"
	userobs "github.com/Apurer/retail-pos/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/retail-pos/internal/domains/users/application"
	userports "github.com/Apurer/retail-pos/internal/domains/users/ports"
)

const serviceName = "retail-pos-api"

// Run boots the POS HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
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

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, cfg.Postgres, logger)
	defer cleanupDB()
	if db != nil && cfg.Postgres.AutoMigrate {
		if err := migrations.Run(ctx, db); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}
	repos := wiring.NewRepositories(db, logger)

	publisher, closePublisher := wiring.NewPublisher(ctx, cfg.Kafka, logger)
	defer closePublisher()

	loc, err := cfg.Sales.Location()
	if err != nil {
		return err
	}

	productService := productobs.New(
		productapp.NewService(repos.Products),
		productobs.WithLogger(logger),
		productobs.WithTracer(instruments.Tracer("internal.products.application")),
		productobs.WithMeter(instruments.Meter("internal.products.application")),
	)
	supplierService := supplierobs.New(
		supplierapp.NewService(repos.Suppliers),
		supplierobs.WithLogger(logger),
		supplierobs.WithTracer(instruments.Tracer("internal.suppliers.application")),
		supplierobs.WithMeter(instruments.Meter("internal.suppliers.application")),
	)
	employeeService := employeeobs.New(
		employeeapp.NewService(repos.Employees),
		employeeobs.WithLogger(logger),
		employeeobs.WithTracer(instruments.Tracer("internal.employees.application")),
		employeeobs.WithMeter(instruments.Meter("internal.employees.application")),
	)
	orderService := orderobs.New(
		orderapp.NewService(repos.Orders, orderapp.WithLocation(loc), orderapp.WithWalkInLabel(cfg.Sales.WalkInLabel)),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	reportService := reportobs.New(
		reportapp.NewService(productService, orderService),
		reportobs.WithLogger(logger),
		reportobs.WithTracer(instruments.Tracer("internal.reports.application")),
	)
	userService := userobs.New(
		userapp.NewService(repos.Users, repos.Sessions, userapp.WithSessionTTL(cfg.Session.TTL)),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	ensureAdmin(ctx, userService, cfg, logger)
	go userapp.RunSessionPurger(ctx, userService, cfg.Session.PurgeInterval, logger)

	checkout, closeCheckout := buildCheckout(cfg, db, instruments, salesapp.NewRecorder(repos.UnitOfWork, nil), publisher, logger)
	defer closeCheckout()
	salesService := salesobs.New(
		salesapp.NewService(
			salesmemory.NewCartStore(),
			repos.Products,
			checkout,
			salesapp.WithCustomerPolicy(salesdomain.CustomerPolicy{
				RequireName: cfg.Sales.RequireCustomerName,
				WalkInLabel: cfg.Sales.WalkInLabel,
			}),
		),
		salesobs.WithLogger(logger),
		salesobs.WithTracer(instruments.Tracer("internal.sales.application")),
		salesobs.WithMeter(instruments.Meter("internal.sales.application")),
	)

	checks := map[string]posserver.HealthCheck{}
	if db != nil {
		checks["postgres"] = wiring.PingDB(db)
	}
	handlers := posserver.ApiHandleFunctions{
		AuthAPI:     posserver.NewAuthAPI(userService),
		UserAPI:     posserver.NewUserAPI(userService),
		ProductAPI:  posserver.NewProductAPI(productService),
		SupplierAPI: posserver.NewSupplierAPI(supplierService),
		EmployeeAPI: posserver.NewEmployeeAPI(employeeService),
		OrderAPI:    posserver.NewOrderAPI(orderService, loc),
		CartAPI:     posserver.NewCartAPI(salesService),
		ReportAPI:   posserver.NewReportAPI(reportService),
		POSAPI:      posserver.NewPOSAPI(clock.NewTicker(cfg.Clock), checks),
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router = posserver.NewRouterWithGinEngine(router, handlers)

	return serve(ctx, &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, logger)
}

func ensureAdmin(ctx context.Context, users userports.Service, cfg Config, logger *slog.Logger) {
	admin, created, err := users.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
	if err != nil {
		logger.Error("admin bootstrap failed", slog.String("username", cfg.Bootstrap.AdminUsername), slog.String("error", err.Error()))
		return
	}
	if created {
		logger.Warn("bootstrap admin account created, change its password", slog.String("username", admin.Username))
	}
}

// buildCheckout prefers the durable Temporal workflow. The worker runs in another process,
// so it is only used when both processes share the postgres store.
func buildCheckout(
	cfg Config,
	db *gorm.DB,
	instruments *platformobservability.Instruments,
	recorder salesports.SaleRecorder,
	publisher salesports.EventPublisher,
	logger *slog.Logger,
) (salesports.WorkflowOrchestrator, func()) {
	inline := salesworkflows.NewInlineCheckout(recorder, publisher, logger)
	switch {
	case cfg.Temporal.Disabled:
		logger.Info("Temporal disabled, running checkout inline")
		return inline, func() {}
	case db == nil:
		logger.Warn("Temporal checkout needs the postgres store shared with the worker, running checkout inline")
		return inline, func() {}
	}
	temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments.Tracer("temporal-client"), logger)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	return salesworkflows.NewTemporalCheckout(temporalClient), temporalClient.Close
}

func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("POS API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("POS API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("POS API stopped")
	return nil
}
