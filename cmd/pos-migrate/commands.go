package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Apurer/retail-pos/internal/app/wiring"
	"github.com/Apurer/retail-pos/internal/config"
	employeeapp "github.com/Apurer/retail-pos/internal/domains/employees/application"
	productapp "github.com/Apurer/retail-pos/internal/domains/products/application"
	supplierapp "github.com/Apurer/retail-pos/internal/domains/suppliers/application"
	userapp "github.com/Apurer/retail-pos/internal/domains/users/application"
	applog "github.com/Apurer/retail-pos/internal/log"
	"github.com/Apurer/retail-pos/internal/platform/migrations"
	platformpostgres "github.com/Apurer/retail-pos/internal/platform/postgres"
	"github.com/Apurer/retail-pos/internal/platform/seed"
)

type migrateConfig struct {
	Log       config.Log
	Postgres  config.Postgres
	Bootstrap config.Bootstrap
}

// env is the state shared by every subcommand once the database is open.
type env struct {
	cfg    migrateConfig
	logger *slog.Logger
	db     *gorm.DB
}

func newRootCmd() *cobra.Command {
	var (
		current env
		cleanup = func() {}
	)
	root := &cobra.Command{
		Use:           "pos-migrate",
		Short:         "Manage the POS database: schema, admin account and seed data",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New[migrateConfig]()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			current.cfg = cfg
			current.logger = applog.NewSlogLogger(cfg.Log)
			db, closeDB, err := platformpostgres.Connect(cmd.Context(), cfg.Postgres)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			current.db, cleanup = db, closeDB
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			cleanup()
		},
	}

	var seedFile string
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations, create the admin account and optionally load a seed file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := migrate(ctx, &current); err != nil {
				return err
			}
			if err := bootstrapAdmin(ctx, &current); err != nil {
				return err
			}
			path := seedFile
			if path == "" {
				path = current.cfg.Bootstrap.SeedFile
			}
			if path == "" {
				return nil
			}
			return loadSeed(ctx, &current, path)
		},
	}
	up.Flags().StringVar(&seedFile, "seed", "", "YAML catalog to load after migrating (defaults to SEED_FILE)")

	seedCmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Load products, suppliers and employees from a YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return loadSeed(cmd.Context(), &current, args[0])
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := migrations.Version(cmd.Context(), current.db)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	root.AddCommand(up, seedCmd, version)
	return root
}

func migrate(ctx context.Context, e *env) error {
	if err := migrations.Run(ctx, e.db); err != nil {
		return err
	}
	v, err := migrations.Version(ctx, e.db)
	if err != nil {
		return err
	}
	e.logger.Info("migrations applied", slog.Int64("version", v))
	return nil
}

func bootstrapAdmin(ctx context.Context, e *env) error {
	repos := wiring.NewRepositories(e.db, e.logger)
	users := userapp.NewService(repos.Users, repos.Sessions)
	admin, created, err := users.EnsureAdmin(ctx, e.cfg.Bootstrap.AdminUsername, e.cfg.Bootstrap.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	e.logger.Info("admin account ready", slog.String("username", admin.Username), slog.Bool("created", created))
	return nil
}

func loadSeed(ctx context.Context, e *env, path string) error {
	catalog, err := seed.Load(path)
	if err != nil {
		return err
	}
	repos := wiring.NewRepositories(e.db, e.logger)
	res, err := seed.Apply(ctx, catalog, seed.Services{
		Products:  productapp.NewService(repos.Products),
		Suppliers: supplierapp.NewService(repos.Suppliers),
		Employees: employeeapp.NewService(repos.Employees),
	})
	if err != nil {
		return fmt.Errorf("apply seed %s: %w", path, err)
	}
	e.logger.Info("seed applied",
		slog.String("file", path),
		slog.Int("products", res.Products),
		slog.Int("suppliers", res.Suppliers),
		slog.Int("employees", res.Employees),
		slog.Int("skipped", res.Skipped),
	)
	return nil
}
