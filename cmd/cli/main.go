package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carebridge/scheduler/cmd/cli/commands"
	"github.com/carebridge/scheduler/internal/config"
	"github.com/carebridge/scheduler/pkg/core/matching"
	"github.com/carebridge/scheduler/pkg/core/rerank"
	"github.com/carebridge/scheduler/pkg/events"
	"github.com/carebridge/scheduler/pkg/postgres"
	"github.com/carebridge/scheduler/pkg/utils/logging"
)

var env string

// app is allocated up front so commands can capture the pointer; its fields
// are populated by initApp before any command runs.
var app = &commands.AppContext{}

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "CareBridge Scheduler CLI - Manage care shifts and worker matching",
		Long:  `A CLI tool for managing care shifts, detecting scheduling conflicts, and recommending workers for visits.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(
		commands.RecommendCmd(app),
		commands.CreateShiftCmd(app),
		commands.UpdateShiftCmd(app),
		commands.CancelShiftCmd(app),
		commands.BulkCreateShiftsCmd(app),
		commands.DeployTemplateCmd(app),
		commands.ListShiftsCmd(app),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger, config, database, cache, and matching engine
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting scheduler", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Info("Running migrations")
	if err := app.Database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Debug("Database ready")

	app.Dispatcher = events.NewInMemoryDispatcher(app.Logger)

	app.Checker = matching.NewChecker(app.Database, app.Database, app.Database, app.Logger)
	app.Detector = matching.NewDetector(app.Database, app.Database, app.Logger)
	app.Scorer = matching.NewScorer(app.Database, app.Database, app.Checker, buildReranker(), app.Logger)

	app.Logger.Info("Scheduler initialized")
	return nil
}

// buildReranker assembles the optional advisory re-ranking collaborator.
// Without a configured endpoint recommendations keep their heuristic order.
func buildReranker() matching.Reranker {
	if app.Cfg.RerankEndpoint == "" {
		return nil
	}

	ttl := time.Duration(app.Cfg.RerankCacheTTLSeconds) * time.Second

	var cache rerank.RecommendationCache
	if app.Cfg.RedisAddr != "" {
		app.Logger.Info("Using Redis recommendation cache", zap.String("addr", app.Cfg.RedisAddr))
		client := redis.NewClient(&redis.Options{
			Addr:     app.Cfg.RedisAddr,
			Password: app.Cfg.RedisPassword,
		})
		cache = rerank.NewRedisCache(client, ttl, app.Logger)
	} else {
		app.Logger.Info("Using in-memory recommendation cache")
		cache = rerank.NewMemoryCache(ttl, 0)
	}

	timeout := time.Duration(app.Cfg.RerankTimeoutSeconds) * time.Second
	return rerank.NewClient(app.Cfg.RerankEndpoint, timeout, cache, app.Logger)
}
