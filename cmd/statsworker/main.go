package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/a11ejandro/descstats/internal/worker"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		testRunID int64
		service   bool
		debug     bool
	)
	cmd := &cobra.Command{
		Use:          "statsworker [test-run-id]",
		Short:        "Summarise benchmark samples into test_results",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Prefer the Rails app .env if present.
			_ = godotenv.Load("../benchmark_ui/.env")
			_ = godotenv.Load(".env")

			if testRunID == 0 && len(args) > 0 {
				v, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return errors.Wrapf(err, "invalid test run id %q", args[0])
				}
				testRunID = v
			}

			logger, err := newLogger(debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, logger, testRunID, service); err != nil {
				logger.Error("statsworker failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&testRunID, "test-run-id", 0, "ID of test_runs row to attach results to (omit to run service)")
	cmd.Flags().BoolVar(&service, "service", false, "Run as background service listening to Sidekiq queue")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable development logging")
	return cmd
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, logger *zap.Logger, testRunID int64, service bool) error {
	cfg, err := worker.LoadConfig()
	if err != nil {
		return errors.Wrap(err, "database config error")
	}
	db, err := worker.OpenDB(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := worker.NewService(db, cfg, logger)
	if service || testRunID == 0 {
		return svc.Run(ctx)
	}
	return svc.ProcessTestRun(ctx, testRunID)
}
