package main

import (
	"beertrack/cmd/config"
	migration "beertrack/cmd/database/migrate"
	"beertrack/internal/utils"
	"beertrack/internal/utils/scheduler"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "beertrack",
		Short:         "Beer tracking API with friends and shared counts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Warnf("failed to load .env: %v", err)
			}
			utils.LoadConfig(configPath)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config file")
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newBackfillCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, reconcile image sizes and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			if err := migration.Migrate(db); err != nil {
				return err
			}

			container, err := config.NewContainer(ctx, db)
			if err != nil {
				return err
			}

			// Reconciliation is best effort and never blocks start-up.
			if _, err := container.BeerService.BackfillImageSizes(ctx); err != nil {
				log.Warnf("image size backfill failed: %v", err)
			}

			jobs := scheduler.New(time.Minute)
			if spec := utils.GetConfig("SESSION_SWEEP_CRON"); spec != "" {
				err := jobs.Add(spec, "session-sweep", func(ctx context.Context) error {
					_, err := container.UserService.SweepExpiredSessions(ctx)
					return err
				})
				if err != nil {
					return fmt.Errorf("schedule session sweep: %w", err)
				}
			}
			jobs.Start()
			defer jobs.Stop()

			app, err := config.NewApp(container)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- app.Listen(":" + utils.GetConfig("APP_PORT"))
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				log.Info("shutting down")
				return app.ShutdownWithTimeout(10 * time.Second)
			}
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			return migration.Migrate(db)
		},
	}
}

func newBackfillCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Record missing image sizes from stored objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			container, err := config.NewContainer(ctx, db)
			if err != nil {
				return err
			}

			n, err := container.BeerService.BackfillImageSizes(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d beers\n", n)
			return nil
		},
	}
}
