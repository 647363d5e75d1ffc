package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pgspaces/pgspaces/internal/app"
	"github.com/pgspaces/pgspaces/internal/config"
	"github.com/pgspaces/pgspaces/internal/usecase"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "pgspaces",
		Short:   "Dump a PostgreSQL database and upload it to an S3-compatible object store",
		Version: version,
		// Bare invocation runs a backup, matching cron usage.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(cmd.Context(), false)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "backup",
			Short: "Run the full backup pipeline: dump, upload, cleanup",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBackup(cmd.Context(), false)
			},
		},
		&cobra.Command{
			Use:   "backup-with-test",
			Short: "Probe the database first, back up only if reachable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBackup(cmd.Context(), true)
			},
		},
		&cobra.Command{
			Use:   "test",
			Short: "Test database connectivity and credentials",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				defer a.Shutdown()

				// The result is logged; the command itself always succeeds.
				if a.Test(cmd.Context()) {
					fmt.Println(color.GreenString("Database connection: OK"))
				} else {
					fmt.Println(color.RedString("Database connection: FAILED"))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored backups, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				defer a.Shutdown()

				// Listing is diagnostic; failures are reported, not fatal.
				if err := a.List(cmd.Context()); err != nil {
					a.Logger().Errorf("List failed: %v", err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "prune",
			Short: "Delete stored backups older than the retention window",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				defer a.Shutdown()

				return a.Prune(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "wait [minutes] [intervalSeconds]",
			Short: "Block for a fixed duration, emitting periodic progress",
			Args:  cobra.MaximumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				total, interval, err := usecase.ParseWaitArgs(args)
				if err != nil {
					return err
				}

				a, err := newApp()
				if err != nil {
					return err
				}
				defer a.Shutdown()

				return a.Wait(cmd.Context(), total, interval)
			},
		},
	)

	return root
}

func newApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return app.New(cfg)
}

func runBackup(ctx context.Context, withTest bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Shutdown()

	if withTest {
		return a.BackupWithTest(ctx)
	}
	return a.Backup(ctx)
}
