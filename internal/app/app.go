package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pgspaces/pgspaces/internal/adapter/compressor"
	"github.com/pgspaces/pgspaces/internal/adapter/database"
	"github.com/pgspaces/pgspaces/internal/adapter/notifier"
	"github.com/pgspaces/pgspaces/internal/adapter/storage"
	"github.com/pgspaces/pgspaces/internal/config"
	"github.com/pgspaces/pgspaces/internal/domain"
	"github.com/pgspaces/pgspaces/internal/infrastructure/logger"
	"github.com/pgspaces/pgspaces/internal/usecase"
)

// App wires configuration into adapters and use cases. One operation
// runs per process invocation; all clients are built here from config
// values, never from ambient globals.
type App struct {
	config   *config.Config
	logger   *logger.Logger
	backupUC *usecase.Backup
	probeUC  *usecase.Probe
	listUC   *usecase.List
	pruneUC  *usecase.Prune
	waitUC   *usecase.Wait
}

func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db := database.NewPostgres(&cfg.Database)

	store, err := storage.NewS3(&cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	var notify domain.Notifier
	if cfg.Telegram.Enabled() {
		notify, err = notifier.NewTelegram(&cfg.Telegram)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
		log.Infof("✓ Telegram notifications enabled")
	}

	backupUC := usecase.NewBackup(
		db,
		store,
		compressor.NewGzip(),
		notify,
		log,
		cfg.Database,
		cfg.Store.Prefix,
		cfg.Backup.Compress,
	)

	return &App{
		config:   cfg,
		logger:   log,
		backupUC: backupUC,
		probeUC:  usecase.NewProbe(db, log),
		listUC:   usecase.NewList(store, log, os.Stdout),
		pruneUC:  usecase.NewPrune(store, log, cfg.Backup.RetentionDays),
		waitUC:   usecase.NewWait(log),
	}, nil
}

func (a *App) Logger() *logger.Logger {
	return a.logger
}

// Backup runs the full pipeline: dump, upload, cleanup.
func (a *App) Backup(ctx context.Context) error {
	return a.backupUC.Execute(ctx)
}

// BackupWithTest probes first and dumps only when the probe succeeds.
func (a *App) BackupWithTest(ctx context.Context) error {
	return a.backupUC.ExecuteWithProbe(ctx)
}

// Test reports database reachability; the result is logged, not
// returned as a process failure.
func (a *App) Test(ctx context.Context) bool {
	return a.probeUC.Execute(ctx)
}

func (a *App) List(ctx context.Context) error {
	return a.listUC.Execute(ctx)
}

func (a *App) Prune(ctx context.Context) error {
	return a.pruneUC.Execute(ctx)
}

func (a *App) Wait(ctx context.Context, total, interval time.Duration) error {
	return a.waitUC.Execute(ctx, total, interval)
}

func (a *App) Shutdown() {
	a.logger.Close()
}
