package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pgspaces/pgspaces/internal/config"
	"github.com/pgspaces/pgspaces/internal/domain"
)

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// Backup runs exactly one backup attempt: dump, optional compression,
// a single upload, and unconditional local cleanup. No step is retried
// and no side effect happens twice within one Execute call.
type Backup struct {
	db         domain.Database
	storage    domain.ObjectStorage
	compressor domain.Compressor
	notifier   domain.Notifier
	logger     Logger
	dbConfig   config.DatabaseConfig
	prefix     string
	compress   bool
}

func NewBackup(
	db domain.Database,
	storage domain.ObjectStorage,
	compressor domain.Compressor,
	notifier domain.Notifier,
	logger Logger,
	dbConfig config.DatabaseConfig,
	prefix string,
	compress bool,
) *Backup {
	return &Backup{
		db:         db,
		storage:    storage,
		compressor: compressor,
		notifier:   notifier,
		logger:     logger,
		dbConfig:   dbConfig,
		prefix:     prefix,
		compress:   compress,
	}
}

func (uc *Backup) Execute(ctx context.Context) error {
	start := time.Now()
	attempt := domain.NewAttempt(start)

	// Local files go away whichever way the attempt ends.
	defer uc.removeIfPresent(attempt.LocalPath)

	uc.logger.Infof("[%s] Starting backup: %s", uc.db.GetName(), attempt.ArtifactName)

	if err := uc.db.Dump(ctx, attempt.LocalPath); err != nil {
		uc.notify(ctx, fmt.Sprintf("❌ Backup failed for %s: dump error", uc.db.GetName()))
		return fmt.Errorf("dump: %w", err)
	}

	fileInfo, err := os.Stat(attempt.LocalPath)
	if err != nil {
		return fmt.Errorf("stat dump file: %w", err)
	}
	uc.logger.Infof("[%s] Dump complete, size: %.2f MiB",
		uc.db.GetName(), float64(fileInfo.Size())/(1024*1024))

	uploadPath, remoteName := attempt.LocalPath, attempt.ArtifactName
	if uc.compress {
		uploadPath, remoteName, err = uc.compressDump(attempt)
		if err != nil {
			return err
		}
		defer uc.removeIfPresent(uploadPath)
	}

	desc := domain.NewUploadDescriptor(uc.prefix, remoteName, attempt, uc.dbConfig.Name, uc.dbConfig.Host)

	uc.logger.Infof("[%s] Uploading %s...", uc.db.GetName(), desc.Key)
	result, err := uc.storage.Upload(ctx, uploadPath, desc)
	if err != nil {
		uc.notify(ctx, fmt.Sprintf("❌ Backup failed for %s: upload error", uc.db.GetName()))
		return fmt.Errorf("upload: %w", err)
	}

	uc.logger.Infof("[%s] Backup completed in %s: %s",
		uc.db.GetName(), time.Since(start).Round(time.Second), result.URL)
	uc.notify(ctx, fmt.Sprintf("✅ Backup completed for %s: %s", uc.db.GetName(), result.Key))

	return nil
}

// ExecuteWithProbe short-circuits the dump entirely when the database
// is unreachable; no local file is ever created in that case.
func (uc *Backup) ExecuteWithProbe(ctx context.Context) error {
	version, err := uc.db.Ping(ctx)
	if err != nil {
		return fmt.Errorf("connection test: %w", err)
	}
	uc.logger.Infof("[%s] Connection OK: %s", uc.db.GetName(), version)

	return uc.Execute(ctx)
}

func (uc *Backup) compressDump(attempt domain.Attempt) (string, string, error) {
	compressedName := attempt.ArtifactName + ".gz"
	compressedPath := attempt.LocalPath + ".gz"

	uc.logger.Infof("[%s] Compressing dump...", uc.db.GetName())
	if err := uc.compressor.Compress(attempt.LocalPath, compressedPath); err != nil {
		uc.removeIfPresent(compressedPath)
		return "", "", fmt.Errorf("compress: %w", err)
	}

	return compressedPath, compressedName, nil
}

// removeIfPresent deletes a local artifact, silently skipping files
// that are already gone so cleanup stays idempotent.
func (uc *Backup) removeIfPresent(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		uc.logger.Warnf("Failed to remove local file %s: %v", path, err)
	}
}

func (uc *Backup) notify(ctx context.Context, message string) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, message); err != nil {
		uc.logger.Warnf("Notification failed: %v", err)
	}
}
