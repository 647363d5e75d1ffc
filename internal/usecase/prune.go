package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pgspaces/pgspaces/internal/domain"
)

// Prune deletes stored artifacts older than the retention window. It
// only runs when the operator asks for it, never automatically.
type Prune struct {
	storage       domain.ObjectStorage
	logger        Logger
	retentionDays int
}

func NewPrune(storage domain.ObjectStorage, logger Logger, retentionDays int) *Prune {
	return &Prune{
		storage:       storage,
		logger:        logger,
		retentionDays: retentionDays,
	}
}

func (uc *Prune) Execute(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -uc.retentionDays)
	uc.logger.Infof("Pruning backups older than %s (retention: %d days)",
		cutoff.Format("2006-01-02 15:04:05"), uc.retentionDays)

	objects, err := uc.storage.GetOldObjects(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list old backups: %w", err)
	}

	if len(objects) == 0 {
		uc.logger.Infof("Nothing to prune")
		return nil
	}

	deleted := 0
	for _, obj := range objects {
		if err := uc.storage.Delete(ctx, obj.Key); err != nil {
			uc.logger.Errorf("Failed to delete %s: %v", obj.Key, err)
			continue
		}
		uc.logger.Infof("Deleted old backup: %s", obj.Key)
		deleted++
	}

	uc.logger.Infof("Pruned %d of %d old backup(s)", deleted, len(objects))
	return nil
}
