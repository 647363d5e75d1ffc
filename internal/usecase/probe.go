package usecase

import (
	"context"

	"github.com/pgspaces/pgspaces/internal/domain"
)

// Probe verifies database reachability and credentials without side
// effects. It is advisory: the backup pipeline never calls it.
type Probe struct {
	db     domain.Database
	logger Logger
}

func NewProbe(db domain.Database, logger Logger) *Probe {
	return &Probe{db: db, logger: logger}
}

// Execute reports reachability as a boolean; connection and query
// errors are logged here and never propagate past this boundary.
func (uc *Probe) Execute(ctx context.Context) bool {
	version, err := uc.db.Ping(ctx)
	if err != nil {
		uc.logger.Errorf("[%s] Connection test failed: %v", uc.db.GetName(), err)
		return false
	}

	uc.logger.Infof("[%s] Connection OK: %s", uc.db.GetName(), version)
	return true
}
