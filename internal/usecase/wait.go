package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pgspaces/pgspaces/internal/domain"
)

const (
	DefaultWaitMinutes      = 5
	DefaultWaitIntervalSecs = 30
)

// Wait blocks for a fixed duration, emitting periodic progress. Useful
// between container startup and the first scheduled backup.
type Wait struct {
	logger Logger
}

func NewWait(logger Logger) *Wait {
	return &Wait{logger: logger}
}

// ParseWaitArgs turns optional [minutes] [intervalSeconds] arguments
// into durations, rejecting non-positive or unparseable values before
// any waiting happens.
func ParseWaitArgs(args []string) (total, interval time.Duration, err error) {
	minutes := DefaultWaitMinutes
	intervalSecs := DefaultWaitIntervalSecs

	if len(args) > 0 {
		minutes, err = strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: minutes must be a number, got %q", domain.ErrInvalidArgument, args[0])
		}
	}
	if len(args) > 1 {
		intervalSecs, err = strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: interval seconds must be a number, got %q", domain.ErrInvalidArgument, args[1])
		}
	}

	if minutes <= 0 {
		return 0, 0, fmt.Errorf("%w: minutes must be positive, got %d", domain.ErrInvalidArgument, minutes)
	}
	if intervalSecs <= 0 {
		return 0, 0, fmt.Errorf("%w: interval seconds must be positive, got %d", domain.ErrInvalidArgument, intervalSecs)
	}

	return time.Duration(minutes) * time.Minute, time.Duration(intervalSecs) * time.Second, nil
}

func (uc *Wait) Execute(ctx context.Context, total, interval time.Duration) error {
	if total <= 0 || interval <= 0 {
		return fmt.Errorf("%w: wait duration and interval must be positive", domain.ErrInvalidArgument)
	}

	uc.logger.Infof("Waiting %s (progress every %s)...", total, interval)
	deadline := time.Now().Add(total)

	timer := time.NewTimer(total)
	defer timer.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			uc.logger.Infof("Wait complete after %s", total)
			return nil
		case <-ticker.C:
			remaining := time.Until(deadline).Round(time.Second)
			if remaining > 0 {
				uc.logger.Infof("Still waiting, %s remaining...", remaining)
			}
		}
	}
}
