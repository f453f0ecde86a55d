// Package maintenance runs periodic housekeeping for the paste engine.
package maintenance

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dripfeedbot/dripfeed/internal/logger"
)

// IdleExpirer is the part of the paste scheduler the sweeper drives.
type IdleExpirer interface {
	ExpireIdle(maxIdle time.Duration) int
}

// Sweeper periodically drops suspended pastes nobody resumed. Without
// it, pastes auto-suspended by a disconnect would sit in the registry
// forever.
type Sweeper struct {
	cron      *cron.Cron
	scheduler IdleExpirer
	logger    *logger.Logger
	schedule  string
	maxIdle   time.Duration
}

// New creates a sweeper that runs on the given cron schedule and expires
// pastes idle longer than maxIdle. maxIdle <= 0 disables expiry; the
// sweeper still starts but each sweep is a no-op.
func New(scheduler IdleExpirer, log *logger.Logger, schedule string, maxIdle time.Duration) *Sweeper {
	return &Sweeper{
		cron:      cron.New(),
		scheduler: scheduler,
		logger:    log,
		schedule:  schedule,
		maxIdle:   maxIdle,
	}
}

// Start registers the sweep job and starts the cron runner.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("maintenance sweeper started",
		logger.Field{Key: "schedule", Value: s.schedule},
		logger.Field{Key: "max_idle", Value: s.maxIdle.String()})
	return nil
}

// Stop stops the cron runner, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("maintenance sweeper stopped")
}

func (s *Sweeper) sweep() {
	removed := s.scheduler.ExpireIdle(s.maxIdle)
	if removed > 0 {
		s.logger.Info("expired stale pastes",
			logger.Field{Key: "removed", Value: removed})
	}
}
