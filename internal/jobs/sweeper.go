// Package jobs runs the process's scheduled background work.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nethal17/Ramanayake-Travels-sub001/internal/logger"
)

const sweepTimeout = 30 * time.Second

// Sweeper is satisfied by session.Manager.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron *cron.Cron
	log  logger.ILogger
}

func NewScheduler(log logger.ILogger) *Scheduler {
	return &Scheduler{cron: cron.New(), log: log}
}

// EverySweep registers s to run on schedule (cron spec or "@every 10m").
func (s *Scheduler) EverySweep(schedule string, sw Sweeper) error {
	if _, err := s.cron.AddFunc(schedule, func() { SweepOnce(context.Background(), sw, s.log) }); err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", schedule, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warning("scheduler stop timed out")
	}
}

// SweepOnce drops expired sessions and logs the outcome.
func SweepOnce(ctx context.Context, sw Sweeper, log logger.ILogger) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()
	n, err := sw.Sweep(ctx)
	if err != nil {
		log.Error("session sweep failed", logger.Error(err))
		return
	}
	if n > 0 {
		log.Info("expired sessions removed", logger.Int64("count", n))
	}
}
