package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
)

// IdleSweeper drops sessions idle since before a cutoff.
type IdleSweeper interface {
	SweepIdle(ctx context.Context, cutoff time.Time) int
}

// Sweeper periodically expires idle quiz sessions.
type Sweeper struct {
	scheduler *gocron.Scheduler
	target    IdleSweeper
	interval  time.Duration
	idle      time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewSweeper creates a Sweeper that runs every interval and expires
// sessions idle for longer than idle.
func NewSweeper(target IdleSweeper, interval, idle time.Duration, logger *slog.Logger) (*Sweeper, error) {
	if target == nil {
		return nil, domain.NewValidationError("target", "cannot be nil", domain.ErrValidation)
	}
	if interval <= 0 || idle <= 0 {
		return nil, domain.NewValidationError("interval", "must be positive", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		target:    target,
		interval:  interval,
		idle:      idle,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "quiz_sweeper")),
	}, nil
}

// Start schedules the sweep and returns immediately.
func (s *Sweeper) Start() error {
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.Run)
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}
	s.scheduler.StartAsync()

	s.logger.Info("session sweeper started",
		slog.Duration("interval", s.interval),
		slog.Duration("idle_timeout", s.idle))
	return nil
}

// Stop terminates the scheduled sweep.
func (s *Sweeper) Stop() {
	s.scheduler.Stop()
	s.logger.Info("session sweeper stopped")
}

// Run performs one sweep.
func (s *Sweeper) Run() {
	cutoff := s.now().Add(-s.idle)
	if n := s.target.SweepIdle(context.Background(), cutoff); n > 0 {
		s.logger.Info("expired idle quiz sessions", slog.Int("count", n))
	}
}
