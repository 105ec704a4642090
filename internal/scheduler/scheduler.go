package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventbot/internal/domain"
)

// Scheduler drives the reminder service on a fixed interval.
type Scheduler struct {
	reminders domain.ReminderService
	logger    *slog.Logger
	interval  time.Duration

	stop chan struct{}
	done chan struct{}
}

// New returns a Scheduler that calls RunTick every interval.
func New(reminders domain.ReminderService, logger *slog.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		reminders: reminders,
		logger:    logger,
		interval:  interval,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the tick loop in its own goroutine.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop halts the loop and waits for the current tick to finish.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("reminder scheduler started", "interval", s.interval)
	for {
		select {
		case <-s.stop:
			s.logger.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	report, err := s.reminders.RunTick(ctx, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrTickInProgress) {
			// Previous tick is still dispatching; skip this one.
			s.logger.Warn("reminder tick skipped, previous run still in progress")
			return
		}
		s.logger.Error("reminder tick failed", "err", err)
		return
	}
	if report.Processed > 0 || report.Missed > 0 {
		s.logger.Info("reminder tick finished",
			"processed", report.Processed,
			"sent", report.Sent,
			"partially_sent", report.PartiallySent,
			"failed", report.Failed,
			"missed", report.Missed,
		)
	}
}
