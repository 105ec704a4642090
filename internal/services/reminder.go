package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"eventbot/internal/domain"
)

// DefaultReminderLead is the horizon before a talk's start inside which its
// reminder fires.
const DefaultReminderLead = 5 * time.Minute

// IsDue reports whether a schedule's reminder should fire at now: the reminder
// has not been sent and the start time falls inside (now, now+lead].
func IsDue(s *domain.Schedule, now time.Time, lead time.Duration) bool {
	if s.ReminderSent {
		return false
	}
	return s.StartTime.After(now) && !s.StartTime.After(now.Add(lead))
}

type reminderService struct {
	scheduleRepo  domain.ScheduleRepository
	subscriptions domain.SubscriptionService
	messenger     domain.Messenger
	alerts        domain.AlertService // nil disables alert emails
	logger        *slog.Logger
	lead          time.Duration

	tickMu sync.Mutex
	// missedLogged tracks schedules already reported as missed so each one is
	// surfaced once, not on every tick.
	missedLogged map[string]struct{}
}

// NewReminderService returns a ReminderService dispatching reminders through
// the given messenger. alerts may be nil.
func NewReminderService(scheduleRepo domain.ScheduleRepository, subscriptions domain.SubscriptionService, messenger domain.Messenger, alerts domain.AlertService, logger *slog.Logger, lead time.Duration) domain.ReminderService {
	if lead <= 0 {
		lead = DefaultReminderLead
	}
	return &reminderService{
		scheduleRepo:  scheduleRepo,
		subscriptions: subscriptions,
		messenger:     messenger,
		alerts:        alerts,
		logger:        logger,
		lead:          lead,
		missedLogged:  make(map[string]struct{}),
	}
}

func (s *reminderService) RunTick(ctx context.Context, now time.Time) (*domain.DispatchReport, error) {
	if !s.tickMu.TryLock() {
		return nil, domain.ErrTickInProgress
	}
	defer s.tickMu.Unlock()

	report := &domain.DispatchReport{}

	due, err := s.scheduleRepo.ListDueReminders(ctx, now, s.lead)
	if err != nil {
		return report, fmt.Errorf("list due reminders: %w", err)
	}

	for _, d := range due {
		// The query already filters; re-checking keeps the window arithmetic in
		// one place and guards a stale row.
		if !IsDue(d.Schedule, now, s.lead) {
			continue
		}
		report.Processed++
		s.dispatch(ctx, d, report)
	}

	s.reportMissed(ctx, now, report)

	return report, nil
}

// dispatch fans one schedule's reminder out to the event's active subscribers.
// A failure before the send leaves reminder_sent untouched so the schedule is
// retried next tick while still inside the window.
func (s *reminderService) dispatch(ctx context.Context, d *domain.ScheduleDetail, report *domain.DispatchReport) {
	subs, err := s.subscriptions.ListActiveSubscribers(ctx, d.Event.ID)
	if err != nil {
		report.Failed++
		s.logger.Error("reminder dispatch failed", "schedule_id", d.Schedule.ID, "err", err)
		return
	}

	if len(subs) == 0 {
		// No subscribers is not an error; the reminder is still consumed.
		if err := s.markSent(ctx, d); err != nil {
			report.Failed++
			return
		}
		report.Sent++
		return
	}

	phones := make([]string, 0, len(subs))
	for _, sub := range subs {
		phones = append(phones, sub.PhoneNumber)
	}

	message := composeReminderMessage(d, s.lead)
	results, err := s.messenger.SendToMany(ctx, phones, message)
	if err != nil {
		// Transport unreachable: do not mark, retry next tick.
		report.Failed++
		s.logger.Error("reminder send failed", "schedule_id", d.Schedule.ID, "recipients", len(phones), "err", err)
		return
	}

	outcome := classifyOutcome(results)
	switch outcome {
	case domain.DispatchSent:
		report.Sent++
	case domain.DispatchPartiallySent:
		report.PartiallySent++
		s.logger.Warn("reminder partially delivered", "schedule_id", d.Schedule.ID, "delivered", deliveredCount(results), "recipients", len(results))
	case domain.DispatchFailed:
		report.Failed++
		s.logger.Warn("reminder delivered to no recipients", "schedule_id", d.Schedule.ID, "recipients", len(results))
	}

	// At-most-once: the reminder is consumed whatever the per-recipient
	// breakdown says. Failed sends are never retried.
	_ = s.markSent(ctx, d)
}

func (s *reminderService) markSent(ctx context.Context, d *domain.ScheduleDetail) error {
	if err := s.scheduleRepo.MarkReminderSent(ctx, d.Schedule.ID); err != nil {
		s.logger.Error("mark reminder sent failed", "schedule_id", d.Schedule.ID, "err", err)
		return err
	}
	d.Schedule.ReminderSent = true
	return nil
}

// reportMissed surfaces schedules whose window closed without a successful
// send. Each is logged once and never retried late. The seen-set is rebuilt
// from the current missed list every tick, so entries for schedules that get
// marked or deleted fall out instead of accumulating.
func (s *reminderService) reportMissed(ctx context.Context, now time.Time, report *domain.DispatchReport) {
	missed, err := s.scheduleRepo.ListMissedReminders(ctx, now)
	if err != nil {
		s.logger.Error("list missed reminders failed", "err", err)
		return
	}
	logged := make(map[string]struct{}, len(missed))
	for _, d := range missed {
		logged[d.Schedule.ID] = struct{}{}
		if _, seen := s.missedLogged[d.Schedule.ID]; seen {
			continue
		}
		report.Missed++
		s.logger.Warn("reminder missed",
			"schedule_id", d.Schedule.ID,
			"event", d.Event.Name,
			"speaker", d.Speaker.Name,
			"start_time", d.Schedule.StartTime,
		)
		if s.alerts != nil {
			data := &domain.MissedReminderEmailData{
				EventName:   d.Event.Name,
				SpeakerName: d.Speaker.Name,
				Topic:       d.Speaker.Topic,
				StartTime:   d.Schedule.StartTime.Format("02/01/2006 15:04"),
			}
			if err := s.alerts.SendMissedReminderAlert(ctx, data); err != nil {
				s.logger.Error("missed reminder alert failed", "schedule_id", d.Schedule.ID, "err", err)
			}
		}
	}
	s.missedLogged = logged
}

func classifyOutcome(results []domain.SendResult) domain.DispatchOutcome {
	delivered := deliveredCount(results)
	switch {
	case delivered == len(results):
		return domain.DispatchSent
	case delivered > 0:
		return domain.DispatchPartiallySent
	default:
		return domain.DispatchFailed
	}
}

func deliveredCount(results []domain.SendResult) int {
	n := 0
	for _, r := range results {
		if r.Delivered {
			n++
		}
	}
	return n
}

func composeReminderMessage(d *domain.ScheduleDetail, lead time.Duration) string {
	return fmt.Sprintf("🔔 *Recordatorio de Ponencia*\n\n"+
		"La ponencia \"%s\" con %s comenzará en %d minutos (%s).\n\n"+
		"¡No te la pierdas! 🎯",
		d.Speaker.Topic, d.Speaker.Name, int(lead.Minutes()), d.Schedule.StartTime.Format("15:04"))
}
