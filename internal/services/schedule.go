package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbot/internal/domain"
)

type scheduleService struct {
	scheduleRepo   domain.ScheduleRepository
	eventRepo      domain.EventRepository
	speakerRepo    domain.SpeakerRepository
	contextTimeout time.Duration
}

// NewScheduleService returns a ScheduleService backed by the given repositories.
func NewScheduleService(scheduleRepo domain.ScheduleRepository, eventRepo domain.EventRepository, speakerRepo domain.SpeakerRepository, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		scheduleRepo:   scheduleRepo,
		eventRepo:      eventRepo,
		speakerRepo:    speakerRepo,
		contextTimeout: timeout,
	}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, schedule *domain.Schedule) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if schedule.EventID == "" || schedule.SpeakerID == "" {
		return domain.ErrInvalidInput
	}
	if !schedule.EndTime.After(schedule.StartTime) {
		return domain.ErrInvalidInput
	}

	if _, err := s.eventRepo.GetByID(ctx, schedule.EventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if _, err := s.speakerRepo.GetByID(ctx, schedule.SpeakerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get speaker: %w", err)
	}

	schedule.ReminderSent = false
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

func (s *scheduleService) ListEventSchedules(ctx context.Context, eventID string) ([]*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	schedules, err := s.scheduleRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	if schedules == nil {
		schedules = []*domain.Schedule{}
	}
	return schedules, nil
}

func (s *scheduleService) ListUpcomingSchedules(ctx context.Context) ([]*domain.ScheduleDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	details, err := s.scheduleRepo.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming schedules: %w", err)
	}
	if details == nil {
		details = []*domain.ScheduleDetail{}
	}
	return details, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
