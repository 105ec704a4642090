package services

import (
	"context"
	"fmt"
	"time"

	"eventbot/internal/domain"
)

type dashboardService struct {
	eventRepo      domain.EventRepository
	subscriberRepo domain.SubscriberRepository
	scheduleRepo   domain.ScheduleRepository
	contextTimeout time.Duration
}

// NewDashboardService returns a DashboardService aggregating over the given repositories.
func NewDashboardService(eventRepo domain.EventRepository, subscriberRepo domain.SubscriberRepository, scheduleRepo domain.ScheduleRepository, timeout time.Duration) domain.DashboardService {
	return &dashboardService{
		eventRepo:      eventRepo,
		subscriberRepo: subscriberRepo,
		scheduleRepo:   scheduleRepo,
		contextTimeout: timeout,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}

	summaries := make([]*domain.EventSummary, 0, len(events))
	for _, e := range events {
		subs, err := s.subscriberRepo.ListActiveByEventID(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("count subscribers for event %s: %w", e.ID, err)
		}
		summaries = append(summaries, &domain.EventSummary{Event: e, SubscriberCount: len(subs)})
	}

	upcoming, err := s.scheduleRepo.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming schedules: %w", err)
	}
	if upcoming == nil {
		upcoming = []*domain.ScheduleDetail{}
	}

	return &domain.Dashboard{
		Events:            summaries,
		UpcomingSchedules: upcoming,
	}, nil
}
