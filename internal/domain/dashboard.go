package domain

import "context"

// EventSummary is an active event with its active subscriber count.
type EventSummary struct {
	Event           *Event `json:"event"`
	SubscriberCount int    `json:"subscriber_count"`
}

// Dashboard aggregates the admin overview: active events with subscriber
// counts and the upcoming schedule slots across them.
type Dashboard struct {
	Events            []*EventSummary   `json:"events"`
	UpcomingSchedules []*ScheduleDetail `json:"upcoming_schedules"`
}

// DashboardService builds the admin dashboard overview.
type DashboardService interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
}
