package domain

import (
	"context"
	"time"
)

// Schedule represents a talk slot inside an event
// swagger:model Schedule
type Schedule struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	SpeakerID    string    `json:"speaker_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	ReminderSent bool      `json:"reminder_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSchedule returns a new Schedule with the given fields. ID is typically set by the repository on create.
func NewSchedule(eventID, speakerID string, startTime, endTime, createdAt, updatedAt time.Time) *Schedule {
	return &Schedule{
		EventID:   eventID,
		SpeakerID: speakerID,
		StartTime: startTime,
		EndTime:   endTime,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// ScheduleDetail bundles a schedule with its related event and speaker.
// Used by the reminder dispatch and the bot's schedule listing.
type ScheduleDetail struct {
	Schedule *Schedule `json:"schedule"`
	Event    *Event    `json:"event"`
	Speaker  *Speaker  `json:"speaker"`
}

// ScheduleRepository defines the interface for schedule storage
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)
	// ListByEventID returns the event's schedules ordered by start time ascending.
	ListByEventID(ctx context.Context, eventID string) ([]*Schedule, error)
	// ListDetailsByEventID is ListByEventID joined with event and speaker.
	ListDetailsByEventID(ctx context.Context, eventID string) ([]*ScheduleDetail, error)
	// ListUpcoming returns schedules starting after now, ordered by start time ascending.
	ListUpcoming(ctx context.Context, now time.Time) ([]*ScheduleDetail, error)
	// ListDueReminders returns unsent schedules starting inside (now, now+lead],
	// joined with their event and speaker.
	ListDueReminders(ctx context.Context, now time.Time, lead time.Duration) ([]*ScheduleDetail, error)
	// ListMissedReminders returns unsent schedules whose start time has already
	// passed, joined with their event and speaker.
	ListMissedReminders(ctx context.Context, now time.Time) ([]*ScheduleDetail, error)
	// MarkReminderSent flips reminder_sent to true. It is never reset to false.
	MarkReminderSent(ctx context.Context, scheduleID string) error
	Delete(ctx context.Context, id string) error
}

// ScheduleService defines the business logic for schedule management.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, schedule *Schedule) error
	ListEventSchedules(ctx context.Context, eventID string) ([]*Schedule, error)
	ListUpcomingSchedules(ctx context.Context) ([]*ScheduleDetail, error)
	DeleteSchedule(ctx context.Context, scheduleID string) error
}

// DispatchOutcome classifies the result of one reminder fan-out.
type DispatchOutcome int

const (
	DispatchSent DispatchOutcome = iota
	DispatchPartiallySent
	DispatchFailed
)

// DispatchReport summarizes one reminder tick.
type DispatchReport struct {
	Processed     int `json:"processed"`
	Sent          int `json:"sent"`
	PartiallySent int `json:"partially_sent"`
	Failed        int `json:"failed"`
	Missed        int `json:"missed"`
}

// ReminderService runs the periodic reminder dispatch.
type ReminderService interface {
	// RunTick evaluates due schedules at now and fans reminders out to active
	// subscribers. Returns ErrTickInProgress if a previous run has not finished.
	RunTick(ctx context.Context, now time.Time) (*DispatchReport, error)
}
