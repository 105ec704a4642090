package domain

import (
	"context"
	"time"
)

// Event represents an academic event
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	MapsLink    *string   `json:"maps_link"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, location string, date time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		Location:  location,
		Date:      date,
		IsActive:  true,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// ListActive returns events flagged active, oldest first. The bot treats
	// the first row as the primary event.
	ListActive(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, eventID string, name, location *string, date *time.Time, description, mapsLink *string, isActive *bool) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for event management.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListActiveEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID string, name, location *string, date *time.Time, description, mapsLink *string, isActive *bool) (*Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
