package domain

import (
	"context"
	"time"
)

// Speaker represents a person giving a talk at an event
// swagger:model Speaker
type Speaker struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSpeaker returns a new Speaker with the given fields. ID is typically set by the repository on create.
func NewSpeaker(name, topic string, createdAt, updatedAt time.Time) *Speaker {
	return &Speaker{
		Name:      name,
		Topic:     topic,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SpeakerRepository defines the interface for speaker storage
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	List(ctx context.Context) ([]*Speaker, error)
	Update(ctx context.Context, speakerID string, name, topic, bio *string) (*Speaker, error)
	Delete(ctx context.Context, id string) error
}

// SpeakerService defines the business logic for speaker management.
type SpeakerService interface {
	CreateSpeaker(ctx context.Context, speaker *Speaker) error
	ListSpeakers(ctx context.Context) ([]*Speaker, error)
	UpdateSpeaker(ctx context.Context, speakerID string, name, topic, bio *string) (*Speaker, error)
	DeleteSpeaker(ctx context.Context, speakerID string) error
}
