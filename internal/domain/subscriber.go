package domain

import (
	"context"
	"time"
)

// Subscriber represents a phone number subscribed to an event's reminders.
// At most one row exists per (phone_number, event_id) pair; unsubscribing
// deactivates the row instead of deleting it.
// swagger:model Subscriber
type Subscriber struct {
	ID           string    `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	EventID      string    `json:"event_id"`
	IsActive     bool      `json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SubscriberRepository defines the interface for subscriber storage
type SubscriberRepository interface {
	// Upsert inserts the (phone, event) row as active, or reactivates it if it
	// already exists. The unique constraint on the pair guards concurrent calls.
	Upsert(ctx context.Context, phoneNumber, eventID string, subscribedAt time.Time) (*Subscriber, error)
	GetByPhoneAndEvent(ctx context.Context, phoneNumber, eventID string) (*Subscriber, error)
	// SetActive flips is_active for the (phone, event) row.
	SetActive(ctx context.Context, phoneNumber, eventID string, active bool) error
	ListActiveByEventID(ctx context.Context, eventID string) ([]*Subscriber, error)
}

// SubscriptionService enforces the subscribe/unsubscribe state machine.
type SubscriptionService interface {
	// Subscribe activates the (phone, event) subscription. Returns the event for
	// confirmation messaging, ErrNotFound if the event does not exist, or
	// ErrAlreadySubscribed if the subscription is already active.
	Subscribe(ctx context.Context, phoneNumber, eventID string) (*Event, error)
	// Unsubscribe deactivates the subscription. Returns ErrNotSubscribed if no
	// active subscription exists.
	Unsubscribe(ctx context.Context, phoneNumber, eventID string) error
	ListActiveSubscribers(ctx context.Context, eventID string) ([]*Subscriber, error)
}
