package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventbot/internal/domain"
)

type subscriberRepository struct {
	DB *sql.DB
}

func NewSubscriberRepository(db *sql.DB) domain.SubscriberRepository {
	return &subscriberRepository{
		DB: db,
	}
}

// Upsert inserts the subscription or reactivates the existing row. The unique
// constraint on (phone_number, event_id) makes concurrent subscribes converge
// on a single row.
func (r *subscriberRepository) Upsert(ctx context.Context, phoneNumber, eventID string, subscribedAt time.Time) (*domain.Subscriber, error) {
	query := `
		INSERT INTO subscribers (phone_number, event_id, is_active, subscribed_at)
		VALUES ($1, $2, TRUE, $3)
		ON CONFLICT (phone_number, event_id)
		DO UPDATE SET is_active = TRUE
		RETURNING id, phone_number, event_id, is_active, subscribed_at
	`
	s := &domain.Subscriber{}
	err := r.DB.QueryRowContext(ctx, query, phoneNumber, eventID, subscribedAt).Scan(
		&s.ID, &s.PhoneNumber, &s.EventID, &s.IsActive, &s.SubscribedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *subscriberRepository) GetByPhoneAndEvent(ctx context.Context, phoneNumber, eventID string) (*domain.Subscriber, error) {
	query := `
		SELECT id, phone_number, event_id, is_active, subscribed_at
		FROM subscribers
		WHERE phone_number = $1 AND event_id = $2
	`
	s := &domain.Subscriber{}
	err := r.DB.QueryRowContext(ctx, query, phoneNumber, eventID).Scan(
		&s.ID, &s.PhoneNumber, &s.EventID, &s.IsActive, &s.SubscribedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *subscriberRepository) SetActive(ctx context.Context, phoneNumber, eventID string, active bool) error {
	query := `
		UPDATE subscribers SET is_active = $3
		WHERE phone_number = $1 AND event_id = $2
	`
	result, err := r.DB.ExecContext(ctx, query, phoneNumber, eventID, active)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subscriberRepository) ListActiveByEventID(ctx context.Context, eventID string) ([]*domain.Subscriber, error) {
	query := `
		SELECT id, phone_number, event_id, is_active, subscribed_at
		FROM subscribers
		WHERE event_id = $1 AND is_active = TRUE
		ORDER BY subscribed_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	subscribers := make([]*domain.Subscriber, 0)
	for rows.Next() {
		s := &domain.Subscriber{}
		if err := rows.Scan(&s.ID, &s.PhoneNumber, &s.EventID, &s.IsActive, &s.SubscribedAt); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}
