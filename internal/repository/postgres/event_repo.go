package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventbot/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, date, location, maps_link, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Date, e.Location, e.MapsLink, e.IsActive, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, description, date, location, maps_link, is_active, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var descNull, mapsNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &descNull, &e.Date, &e.Location, &mapsNull, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if mapsNull.Valid {
		e.MapsLink = &mapsNull.String
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, name, description, date, location, maps_link, is_active, created_at, updated_at
		FROM events
		ORDER BY created_at ASC, id ASC
	`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, name, description, date, location, maps_link, is_active, created_at, updated_at
		FROM events
		WHERE is_active = TRUE
		ORDER BY created_at ASC, id ASC
	`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var descNull, mapsNull sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &descNull, &e.Date, &e.Location, &mapsNull, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if descNull.Valid {
			e.Description = &descNull.String
		}
		if mapsNull.Valid {
			e.MapsLink = &mapsNull.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID string, name, location *string, date *time.Time, description, mapsLink *string, isActive *bool) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *name)
		n++
	}
	if location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *location)
		n++
	}
	if date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *date)
		n++
	}
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *description)
		n++
	}
	if mapsLink != nil {
		setClauses = append(setClauses, fmt.Sprintf("maps_link = $%d", n))
		args = append(args, *mapsLink)
		n++
	}
	if isActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", n))
		args = append(args, *isActive)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING id, name, description, date, location, maps_link, is_active, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	e := &domain.Event{}
	var descNull, mapsNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Name, &descNull, &e.Date, &e.Location, &mapsNull, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if mapsNull.Valid {
		e.MapsLink = &mapsNull.String
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
