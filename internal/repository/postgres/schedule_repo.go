package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventbot/internal/domain"
)

type scheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{
		DB: db,
	}
}

// detailColumns is the select list shared by every joined schedule query.
const detailColumns = `
	s.id, s.event_id, s.speaker_id, s.start_time, s.end_time, s.reminder_sent, s.created_at, s.updated_at,
	e.id, e.name, e.description, e.date, e.location, e.maps_link, e.is_active, e.created_at, e.updated_at,
	sp.id, sp.name, sp.bio, sp.topic, sp.created_at, sp.updated_at
`

func (r *scheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	query := `
		INSERT INTO schedules (event_id, speaker_id, start_time, end_time, reminder_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.EventID, s.SpeakerID, s.StartTime, s.EndTime, s.ReminderSent, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	query := `
		SELECT id, event_id, speaker_id, start_time, end_time, reminder_sent, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`
	s := &domain.Schedule{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.EventID, &s.SpeakerID, &s.StartTime, &s.EndTime, &s.ReminderSent, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *scheduleRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Schedule, error) {
	query := `
		SELECT id, event_id, speaker_id, start_time, end_time, reminder_sent, created_at, updated_at
		FROM schedules
		WHERE event_id = $1
		ORDER BY start_time ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s := &domain.Schedule{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.SpeakerID, &s.StartTime, &s.EndTime, &s.ReminderSent, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *scheduleRepository) ListDetailsByEventID(ctx context.Context, eventID string) ([]*domain.ScheduleDetail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM schedules s
		JOIN events e ON e.id = s.event_id
		JOIN speakers sp ON sp.id = s.speaker_id
		WHERE s.event_id = $1
		ORDER BY s.start_time ASC
	`
	return r.queryDetails(ctx, query, eventID)
}

func (r *scheduleRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*domain.ScheduleDetail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM schedules s
		JOIN events e ON e.id = s.event_id
		JOIN speakers sp ON sp.id = s.speaker_id
		WHERE s.start_time > $1
		ORDER BY s.start_time ASC
	`
	return r.queryDetails(ctx, query, now)
}

func (r *scheduleRepository) ListDueReminders(ctx context.Context, now time.Time, lead time.Duration) ([]*domain.ScheduleDetail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM schedules s
		JOIN events e ON e.id = s.event_id
		JOIN speakers sp ON sp.id = s.speaker_id
		WHERE s.reminder_sent = FALSE
		  AND e.is_active = TRUE
		  AND s.start_time > $1
		  AND s.start_time <= $2
		ORDER BY s.start_time ASC
	`
	return r.queryDetails(ctx, query, now, now.Add(lead))
}

func (r *scheduleRepository) ListMissedReminders(ctx context.Context, now time.Time) ([]*domain.ScheduleDetail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM schedules s
		JOIN events e ON e.id = s.event_id
		JOIN speakers sp ON sp.id = s.speaker_id
		WHERE s.reminder_sent = FALSE
		  AND s.start_time <= $1
		ORDER BY s.start_time ASC
	`
	return r.queryDetails(ctx, query, now)
}

func (r *scheduleRepository) queryDetails(ctx context.Context, query string, args ...interface{}) ([]*domain.ScheduleDetail, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]*domain.ScheduleDetail, 0)
	for rows.Next() {
		s := &domain.Schedule{}
		e := &domain.Event{}
		sp := &domain.Speaker{}
		var descNull, mapsNull, bioNull sql.NullString
		err := rows.Scan(
			&s.ID, &s.EventID, &s.SpeakerID, &s.StartTime, &s.EndTime, &s.ReminderSent, &s.CreatedAt, &s.UpdatedAt,
			&e.ID, &e.Name, &descNull, &e.Date, &e.Location, &mapsNull, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
			&sp.ID, &sp.Name, &bioNull, &sp.Topic, &sp.CreatedAt, &sp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if descNull.Valid {
			e.Description = &descNull.String
		}
		if mapsNull.Valid {
			e.MapsLink = &mapsNull.String
		}
		if bioNull.Valid {
			sp.Bio = &bioNull.String
		}
		details = append(details, &domain.ScheduleDetail{Schedule: s, Event: e, Speaker: sp})
	}
	return details, rows.Err()
}

func (r *scheduleRepository) MarkReminderSent(ctx context.Context, scheduleID string) error {
	query := `
		UPDATE schedules SET reminder_sent = TRUE, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, scheduleID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM schedules WHERE id = $1`
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
