package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventbot/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{
		DB: db,
	}
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO speakers (name, bio, topic, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.Name, s.Bio, s.Topic, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `
		SELECT id, name, bio, topic, created_at, updated_at
		FROM speakers
		WHERE id = $1
	`
	s := &domain.Speaker{}
	var bioNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &bioNull, &s.Topic, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if bioNull.Valid {
		s.Bio = &bioNull.String
	}
	return s, nil
}

func (r *speakerRepository) List(ctx context.Context) ([]*domain.Speaker, error) {
	query := `
		SELECT id, name, bio, topic, created_at, updated_at
		FROM speakers
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s := &domain.Speaker{}
		var bioNull sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &bioNull, &s.Topic, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if bioNull.Valid {
			s.Bio = &bioNull.String
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *speakerRepository) Update(ctx context.Context, speakerID string, name, topic, bio *string) (*domain.Speaker, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *name)
		n++
	}
	if topic != nil {
		setClauses = append(setClauses, fmt.Sprintf("topic = $%d", n))
		args = append(args, *topic)
		n++
	}
	if bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", n))
		args = append(args, *bio)
		n++
	}
	if n == 1 {
		return r.GetByID(ctx, speakerID)
	}
	args = append(args, speakerID)
	query := fmt.Sprintf(`
		UPDATE speakers SET %s
		WHERE id = $%d
		RETURNING id, name, bio, topic, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	s := &domain.Speaker{}
	var bioNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.Name, &bioNull, &s.Topic, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if bioNull.Valid {
		s.Bio = &bioNull.String
	}
	return s, nil
}

func (r *speakerRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM speakers WHERE id = $1`
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
