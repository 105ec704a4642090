package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventbot/internal/domain"
)

type botSettingsRepository struct {
	DB *sql.DB
}

func NewBotSettingsRepository(db *sql.DB) domain.BotSettingsRepository {
	return &botSettingsRepository{
		DB: db,
	}
}

func (r *botSettingsRepository) GetActive(ctx context.Context) (*domain.BotSettings, error) {
	query := `
		SELECT id, phone_number, password_hash, is_active, created_at, updated_at
		FROM bot_settings
		WHERE is_active = TRUE
		ORDER BY created_at ASC
		LIMIT 1
	`
	s := &domain.BotSettings{}
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.PhoneNumber, &s.PasswordHash, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *botSettingsRepository) UpdatePhoneNumber(ctx context.Context, phoneNumber string) (*domain.BotSettings, error) {
	query := `
		UPDATE bot_settings SET phone_number = $1, updated_at = NOW()
		WHERE is_active = TRUE
		RETURNING id, phone_number, password_hash, is_active, created_at, updated_at
	`
	s := &domain.BotSettings{}
	err := r.DB.QueryRowContext(ctx, query, phoneNumber).Scan(
		&s.ID, &s.PhoneNumber, &s.PasswordHash, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
