package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbot/internal/domain"
)

const tokenExpiry = 24 * time.Hour

type authService struct {
	settingsRepo   domain.BotSettingsRepository
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	contextTimeout time.Duration
}

// NewAuthService returns an AuthService that authenticates the admin against
// the active bot settings row.
func NewAuthService(settingsRepo domain.BotSettingsRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, timeout time.Duration) domain.AuthService {
	return &authService{
		settingsRepo:   settingsRepo,
		hasher:         hasher,
		issuer:         issuer,
		contextTimeout: timeout,
	}
}

func (s *authService) Login(ctx context.Context, phoneNumber, password string) (string, *domain.BotSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if phoneNumber == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}

	settings, err := s.settingsRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get bot settings: %w", err)
	}
	if settings.PhoneNumber != phoneNumber {
		return "", nil, domain.ErrUnauthorized
	}
	if err := s.hasher.Compare(settings.PasswordHash, password); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.issuer.Issue(settings.ID, settings.PhoneNumber, tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, settings, nil
}
