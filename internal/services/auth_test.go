package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSettingsRepo is an in-memory BotSettingsRepository for tests.
type fakeSettingsRepo struct {
	settings *domain.BotSettings
	err      error
}

func (f *fakeSettingsRepo) GetActive(_ context.Context) (*domain.BotSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.settings == nil {
		return nil, domain.ErrNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) UpdatePhoneNumber(_ context.Context, phoneNumber string) (*domain.BotSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.settings == nil {
		return nil, domain.ErrNotFound
	}
	f.settings.PhoneNumber = phoneNumber
	return f.settings, nil
}

// fakeHasher compares by plain equality against the stored "hash".
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	token string
	err   error

	gotSettingsID string
	gotPhone      string
}

func (f *fakeIssuer) Issue(settingsID, phoneNumber string, _ time.Duration) (string, error) {
	f.gotSettingsID = settingsID
	f.gotPhone = phoneNumber
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func TestAuthService_Login(t *testing.T) {
	activeSettings := func() *domain.BotSettings {
		return &domain.BotSettings{
			ID:           "settings-1",
			PhoneNumber:  "+5215550009999",
			PasswordHash: "secreto",
			IsActive:     true,
		}
	}

	tests := []struct {
		name      string
		repo      *fakeSettingsRepo
		issuer    *fakeIssuer
		phone     string
		password  string
		wantToken string
		wantErr   error
	}{
		{
			name:      "valid credentials issue token",
			repo:      &fakeSettingsRepo{settings: activeSettings()},
			issuer:    &fakeIssuer{token: "signed-token"},
			phone:     "+5215550009999",
			password:  "secreto",
			wantToken: "signed-token",
		},
		{
			name:     "wrong password",
			repo:     &fakeSettingsRepo{settings: activeSettings()},
			issuer:   &fakeIssuer{token: "signed-token"},
			phone:    "+5215550009999",
			password: "incorrecto",
			wantErr:  domain.ErrUnauthorized,
		},
		{
			name:     "wrong phone number",
			repo:     &fakeSettingsRepo{settings: activeSettings()},
			issuer:   &fakeIssuer{token: "signed-token"},
			phone:    "+5215550000000",
			password: "secreto",
			wantErr:  domain.ErrUnauthorized,
		},
		{
			name:     "no active settings row",
			repo:     &fakeSettingsRepo{},
			issuer:   &fakeIssuer{token: "signed-token"},
			phone:    "+5215550009999",
			password: "secreto",
			wantErr:  domain.ErrUnauthorized,
		},
		{
			name:     "empty credentials",
			repo:     &fakeSettingsRepo{settings: activeSettings()},
			issuer:   &fakeIssuer{token: "signed-token"},
			phone:    "",
			password: "",
			wantErr:  domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.repo, fakeHasher{}, tt.issuer, 5*time.Second)

			token, settings, err := svc.Login(context.Background(), tt.phone, tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, settings)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			require.NotNil(t, settings)
			assert.Equal(t, "settings-1", settings.ID)
			assert.Equal(t, "settings-1", tt.issuer.gotSettingsID)
			assert.Equal(t, "+5215550009999", tt.issuer.gotPhone)
		})
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	svc := NewAuthService(&fakeSettingsRepo{err: errors.New("db down")}, fakeHasher{}, &fakeIssuer{}, 5*time.Second)

	_, _, err := svc.Login(context.Background(), "+5215550009999", "secreto")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}
