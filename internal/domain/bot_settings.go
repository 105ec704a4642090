package domain

import (
	"context"
	"time"
)

// BotSettings holds the admin account tied to the bot's phone number.
// swagger:model BotSettings
type BotSettings struct {
	ID           string    `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BotSettingsRepository defines the interface for bot settings storage
type BotSettingsRepository interface {
	GetActive(ctx context.Context) (*BotSettings, error)
	UpdatePhoneNumber(ctx context.Context, phoneNumber string) (*BotSettings, error)
}

// PasswordHasher handles hashing and verification of the admin password.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(settingsID, phoneNumber string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated settings ID.
type TokenVerifier interface {
	Verify(token string) (settingsID string, err error)
}

// AuthService defines admin authentication against the active bot settings.
type AuthService interface {
	// Login verifies phone number and password and returns a signed token.
	// Returns ErrUnauthorized when credentials do not match.
	Login(ctx context.Context, phoneNumber, password string) (token string, settings *BotSettings, err error)
}
