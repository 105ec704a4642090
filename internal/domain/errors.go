package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for requests that fail domain validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when credentials do not match.
	ErrUnauthorized = errors.New("unauthorized")
)

// Subscription outcomes. These are reported results, not faults: the bot
// converts them to reply text instead of propagating them.
var (
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("not subscribed")
)

// ErrTickInProgress is returned by the reminder service when a tick starts
// while the previous one is still running.
var ErrTickInProgress = errors.New("reminder tick already in progress")
