package domain

import "context"

// SendResult reports the delivery attempt for one recipient.
type SendResult struct {
	PhoneNumber string `json:"phone_number"`
	Delivered   bool   `json:"delivered"`
}

// Messenger defines the contract for the chat transport (infrastructure port).
// Delivery is best effort: SendToMany reports per-recipient results and only
// returns an error when the transport itself is unreachable.
type Messenger interface {
	Send(ctx context.Context, to, message string) error
	SendToMany(ctx context.Context, phoneNumbers []string, message string) ([]SendResult, error)
	IsConnected(ctx context.Context) bool
}

// BotService routes inbound chat messages to replies.
type BotService interface {
	// ProcessMessage maps one normalized inbound message to the reply text.
	ProcessMessage(ctx context.Context, fromPhone, text string) (string, error)
}
