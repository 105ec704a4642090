package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"eventbot/internal/domain"
)

// Config holds configuration for creating a messenger.
type Config struct {
	Provider string
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// NewMessenger creates a messenger from config. Provider "gateway" talks to an
// HTTP WhatsApp gateway; "noop" or unknown uses a no-op messenger.
func NewMessenger(config Config) (domain.Messenger, error) {
	switch config.Provider {
	case "gateway":
		if config.BaseURL == "" {
			return nil, fmt.Errorf("whatsapp gateway base URL is required")
		}
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return &gatewayMessenger{
			baseURL:  config.BaseURL,
			apiToken: config.APIToken,
			client:   &http.Client{Timeout: timeout},
		}, nil
	case "noop":
		return &noopMessenger{}, nil
	default:
		log.Printf("[WHATSAPP] Unknown messenger provider %q, using noop", config.Provider)
		return &noopMessenger{}, nil
	}
}

type gatewayMessenger struct {
	baseURL  string
	apiToken string
	client   *http.Client
}

type sendRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

type batchSendRequest struct {
	PhoneNumbers []string `json:"phone_numbers"`
	Message      string   `json:"message"`
}

type batchSendResponse struct {
	Results []struct {
		PhoneNumber string `json:"phone_number"`
		Delivered   bool   `json:"delivered"`
	} `json:"results"`
}

type statusResponse struct {
	Connected bool `json:"connected"`
}

func (g *gatewayMessenger) Send(ctx context.Context, to, message string) error {
	body := sendRequest{PhoneNumber: to, Message: message}
	resp, err := g.post(ctx, "/messages", body)
	if err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp gateway returned status: %d", resp.StatusCode)
	}
	return nil
}

// SendToMany asks the gateway to fan the message out. The returned error means
// the gateway itself was unreachable; per-recipient failures come back in the
// results.
func (g *gatewayMessenger) SendToMany(ctx context.Context, phoneNumbers []string, message string) ([]domain.SendResult, error) {
	body := batchSendRequest{PhoneNumbers: phoneNumbers, Message: message}
	resp, err := g.post(ctx, "/messages/batch", body)
	if err != nil {
		return nil, fmt.Errorf("failed to send whatsapp batch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whatsapp gateway returned status: %d", resp.StatusCode)
	}

	var decoded batchSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	results := make([]domain.SendResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		results = append(results, domain.SendResult{PhoneNumber: r.PhoneNumber, Delivered: r.Delivered})
	}
	return results, nil
}

func (g *gatewayMessenger) IsConnected(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/status", nil)
	if err != nil {
		return false
	}
	g.authorize(req)
	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	var decoded statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return false
	}
	return decoded.Connected
}

func (g *gatewayMessenger) post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	g.authorize(req)
	return g.client.Do(req)
}

func (g *gatewayMessenger) authorize(req *http.Request) {
	if g.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiToken)
	}
}

type noopMessenger struct{}

func (n *noopMessenger) Send(ctx context.Context, to, message string) error {
	log.Println("[WHATSAPP] Message would be sent (noop)", "to", to)
	return nil
}

func (n *noopMessenger) SendToMany(ctx context.Context, phoneNumbers []string, message string) ([]domain.SendResult, error) {
	log.Println("[WHATSAPP] Batch would be sent (noop)", "recipients", len(phoneNumbers))
	results := make([]domain.SendResult, 0, len(phoneNumbers))
	for _, p := range phoneNumbers {
		results = append(results, domain.SendResult{PhoneNumber: p, Delivered: true})
	}
	return results, nil
}

func (n *noopMessenger) IsConnected(ctx context.Context) bool {
	return true
}
