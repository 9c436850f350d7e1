// Package email delivers booking receipts.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers messages. Implementations may log instead of sending.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// --- LogSender (for development) ---

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	From string
}

// Send logs the message.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "Email sent (logged)",
		"from", s.From,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.HTML)
	return nil
}

// --- ResendSender (for production) ---

const resendEndpoint = "https://api.resend.com/emails"

// ResendSender sends messages through the Resend API.
type ResendSender struct {
	APIKey string
	From   string
	// Endpoint overrides the API URL; empty uses Resend's.
	Endpoint string
	Client   *http.Client
}

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send posts msg to Resend.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(resendPayload{
		From:    s.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal resend payload: %w", err)
	}

	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = resendEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API returned an error: status %d", resp.StatusCode)
	}

	slog.InfoContext(ctx, "Successfully sent email via Resend", "to", msg.To, "subject", msg.Subject)
	return nil
}

// NewSender picks a sender by provider name: "log" or "resend".
func NewSender(provider, apiKey, from string) (Sender, error) {
	switch provider {
	case "", "log":
		return &LogSender{From: from}, nil
	case "resend":
		if apiKey == "" {
			return nil, fmt.Errorf("email provider is 'resend' but EMAIL_API_KEY is not set")
		}
		return &ResendSender{APIKey: apiKey, From: from}, nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", provider)
	}
}
