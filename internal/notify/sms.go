package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookSMSSender posts SMS messages to a gateway webhook.
type WebhookSMSSender struct {
	url    string
	client *http.Client
}

// NewWebhookSMSSender builds a sender for the configured webhook URL.
func NewWebhookSMSSender(url string) *WebhookSMSSender {
	return &WebhookSMSSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether a webhook URL is present.
func (s *WebhookSMSSender) Configured() bool {
	return s.url != ""
}

// Send posts the message for the phone number to the gateway.
func (s *WebhookSMSSender) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
