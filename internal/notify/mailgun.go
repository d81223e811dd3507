package notify

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// MailgunSender sends transactional email through Mailgun.
type MailgunSender struct {
	domain string
	apiKey string
	sender string
}

// NewMailgunSender builds a sender.
func NewMailgunSender(domain, apiKey, sender string) *MailgunSender {
	return &MailgunSender{domain: domain, apiKey: apiKey, sender: sender}
}

// Configured reports whether Mailgun credentials are present.
func (m *MailgunSender) Configured() bool {
	return m.domain != "" && m.apiKey != ""
}

// Send delivers a plain-text message to a single recipient.
func (m *MailgunSender) Send(ctx context.Context, to, subject, text string) error {
	client := mg.NewMailgun(m.domain, m.apiKey)
	msg := client.NewMessage(m.sender, subject, text, to)

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
