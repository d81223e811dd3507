package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventAccountConfirmed  EventType = "account_confirmed"
	EventPasswordChanged   EventType = "password_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	ConfirmationToken string    `json:"confirmation_token"`
	TokenExpiresAt    time.Time `json:"token_expires_at"`
}

// AccountConfirmedPayload payload.
type AccountConfirmedPayload struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// PasswordChangedPayload payload.
type PasswordChangedPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
