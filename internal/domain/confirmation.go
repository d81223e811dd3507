package domain

import "time"

// ConfirmationToken gates initial account activation. The ID is a random
// UUID and must stay unguessable; a token is consumed (deleted) on
// confirmation or once it is found expired.
type ConfirmationToken struct {
	ID        string
	AccountID string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the token has outlived its validity window.
func (t ConfirmationToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// ConfirmationResult is returned after a successful confirmation.
type ConfirmationResult struct {
	Username    string
	ConfirmedAt time.Time
	Enabled     bool
}
