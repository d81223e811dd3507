package domain

import "time"

// ContactMethod selects how a one-time passcode is delivered.
type ContactMethod string

const (
	ContactMethodSMS   ContactMethod = "sms"
	ContactMethodEmail ContactMethod = "email"
)

// OneTimePasscode gates a password reset. Only the hash of the code is
// ever stored; at most one passcode is active per account.
type OneTimePasscode struct {
	AccountID string
	CodeHash  string
	CreatedAt time.Time
}
