package dto

import "time"

// ConfirmationRequest payload for POST /users/confirmation.
type ConfirmationRequest struct {
	Token string `json:"token"`
}

// ConfirmationResponse returned after a successful confirmation.
type ConfirmationResponse struct {
	Username    string    `json:"username"`
	ConfirmedAt time.Time `json:"confirmed_at"`
	Enabled     bool      `json:"enabled"`
}

// PasswordResetOTPRequest payload for POST /users/password-reset-otp.
type PasswordResetOTPRequest struct {
	Username      string `json:"username"`
	ContactMethod string `json:"contact_method"`
}

// OTPAuthenticationRequest payload for POST /users/otp-authentication.
type OTPAuthenticationRequest struct {
	Username string `json:"username"`
	OTP      string `json:"otp"`
}

// PasswordResetRequest payload for PUT /users/password-reset.
type PasswordResetRequest struct {
	Username    string `json:"username"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}
