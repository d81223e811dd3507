package dto

import "github.com/spec-kit/account-service/internal/domain"

// RegistrationRequest is the wire shape for POST /users/registration.
// The role field discriminates the variant; only the fields for that
// variant are read.
type RegistrationRequest struct {
	Role          string `json:"role"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	MembershipID  string `json:"membership_id"`
	LastFourOfSSN string `json:"last_four_of_ssn"`
}

// UserResponse is the account shape returned by registration and lookups.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Role      domain.Role `json:"role"`
	Enabled   bool        `json:"enabled"`
}
