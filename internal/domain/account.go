package domain

import "time"

// Role enumerates account role variants.
type Role string

const (
	RoleMember        Role = "MEMBER"
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleEmployee      Role = "EMPLOYEE"
)

// Elevated reports whether the role may view accounts it does not own.
func (r Role) Elevated() bool {
	return r == RoleAdministrator || r == RoleEmployee
}

// Account is the domain model for a credential-bearing identity.
// Member accounts carry a MemberID reference; the contact and name fields
// are populated from the member record at registration time so that
// response mapping never needs a second lookup.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	Enabled      bool
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	MemberID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
