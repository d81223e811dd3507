package domain

import "time"

// Member models a membership record owned by the membership collaborator.
type Member struct {
	ID            string
	MembershipID  string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	LastFourOfSSN string
	CreatedAt     time.Time
}
