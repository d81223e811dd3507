package domain

// RegistrationKind identifies one member of the closed registration variant set.
type RegistrationKind string

const (
	RegistrationKindMember RegistrationKind = "MEMBER"
	RegistrationKindAdmin  RegistrationKind = "ADMIN"
)

// RegistrationKinds returns every variant a dispatcher must cover.
func RegistrationKinds() []RegistrationKind {
	return []RegistrationKind{RegistrationKindMember, RegistrationKindAdmin}
}

// Registration is the closed set of registration request variants.
// Each variant is immutable once constructed.
type Registration interface {
	Kind() RegistrationKind
}

// MemberRegistration registers an account for an existing member.
type MemberRegistration struct {
	Username      string
	Password      string
	MembershipID  string
	LastFourOfSSN string
}

func (MemberRegistration) Kind() RegistrationKind { return RegistrationKindMember }

// AdminRegistration registers an administrator account.
type AdminRegistration struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (AdminRegistration) Kind() RegistrationKind { return RegistrationKindAdmin }
