package service

import "github.com/spec-kit/account-service/internal/domain"

// AuthorizationService decides whether an authenticated caller may view
// an account resource. The decision is pure: it is evaluated after the
// resource has been fetched, and a denial must not leak the resource.
type AuthorizationService struct{}

// NewAuthorizationService constructs the service.
func NewAuthorizationService() AuthorizationService {
	return AuthorizationService{}
}

// CanAccess grants access when the caller owns the resource or holds an
// elevated role. No other condition grants access.
func (AuthorizationService) CanAccess(ownerUsername, callerUsername string, callerRole domain.Role) bool {
	if callerUsername == ownerUsername {
		return true
	}
	return callerRole.Elevated()
}
