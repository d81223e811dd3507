package registration

import (
	"context"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/domain"
)

// Handler validates and materializes an account from one registration
// variant. Implementations must never persist the plaintext secret and
// must propagate collaborator failures unchanged.
type Handler interface {
	Kind() domain.RegistrationKind
	Register(ctx context.Context, reg domain.Registration) (*domain.Account, error)
	ToResponse(account *domain.Account) dto.UserResponse
}
