package registration

import (
	"context"
	"fmt"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/domain"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// Dispatcher routes a registration request to the handler for its
// variant. The handler map is built once at construction and is
// read-only afterwards, so concurrent dispatch needs no locking.
type Dispatcher struct {
	handlers map[domain.RegistrationKind]Handler
}

// NewDispatcher builds the dispatcher and verifies every registration
// variant has exactly one handler. A missing or duplicate handler is a
// wiring defect; callers should treat the returned error as fatal.
func NewDispatcher(handlers ...Handler) (*Dispatcher, error) {
	m := make(map[domain.RegistrationKind]Handler, len(handlers))
	for _, h := range handlers {
		if _, dup := m[h.Kind()]; dup {
			return nil, fmt.Errorf("duplicate registration handler for kind %s", h.Kind())
		}
		m[h.Kind()] = h
	}
	for _, kind := range domain.RegistrationKinds() {
		if _, ok := m[kind]; !ok {
			return nil, fmt.Errorf("no registration handler for kind %s", kind)
		}
	}
	return &Dispatcher{handlers: m}, nil
}

// Register resolves the handler for the request variant and returns the
// materialized account together with its response mapping.
func (d *Dispatcher) Register(ctx context.Context, reg domain.Registration) (*domain.Account, dto.UserResponse, error) {
	handler, ok := d.handlers[reg.Kind()]
	if !ok {
		return nil, dto.UserResponse{}, apperrors.NewInternalError(fmt.Errorf("no registration handler for kind %s", reg.Kind()))
	}

	account, err := handler.Register(ctx, reg)
	if err != nil {
		return nil, dto.UserResponse{}, err
	}
	return account, handler.ToResponse(account), nil
}
