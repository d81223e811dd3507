package registration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// AdminHandler registers administrator accounts directly from the
// request fields.
type AdminHandler struct {
	accounts repository.AccountRepository
	hasher   auth.Hasher
	logger   *zap.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(accounts repository.AccountRepository, hasher auth.Hasher, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{accounts: accounts, hasher: hasher, logger: logger}
}

func (h *AdminHandler) Kind() domain.RegistrationKind {
	return domain.RegistrationKindAdmin
}

func (h *AdminHandler) Register(ctx context.Context, reg domain.Registration) (*domain.Account, error) {
	req, ok := reg.(domain.AdminRegistration)
	if !ok {
		return nil, apperrors.NewInternalError(fmt.Errorf("admin handler received %T", reg))
	}

	h.logger.Info("registering administrator account", zap.String("username", req.Username))

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.RoleAdministrator,
		Enabled:      false,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	if err := h.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (h *AdminHandler) ToResponse(account *domain.Account) dto.UserResponse {
	return dto.UserResponse{
		ID:        account.ID,
		Username:  account.Username,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Phone:     account.Phone,
		Role:      account.Role,
		Enabled:   account.Enabled,
	}
}
