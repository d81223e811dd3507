package registration

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// MemberHandler registers accounts for existing members. The referenced
// member record must exist and its verification field must match; a
// mismatch is reported as not found so the response does not reveal
// whether the membership id exists.
type MemberHandler struct {
	members  repository.MemberRepository
	accounts repository.AccountRepository
	hasher   auth.Hasher
	logger   *zap.Logger
}

// NewMemberHandler constructs the handler.
func NewMemberHandler(members repository.MemberRepository, accounts repository.AccountRepository, hasher auth.Hasher, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{members: members, accounts: accounts, hasher: hasher, logger: logger}
}

func (h *MemberHandler) Kind() domain.RegistrationKind {
	return domain.RegistrationKindMember
}

func (h *MemberHandler) Register(ctx context.Context, reg domain.Registration) (*domain.Account, error) {
	req, ok := reg.(domain.MemberRegistration)
	if !ok {
		return nil, apperrors.NewInternalError(fmt.Errorf("member handler received %T", reg))
	}

	h.logger.Info("registering member account",
		zap.String("username", req.Username),
		zap.String("membership_id", req.MembershipID))

	member, err := h.members.GetByMembershipID(ctx, req.MembershipID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("member", map[string]any{"membership_id": req.MembershipID})
		}
		return nil, err
	}
	if member.LastFourOfSSN != req.LastFourOfSSN {
		return nil, apperrors.NewNotFound("member", map[string]any{"membership_id": req.MembershipID})
	}

	exists, err := h.accounts.ExistsForMember(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("an account already exists for this member", map[string]any{"membership_id": req.MembershipID})
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		Enabled:      false,
		FirstName:    member.FirstName,
		LastName:     member.LastName,
		Email:        member.Email,
		Phone:        member.Phone,
		MemberID:     &member.ID,
	}
	if err := h.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (h *MemberHandler) ToResponse(account *domain.Account) dto.UserResponse {
	return dto.UserResponse{
		ID:        account.ID,
		Username:  account.Username,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		Role:      account.Role,
		Enabled:   account.Enabled,
	}
}
