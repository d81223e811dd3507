package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// OTPHook receives the plaintext passcode before it is hashed. It is the
// only point where the plaintext leaves the service; an error aborts the
// request and nothing is persisted.
type OTPHook func(ctx context.Context, code string, account *domain.Account) error

// ResendLimiter throttles repeated passcode requests per account.
type ResendLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
}

// PasswordResetService issues hashed one-time passcodes, verifies
// submissions and performs the atomic password change. At most one
// passcode is active per account; a new request replaces the prior one.
type PasswordResetService struct {
	accounts   repository.AccountRepository
	passcodes  repository.PasscodeRepository
	hasher     auth.Hasher
	codes      auth.CodeGenerator
	tx         Transactor
	limiter    ResendLimiter
	dispatcher events.Dispatcher
	codeLength int
	logger     *zap.Logger
	now        func() time.Time
}

// NewPasswordResetService builds the service. limiter and dispatcher may
// be nil; codeLength defaults to 6.
func NewPasswordResetService(accounts repository.AccountRepository, passcodes repository.PasscodeRepository, hasher auth.Hasher, codes auth.CodeGenerator, tx Transactor, limiter ResendLimiter, dispatcher events.Dispatcher, codeLength int, logger *zap.Logger) *PasswordResetService {
	if codeLength <= 0 {
		codeLength = 6
	}
	return &PasswordResetService{
		accounts:   accounts,
		passcodes:  passcodes,
		hasher:     hasher,
		codes:      codes,
		tx:         tx,
		limiter:    limiter,
		dispatcher: dispatcher,
		codeLength: codeLength,
		logger:     logger,
		now:        time.Now,
	}
}

// RequestReset generates a passcode for the account, hands the plaintext
// to hook for delivery, then stores only the hash. Nothing is persisted
// when the hook fails, so an undeliverable passcode leaves no state.
func (s *PasswordResetService) RequestReset(ctx context.Context, username string, hook OTPHook) error {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, username)
		if err != nil {
			return err
		}
		if !allowed {
			return apperrors.NewTooManyRequests("a passcode was recently requested for this account")
		}
	}

	code, err := s.codes.Generate(s.codeLength)
	if err != nil {
		return err
	}

	if hook != nil {
		if err := hook(ctx, code, account); err != nil {
			return err
		}
	}

	hash, err := s.hasher.Hash(code)
	if err != nil {
		return err
	}

	if err := s.passcodes.Upsert(ctx, &domain.OneTimePasscode{
		AccountID: account.ID,
		CodeHash:  hash,
		CreatedAt: s.now(),
	}); err != nil {
		return err
	}

	s.logger.Info("issued one-time passcode", zap.String("username", username))
	return nil
}

// VerifyCode checks the submitted code against the stored hash without
// consuming it.
func (s *PasswordResetService) VerifyCode(ctx context.Context, username, code string) error {
	_, passcode, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(code, passcode.CodeHash) {
		return apperrors.NewForbidden("one-time passcode is incorrect")
	}
	return nil
}

// ResetPassword re-verifies the code and changes the password. The hash
// update and passcode deletion share one transaction, so an issued code
// can complete at most one reset.
func (s *PasswordResetService) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	account, passcode, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}

	// the passcode must belong to the resolved account
	if passcode.AccountID != account.ID {
		return apperrors.NewUnprocessable("cannot use this passcode for this action", nil)
	}

	if !s.hasher.Verify(code, passcode.CodeHash) {
		return apperrors.NewForbidden("one-time passcode is incorrect")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.accounts.WithTx(tx).UpdatePasswordHash(ctx, account.ID, hash); err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewNotFound("user", nil)
			}
			return err
		}
		deleted, err := s.passcodes.WithTx(tx).Delete(ctx, account.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperrors.NewNotFound("one-time passcode", nil)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("password reset completed", zap.String("username", username))

	s.publishEvent(ctx, events.Event{
		Type:      events.EventPasswordChanged,
		AccountID: account.ID,
		Payload: events.PasswordChangedPayload{
			Username: account.Username,
			Email:    account.Email,
		},
	})
	return nil
}

func (s *PasswordResetService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *PasswordResetService) resolve(ctx context.Context, username string) (*domain.Account, *domain.OneTimePasscode, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("user", nil)
		}
		return nil, nil, err
	}

	passcode, err := s.passcodes.GetByAccountID(ctx, account.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("one-time passcode", nil)
		}
		return nil, nil, err
	}
	return account, passcode, nil
}
