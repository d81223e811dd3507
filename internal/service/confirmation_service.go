package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// ConfirmationService issues and consumes the expiring tokens that gate
// account activation. A token moves Created -> Confirmed or Created ->
// Expired; both terminal states delete it.
type ConfirmationService struct {
	tokens     repository.ConfirmationTokenRepository
	accounts   repository.AccountRepository
	tx         Transactor
	dispatcher events.Dispatcher
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewConfirmationService builds the service. ttl defaults to 24 hours;
// dispatcher may be nil when no notifications are wired.
func NewConfirmationService(tokens repository.ConfirmationTokenRepository, accounts repository.AccountRepository, tx Transactor, dispatcher events.Dispatcher, ttl time.Duration, logger *zap.Logger) *ConfirmationService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ConfirmationService{
		tokens:     tokens,
		accounts:   accounts,
		tx:         tx,
		dispatcher: dispatcher,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// Issue creates a confirmation token for a not-yet-enabled account.
func (s *ConfirmationService) Issue(ctx context.Context, account *domain.Account) (*domain.ConfirmationToken, error) {
	if account.Enabled {
		return nil, apperrors.NewUnprocessable("cannot issue a confirmation token for an enabled account", nil)
	}

	now := s.now()
	token := &domain.ConfirmationToken{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, err
	}

	s.logger.Info("issued confirmation token",
		zap.String("account_id", account.ID),
		zap.Time("expires_at", token.ExpiresAt))

	s.publishEvent(ctx, events.Event{
		Type:      events.EventAccountRegistered,
		AccountID: account.ID,
		Payload: events.AccountRegisteredPayload{
			Username:          account.Username,
			Email:             account.Email,
			ConfirmationToken: token.ID,
			TokenExpiresAt:    token.ExpiresAt,
		},
	})
	return token, nil
}

// Confirm consumes the token and enables the owning account. An expired
// token is deleted and reported as gone; enabling the account and
// deleting the token happen in one transaction, so two concurrent
// confirmations resolve to one success and one not-found.
func (s *ConfirmationService) Confirm(ctx context.Context, tokenID string) (*domain.ConfirmationResult, error) {
	token, err := s.Lookup(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, token.AccountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, err
	}

	now := s.now()
	if token.IsExpired(now) {
		if _, err := s.tokens.Delete(ctx, token.ID); err != nil {
			return nil, err
		}
		return nil, apperrors.NewGone("confirmation token has expired")
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		deleted, err := s.tokens.WithTx(tx).Delete(ctx, token.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperrors.NewNotFound("confirmation token", nil)
		}
		if err := s.accounts.WithTx(tx).Enable(ctx, token.AccountID); err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnprocessable("account is already enabled", nil)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account confirmed", zap.String("username", account.Username))

	s.publishEvent(ctx, events.Event{
		Type:      events.EventAccountConfirmed,
		AccountID: account.ID,
		Payload: events.AccountConfirmedPayload{
			Username:    account.Username,
			Email:       account.Email,
			ConfirmedAt: now,
		},
	})
	return &domain.ConfirmationResult{
		Username:    account.Username,
		ConfirmedAt: now,
		Enabled:     true,
	}, nil
}

func (s *ConfirmationService) publishEvent(ctx context.Context, event events.Event) {
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

// Lookup parses the token id and fetches the token.
func (s *ConfirmationService) Lookup(ctx context.Context, tokenID string) (*domain.ConfirmationToken, error) {
	if _, err := uuid.Parse(tokenID); err != nil {
		return nil, apperrors.NewNotFound("confirmation token", nil)
	}

	token, err := s.tokens.GetByID(ctx, tokenID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("confirmation token", nil)
		}
		return nil, err
	}
	return token, nil
}
