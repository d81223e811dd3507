package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

// EmailSender delivers a plain-text email to one recipient.
type EmailSender interface {
	Configured() bool
	Send(ctx context.Context, to, subject, text string) error
}

// SMSSender delivers a text message to one phone number.
type SMSSender interface {
	Configured() bool
	Send(ctx context.Context, phone, message string) error
}

// NotificationService delivers account lifecycle messages. Event-driven
// notifications (confirmation email, password-change notice) are
// best-effort; passcode delivery is synchronous and its failure surfaces
// to the caller.
type NotificationService struct {
	dispatcher events.Dispatcher
	email      EmailSender
	sms        SMSSender
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, email EmailSender, sms SMSSender, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		email:      email,
		sms:        sms,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to account lifecycle events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccountRegistered, n.handleAccountRegistered)
	n.dispatcher.Subscribe(events.EventAccountConfirmed, n.handleAccountConfirmed)
	n.dispatcher.Subscribe(events.EventPasswordChanged, n.handlePasswordChanged)
}

// DeliverPasscode sends the plaintext one-time passcode over the
// requested contact method. A missing deliverable address is an
// unprocessable request, never silently ignored.
func (n *NotificationService) DeliverPasscode(ctx context.Context, account *domain.Account, code string, method domain.ContactMethod) error {
	message := fmt.Sprintf("Here is your password reset one-time passcode: %s", code)

	switch method {
	case domain.ContactMethodSMS:
		if account.Phone == "" || !n.sms.Configured() {
			return apperrors.NewUnprocessable("no phone number available to deliver the passcode", nil)
		}
		return n.sms.Send(ctx, account.Phone, message)
	case domain.ContactMethodEmail:
		if account.Email == "" || !n.email.Configured() {
			return apperrors.NewUnprocessable("no email address available to deliver the passcode", nil)
		}
		return n.email.Send(ctx, account.Email, "Password reset passcode", message)
	default:
		// no method requested: prefer SMS, fall back to email
		if account.Phone != "" && n.sms.Configured() {
			return n.sms.Send(ctx, account.Phone, message)
		}
		if account.Email != "" && n.email.Configured() {
			return n.email.Send(ctx, account.Email, "Password reset passcode", message)
		}
		return apperrors.NewUnprocessable("no deliverable contact address for this account", nil)
	}
}

func (n *NotificationService) handleAccountRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccountRegisteredPayload)
	if !ok {
		return nil
	}
	n.logger.Info("AccountRegistered", zap.String("account_id", event.AccountID), zap.String("username", payload.Username))

	if payload.Email == "" || !n.email.Configured() {
		return nil
	}
	body := fmt.Sprintf(
		"Welcome, %s. Confirm your registration with this token before %s: %s",
		payload.Username,
		payload.TokenExpiresAt.Format("Jan 2, 2006 15:04 MST"),
		payload.ConfirmationToken,
	)
	if err := n.email.Send(ctx, payload.Email, "Confirm your registration", body); err != nil {
		n.logger.Warn("failed to send confirmation email", zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleAccountConfirmed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccountConfirmedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("AccountConfirmed", zap.String("account_id", event.AccountID), zap.String("username", payload.Username))

	if payload.Email == "" || !n.email.Configured() {
		return nil
	}
	if err := n.email.Send(ctx, payload.Email, "Account activated", "Your account is now active."); err != nil {
		n.logger.Warn("failed to send activation email", zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handlePasswordChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("PasswordChanged", zap.String("account_id", event.AccountID), zap.String("username", payload.Username))

	if payload.Email == "" || !n.email.Configured() {
		return nil
	}
	if err := n.email.Send(ctx, payload.Email, "Password changed", "Your password was just changed. If this was not you, contact support."); err != nil {
		n.logger.Warn("failed to send password change email", zap.Error(err))
	}
	return nil
}
