package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
)

func newNotificationFixture(emailOK, smsOK bool) (*NotificationService, *recordingEmailSender, *recordingSMSSender) {
	email := &recordingEmailSender{configured: emailOK}
	sms := &recordingSMSSender{configured: smsOK}
	svc := NewNotificationService(nil, email, sms, zap.NewNop(), config.NotificationConfig{})
	return svc, email, sms
}

func TestDeliverPasscodeOverSMS(t *testing.T) {
	svc, email, sms := newNotificationFixture(true, true)
	account := &domain.Account{Phone: "555-0100", Email: "p@example.com"}

	err := svc.DeliverPasscode(context.Background(), account, "123456", domain.ContactMethodSMS)
	require.NoError(t, err)
	require.Equal(t, []string{"555-0100"}, sms.phones)
	require.Equal(t, []string{"Here is your password reset one-time passcode: 123456"}, sms.messages)
	require.Empty(t, email.to)
}

func TestDeliverPasscodeOverEmail(t *testing.T) {
	svc, email, sms := newNotificationFixture(true, true)
	account := &domain.Account{Phone: "555-0100", Email: "q@example.com"}

	err := svc.DeliverPasscode(context.Background(), account, "654321", domain.ContactMethodEmail)
	require.NoError(t, err)
	require.Equal(t, []string{"q@example.com"}, email.to)
	require.Empty(t, sms.phones)
}

func TestDeliverPasscodeSMSWithoutPhone(t *testing.T) {
	svc, _, _ := newNotificationFixture(true, true)
	account := &domain.Account{Email: "r@example.com"}

	err := svc.DeliverPasscode(context.Background(), account, "123456", domain.ContactMethodSMS)
	requireDomainCode(t, err, "UNPROCESSABLE")
}

func TestDeliverPasscodeDefaultPrefersSMS(t *testing.T) {
	svc, email, sms := newNotificationFixture(true, true)
	account := &domain.Account{Phone: "555-0100", Email: "s@example.com"}

	require.NoError(t, svc.DeliverPasscode(context.Background(), account, "123456", ""))
	require.Len(t, sms.phones, 1)
	require.Empty(t, email.to)
}

func TestDeliverPasscodeDefaultFallsBackToEmail(t *testing.T) {
	svc, email, _ := newNotificationFixture(true, false)
	account := &domain.Account{Phone: "555-0100", Email: "t@example.com"}

	require.NoError(t, svc.DeliverPasscode(context.Background(), account, "123456", ""))
	require.Equal(t, []string{"t@example.com"}, email.to)
}

func TestDeliverPasscodeNoDeliverableContact(t *testing.T) {
	svc, _, _ := newNotificationFixture(false, false)
	account := &domain.Account{Phone: "555-0100", Email: "u@example.com"}

	err := svc.DeliverPasscode(context.Background(), account, "123456", "")
	requireDomainCode(t, err, "UNPROCESSABLE")
}
