package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
}

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *fakeAccountRepo) WithTx(pgx.Tx) repository.AccountRepository { return r }

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	for _, existing := range r.accounts {
		if existing.Username == account.Username {
			return apperrors.NewConflict("account already exists", nil)
		}
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (r *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) ExistsForMember(_ context.Context, memberID string) (bool, error) {
	for _, account := range r.accounts {
		if account.MemberID != nil && *account.MemberID == memberID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccountRepo) Enable(_ context.Context, id string) error {
	account, ok := r.accounts[id]
	if !ok || account.Enabled {
		return pgx.ErrNoRows
	}
	account.Enabled = true
	return nil
}

func (r *fakeAccountRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.PasswordHash = hash
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*domain.ConfirmationToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*domain.ConfirmationToken)}
}

func (r *fakeTokenRepo) WithTx(pgx.Tx) repository.ConfirmationTokenRepository { return r }

func (r *fakeTokenRepo) Create(_ context.Context, token *domain.ConfirmationToken) error {
	r.tokens[token.ID] = token
	return nil
}

func (r *fakeTokenRepo) GetByID(_ context.Context, id string) (*domain.ConfirmationToken, error) {
	token, ok := r.tokens[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return token, nil
}

func (r *fakeTokenRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.tokens[id]; !ok {
		return false, nil
	}
	delete(r.tokens, id)
	return true, nil
}

type fakePasscodeRepo struct {
	passcodes map[string]*domain.OneTimePasscode
}

func newFakePasscodeRepo() *fakePasscodeRepo {
	return &fakePasscodeRepo{passcodes: make(map[string]*domain.OneTimePasscode)}
}

func (r *fakePasscodeRepo) WithTx(pgx.Tx) repository.PasscodeRepository { return r }

func (r *fakePasscodeRepo) Upsert(_ context.Context, passcode *domain.OneTimePasscode) error {
	r.passcodes[passcode.AccountID] = passcode
	return nil
}

func (r *fakePasscodeRepo) GetByAccountID(_ context.Context, accountID string) (*domain.OneTimePasscode, error) {
	passcode, ok := r.passcodes[accountID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return passcode, nil
}

func (r *fakePasscodeRepo) Delete(_ context.Context, accountID string) (bool, error) {
	if _, ok := r.passcodes[accountID]; !ok {
		return false, nil
	}
	delete(r.passcodes, accountID)
	return true, nil
}

// fakeTransactor runs the function directly; the fake repositories
// ignore the transaction handle.
type fakeTransactor struct{}

func (fakeTransactor) WithinTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fixedCodeGenerator struct {
	code string
}

func (g fixedCodeGenerator) Generate(int) (string, error) { return g.code, nil }

type stubLimiter struct {
	allow bool
}

func (l stubLimiter) Allow(context.Context, string) (bool, error) { return l.allow, nil }

type recordingEmailSender struct {
	configured bool
	to         []string
	subjects   []string
	bodies     []string
}

func (s *recordingEmailSender) Configured() bool { return s.configured }

func (s *recordingEmailSender) Send(_ context.Context, to, subject, text string) error {
	s.to = append(s.to, to)
	s.subjects = append(s.subjects, subject)
	s.bodies = append(s.bodies, text)
	return nil
}

type recordingSMSSender struct {
	configured bool
	phones     []string
	messages   []string
}

func (s *recordingSMSSender) Configured() bool { return s.configured }

func (s *recordingSMSSender) Send(_ context.Context, phone, message string) error {
	s.phones = append(s.phones, phone)
	s.messages = append(s.messages, message)
	return nil
}
