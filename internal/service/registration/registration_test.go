package registration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util/errorutil"
)

type fakeMemberRepo struct {
	members map[string]*domain.Member
}

func (r *fakeMemberRepo) GetByMembershipID(_ context.Context, membershipID string) (*domain.Member, error) {
	member, ok := r.members[membershipID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return member, nil
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

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
}

func seedMember(membershipID, lastFour string) *fakeMemberRepo {
	return &fakeMemberRepo{members: map[string]*domain.Member{
		membershipID: {
			ID:            uuid.NewString(),
			MembershipID:  membershipID,
			FirstName:     "Pat",
			LastName:      "Quill",
			Email:         "pat.quill@example.com",
			Phone:         "555-0101",
			LastFourOfSSN: lastFour,
		},
	}}
}

func newMemberFixture(t *testing.T, members *fakeMemberRepo) (*MemberHandler, *fakeAccountRepo) {
	t.Helper()
	accounts := newFakeAccountRepo()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	return NewMemberHandler(members, accounts, hasher, zap.NewNop()), accounts
}

func TestMemberRegistration(t *testing.T) {
	handler, accounts := newMemberFixture(t, seedMember("M-1001", "6789"))

	account, err := handler.Register(context.Background(), domain.MemberRegistration{
		Username:      "pquill",
		Password:      "s3cret",
		MembershipID:  "M-1001",
		LastFourOfSSN: "6789",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, account.Role)
	require.False(t, account.Enabled)
	require.Equal(t, "Pat", account.FirstName)
	require.Equal(t, "pat.quill@example.com", account.Email)
	require.NotNil(t, account.MemberID)

	// only the hash is stored
	require.NotEqual(t, "s3cret", account.PasswordHash)
	require.True(t, auth.NewBcryptHasher(bcrypt.MinCost).Verify("s3cret", account.PasswordHash))
	require.Len(t, accounts.accounts, 1)

	resp := handler.ToResponse(account)
	require.Equal(t, "pquill", resp.Username)
	require.Empty(t, resp.Phone)
}

func TestMemberRegistrationUnknownMembership(t *testing.T) {
	handler, accounts := newMemberFixture(t, seedMember("M-1001", "6789"))

	_, err := handler.Register(context.Background(), domain.MemberRegistration{
		Username:      "pquill",
		Password:      "s3cret",
		MembershipID:  "M-9999",
		LastFourOfSSN: "6789",
	})
	requireDomainCode(t, err, "NOT_FOUND")
	require.Empty(t, accounts.accounts)
}

func TestMemberRegistrationVerificationMismatch(t *testing.T) {
	handler, accounts := newMemberFixture(t, seedMember("M-1001", "6789"))

	_, err := handler.Register(context.Background(), domain.MemberRegistration{
		Username:      "pquill",
		Password:      "s3cret",
		MembershipID:  "M-1001",
		LastFourOfSSN: "0000",
	})
	requireDomainCode(t, err, "NOT_FOUND")
	require.Empty(t, accounts.accounts)
}

func TestMemberRegistrationDuplicateForMember(t *testing.T) {
	handler, _ := newMemberFixture(t, seedMember("M-1001", "6789"))

	first := domain.MemberRegistration{
		Username:      "pquill",
		Password:      "s3cret",
		MembershipID:  "M-1001",
		LastFourOfSSN: "6789",
	}
	_, err := handler.Register(context.Background(), first)
	require.NoError(t, err)

	second := first
	second.Username = "pquill2"
	_, err = handler.Register(context.Background(), second)
	requireDomainCode(t, err, "CONFLICT")
}

func TestAdminRegistration(t *testing.T) {
	accounts := newFakeAccountRepo()
	handler := NewAdminHandler(accounts, auth.NewBcryptHasher(bcrypt.MinCost), zap.NewNop())

	account, err := handler.Register(context.Background(), domain.AdminRegistration{
		Username:  "root",
		Password:  "s3cret",
		FirstName: "Rita",
		LastName:  "Singh",
		Email:     "rita@example.com",
		Phone:     "555-0102",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdministrator, account.Role)
	require.False(t, account.Enabled)
	require.Nil(t, account.MemberID)

	resp := handler.ToResponse(account)
	require.Equal(t, "555-0102", resp.Phone)
}

func TestDispatcherRoutesByKind(t *testing.T) {
	accounts := newFakeAccountRepo()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	dispatcher, err := NewDispatcher(
		NewMemberHandler(seedMember("M-1001", "6789"), accounts, hasher, zap.NewNop()),
		NewAdminHandler(accounts, hasher, zap.NewNop()),
	)
	require.NoError(t, err)

	account, resp, err := dispatcher.Register(context.Background(), domain.AdminRegistration{
		Username: "root", Password: "s3cret", FirstName: "Rita", LastName: "Singh", Email: "rita@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdministrator, account.Role)
	require.Equal(t, "root", resp.Username)

	account, _, err = dispatcher.Register(context.Background(), domain.MemberRegistration{
		Username: "pquill", Password: "s3cret", MembershipID: "M-1001", LastFourOfSSN: "6789",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, account.Role)
}

func TestDispatcherRejectsIncompleteWiring(t *testing.T) {
	accounts := newFakeAccountRepo()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	admin := NewAdminHandler(accounts, hasher, zap.NewNop())

	_, err := NewDispatcher(admin)
	require.Error(t, err)

	_, err = NewDispatcher(admin, admin)
	require.Error(t, err)
}
