package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/account-service/internal/domain"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.True(t, hasher.Verify("s3cret", hash))
	require.False(t, hasher.Verify("wrong", hash))
}

func TestNewBcryptHasherClampsInvalidCost(t *testing.T) {
	require.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	require.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)
	require.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).Cost)
}

func TestRandomCodeGeneratorFormat(t *testing.T) {
	gen := RandomCodeGenerator{}

	for _, length := range []int{4, 6, 8} {
		code, err := gen.Generate(length)
		require.NoError(t, err)
		require.Len(t, code, length)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "code %q contains non-digit %q", code, r)
		}
	}

	// non-positive length falls back to six digits
	code, err := gen.Generate(0)
	require.NoError(t, err)
	require.Len(t, code, 6)
}

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("acc-1", "alice", domain.RoleEmployee)
	require.NoError(t, err)
	require.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "acc-1", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, domain.RoleEmployee, claims.Role)
}

func TestTokenManagerRejectsForeignSignature(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken("acc-1", "alice", domain.RoleMember)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(token)
	require.Error(t, err)
}
