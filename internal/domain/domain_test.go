package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfirmationTokenIsExpired(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	token := ConfirmationToken{
		CreatedAt: created,
		ExpiresAt: created.Add(24 * time.Hour),
	}

	require.False(t, token.IsExpired(created))
	require.False(t, token.IsExpired(created.Add(24*time.Hour)))
	require.True(t, token.IsExpired(created.Add(24*time.Hour+time.Second)))
}

func TestRoleElevated(t *testing.T) {
	require.False(t, RoleMember.Elevated())
	require.True(t, RoleEmployee.Elevated())
	require.True(t, RoleAdministrator.Elevated())
	require.False(t, Role("OTHER").Elevated())
}

func TestRegistrationKinds(t *testing.T) {
	require.Equal(t, RegistrationKindMember, MemberRegistration{}.Kind())
	require.Equal(t, RegistrationKindAdmin, AdminRegistration{}.Kind())
	require.ElementsMatch(t, []RegistrationKind{RegistrationKindMember, RegistrationKindAdmin}, RegistrationKinds())
}
