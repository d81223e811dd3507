package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/domain"
)

func TestCanAccess(t *testing.T) {
	authz := NewAuthorizationService()

	cases := []struct {
		name       string
		owner      string
		caller     string
		callerRole domain.Role
		want       bool
	}{
		{"owner views own resource", "alice", "alice", domain.RoleMember, true},
		{"other member denied", "alice", "bob", domain.RoleMember, false},
		{"employee views any resource", "alice", "bob", domain.RoleEmployee, true},
		{"administrator views any resource", "alice", "bob", domain.RoleAdministrator, true},
		{"elevated caller viewing own resource", "alice", "alice", domain.RoleAdministrator, true},
		{"unknown role denied", "alice", "bob", domain.Role("INTERN"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, authz.CanAccess(tc.owner, tc.caller, tc.callerRole))
		})
	}
}
