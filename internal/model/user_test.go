package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleLevelOrdering(t *testing.T) {
	require.Equal(t, 1, RoleLevel(RoleMember))
	require.Equal(t, 2, RoleLevel(RoleLeader))
	require.Equal(t, 3, RoleLevel(RoleFullEditor))
	require.Equal(t, 4, RoleLevel(RoleAdmin))
	require.Equal(t, 0, RoleLevel("intern"))
	require.Equal(t, 0, RoleLevel(""))
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required string
		want     bool
	}{
		{"member meets member", RoleMember, RoleMember, true},
		{"member below leader", RoleMember, RoleLeader, false},
		{"leader meets leader", RoleLeader, RoleLeader, true},
		{"leader below admin", RoleLeader, RoleAdmin, false},
		{"full editor above leader", RoleFullEditor, RoleLeader, true},
		{"admin meets everything", RoleAdmin, RoleFullEditor, true},
		{"unknown role denied", "guest", RoleMember, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			require.Equal(t, tt.want, u.HasPermission(tt.required))
		})
	}
}
