package access

import (
	"testing"

	"github.com/gallerynet/settlement-engine/pkg/settle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewControllerSeedsAdmins(t *testing.T) {
	c := NewController("alice", "bob")

	assert.True(t, c.HasRole(RoleAdmin, "alice"))
	assert.True(t, c.HasRole(RoleAdmin, "bob"))
	assert.False(t, c.HasRole(RoleAdmin, "carol"))
}

func TestGrantRole(t *testing.T) {
	c := NewController("alice")

	require.NoError(t, c.GrantRole("alice", RoleLister, "carol"))
	assert.True(t, c.HasRole(RoleLister, "carol"))
	assert.False(t, c.HasRole(RoleAdmin, "carol"))
}

func TestGrantRoleRequiresAdmin(t *testing.T) {
	c := NewController("alice")

	err := c.GrantRole("mallory", RoleLister, "mallory")
	assert.ErrorIs(t, err, settle.ErrUnauthorized)
	assert.False(t, c.HasRole(RoleLister, "mallory"))
}

func TestGrantRoleRejectsEmptyPrincipal(t *testing.T) {
	c := NewController("alice")

	assert.ErrorIs(t, c.GrantRole("alice", RoleLister, ""), settle.ErrInvalidParameter)
}

func TestRevokeRole(t *testing.T) {
	c := NewController("alice")
	require.NoError(t, c.GrantRole("alice", RoleTransferAuthority, "engine"))

	require.NoError(t, c.RevokeRole("alice", RoleTransferAuthority, "engine"))
	assert.False(t, c.HasRole(RoleTransferAuthority, "engine"))
}

func TestRevokeRoleRequiresAdmin(t *testing.T) {
	c := NewController("alice")
	require.NoError(t, c.GrantRole("alice", RoleLister, "carol"))

	assert.ErrorIs(t, c.RevokeRole("carol", RoleLister, "carol"), settle.ErrUnauthorized)
	assert.True(t, c.HasRole(RoleLister, "carol"))
}

func TestGrantOnInit(t *testing.T) {
	c := NewController()

	c.GrantOnInit(RoleTransferAuthority, "engine")
	assert.True(t, c.HasRole(RoleTransferAuthority, "engine"))
}

func TestRequireRole(t *testing.T) {
	c := NewController("alice")

	assert.NoError(t, c.RequireRole(RoleAdmin, "alice"))
	assert.ErrorIs(t, c.RequireRole(RoleAdmin, "bob"), settle.ErrUnauthorized)
}
