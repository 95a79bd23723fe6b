package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("counter1", "secret-pass", RoleVendor)
		require.NoError(t, err)

		assert.True(t, user.IsActive)
		assert.NotEqual(t, "secret-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret-pass"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := NewUser("counter1", "short", RoleVendor)
		assert.Error(t, err)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, err := NewUser("counter1", "secret-pass", Role("owner"))
		assert.Error(t, err)
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewUser("  ", "secret-pass", RoleAdmin)
		assert.Error(t, err)
	})
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewUser("admin1", "original-pass", RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("replacement-pass"))
	assert.True(t, user.VerifyPassword("replacement-pass"))
	assert.False(t, user.VerifyPassword("original-pass"))
}

func TestRole_AtLeastAdmin(t *testing.T) {
	assert.False(t, RoleVendor.AtLeastAdmin())
	assert.True(t, RoleAdmin.AtLeastAdmin())
	assert.True(t, RoleSuperAdmin.AtLeastAdmin())
}
