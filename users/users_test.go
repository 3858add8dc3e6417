package users_test

import (
	"testing"

	"github.com/jrsteele09/go-oauth-login/users"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	t.Run("valid password", func(t *testing.T) {
		err := users.ValidatePasswordStrength("Password123")
		require.NoError(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		err := users.ValidatePasswordStrength("Pass1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("missing uppercase", func(t *testing.T) {
		err := users.ValidatePasswordStrength("password123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "uppercase")
	})

	t.Run("missing lowercase", func(t *testing.T) {
		err := users.ValidatePasswordStrength("PASSWORD123")
		require.Error(t, err)
		require.Contains(t, err.Error(), "lowercase")
	})

	t.Run("missing number", func(t *testing.T) {
		err := users.ValidatePasswordStrength("PasswordOnly")
		require.Error(t, err)
		require.Contains(t, err.Error(), "number")
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := users.HashPassword("Password123")
	require.NoError(t, err)
	require.NotEqual(t, "Password123", hash)

	require.True(t, users.CheckPasswordHash("Password123", hash))
	require.False(t, users.CheckPasswordHash("WrongPassword1", hash))

	user := &users.User{HashedPassword: hash}
	require.True(t, user.CheckPasswordHash("Password123"))
	require.False(t, user.CheckPasswordHash("WrongPassword1"))
}
