package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/app/storetest"
	"github.com/shashiranjanraj/skirmish/pkg/auth"
)

func newAuthService(t *testing.T) (*services.AuthService, *storetest.Users, *auth.Tokens) {
	t.Helper()
	users := storetest.NewUsers()
	tokens := auth.NewTokens("test-secret", time.Hour)
	return services.NewAuthService(users, tokens, 4), users, tokens
}

func TestSignup_IssuesVerifiableToken(t *testing.T) {
	svc, _, tokens := newAuthService(t)

	token, err := svc.Signup(context.Background(), "bilwin@example.com", "hunter2", nil)
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "bilwin@example.com", claims.Email)
	assert.Equal(t, []string{"user"}, claims.Roles)
	assert.NotEmpty(t, claims.UserID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), "bilwin@example.com", "hunter2", nil)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "bilwin@example.com", "other", nil)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestSignup_ExplicitRoles(t *testing.T) {
	svc, _, tokens := newAuthService(t)

	token, err := svc.Signup(context.Background(), "root@example.com", "hunter2", []string{"user", "admin"})
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole("admin"))
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthService(t)

	_, err := svc.Signup(context.Background(), "monde@example.com", "hunter2", nil)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(context.Background(), "monde@example.com", "hunter2")
		require.NoError(t, err)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "monde@example.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "monde@example.com", "nope")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost@example.com", "hunter2")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestUpdatePassword(t *testing.T) {
	svc, _, tokens := newAuthService(t)

	token, err := svc.Signup(context.Background(), "monde@example.com", "old-pass", nil)
	require.NoError(t, err)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)

	_, err = svc.UpdatePassword(context.Background(), claims.UserID, "new-pass")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "monde@example.com", "old-pass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "monde@example.com", "new-pass")
	assert.NoError(t, err)
}

func TestUpdatePassword_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.UpdatePassword(context.Background(), "not-a-hex-id", "new-pass")
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	_, err = svc.UpdatePassword(context.Background(), "64b0c8c2a2f4e6d8b9a0c1d2", "new-pass")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
