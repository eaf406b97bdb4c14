package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/skirmish/pkg/auth"
)

func TestTokens_IssueVerifyRoundTrip(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue("65f1c0ffee0000000000aa01", "user0@example.com", []string{"user", "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)

	assert.Equal(t, "65f1c0ffee0000000000aa01", claims.UserID)
	assert.Equal(t, "user0@example.com", claims.Email)
	assert.Equal(t, []string{"user", "admin"}, claims.Roles)
	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("moderator"))
}

func TestTokens_VerifyRejectsExpired(t *testing.T) {
	tokens := auth.NewTokens("test-secret", -time.Minute)

	signed, err := tokens.Issue("65f1c0ffee0000000000aa01", "user0@example.com", []string{"user"})
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokens_VerifyRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokens("secret-a", time.Hour)
	verifier := auth.NewTokens("secret-b", time.Hour)

	signed, err := issuer.Issue("65f1c0ffee0000000000aa01", "user0@example.com", []string{"user"})
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokens_VerifyRejectsGarbage(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)

	for _, bad := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := tokens.Verify(bad)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, "token %q", bad)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter2", 4)
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	assert.True(t, auth.CheckPassword(hash, "hunter2"))
	assert.False(t, auth.CheckPassword(hash, "hunter3"))
}

func TestPasswordHashing_ClampsInvalidCost(t *testing.T) {
	hash, err := auth.HashPassword("hunter2", 99)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "hunter2"))
}
