package utils

import (
	"testing"

	"rishta/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	in := &models.UserClaims{
		UserID:       42,
		Email:        "ayesha@example.com",
		Role:         models.RoleUser,
		Permissions:  models.GetDefaultPermissions(models.RoleUser),
		TokenVersion: 3,
	}

	access, refresh, err := GenerateTokens(in)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	_, claims, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ayesha@example.com", claims.Email)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "rishta-api", claims.Issuer)
	assert.Contains(t, claims.Permissions, models.PermissionProposalWrite)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, _, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	in := &models.UserClaims{UserID: 1}
	access, _, err := GenerateTokens(in)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, _, err = ParseToken(access)
	assert.Error(t, err)
}

func TestGenerateTokens_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, _, err := GenerateTokens(&models.UserClaims{UserID: 1})
	assert.Error(t, err)
}
