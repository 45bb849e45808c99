package utils

import (
	"testing"

	"origo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := &models.OfficerClaims{
		OfficerID:    7,
		Email:        "officer@example.com",
		Role:         "officer",
		Permissions:  models.GetDefaultPermissions("officer"),
		TokenVersion: 3,
	}

	access, refresh, err := GenerateTokens(claims)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	_, parsed, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), parsed.OfficerID)
	assert.Equal(t, "officer@example.com", parsed.Email)
	assert.Equal(t, 3, parsed.TokenVersion)
	assert.Equal(t, "origo-api", parsed.Issuer)
	assert.True(t, parsed.HasPermission(models.PermissionLeadWrite))
}

func TestParseToken_Rejections(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, _, err := GenerateTokens(&models.OfficerClaims{OfficerID: 1})
	require.NoError(t, err)

	t.Run("tampered token", func(t *testing.T) {
		_, _, err := ParseToken(access + "x")
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := ParseToken("not.a.jwt")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "different-secret")
		_, _, err := ParseToken(access)
		assert.Error(t, err)
	})
}

func TestGenerateTokens_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, _, err := GenerateTokens(&models.OfficerClaims{OfficerID: 1})
	assert.Error(t, err)
}
