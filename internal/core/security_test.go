// AngelaMos | 2026
// security_test.go

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/diveadmin/internal/core"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := core.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotContains(t, hash, "correct horse")

	valid, err := core.VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = core.VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := core.HashPassword("same password")
	require.NoError(t, err)

	second, err := core.HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordTimingSafeUnknownAccount(t *testing.T) {
	valid, rehash, err := core.VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, rehash)
}

func TestVerifyPasswordTimingSafeKnownAccount(t *testing.T) {
	hash, err := core.HashPassword("secret-password")
	require.NoError(t, err)

	valid, _, err := core.VerifyPasswordTimingSafe("secret-password", &hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, _, err = core.VerifyPasswordTimingSafe("not-it", &hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTokenHashing(t *testing.T) {
	token, err := core.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	hash := core.HashToken(token)
	assert.NotEqual(t, token, hash)
	assert.Len(t, hash, 64)

	assert.True(t, core.CompareTokenHash(token, hash))
	assert.False(t, core.CompareTokenHash("other-token", hash))
}

func TestGenerateSecureTokenLength(t *testing.T) {
	token, err := core.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	other, err := core.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
