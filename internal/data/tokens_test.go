package data

import (
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/locallibrary/internal/validator"
)

func TestGenerateToken(t *testing.T) {
	token, err := generateToken(42, 24*time.Hour, ScopeAuthentication)
	require.NoError(t, err)

	assert.Equal(t, int64(42), token.UserID)
	assert.Equal(t, ScopeAuthentication, token.Scope)
	assert.Len(t, token.Plaintext, 26)

	// The stored hash must be the SHA-256 digest of the plaintext.
	expected := sha256.Sum256([]byte(token.Plaintext))
	assert.Equal(t, expected[:], token.Hash)

	// Expiry lands roughly one TTL from now.
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), token.Expiry, time.Minute)
}

func TestGenerateTokenValuesAreUnique(t *testing.T) {
	first, err := generateToken(1, time.Hour, ScopeAuthentication)
	require.NoError(t, err)
	second, err := generateToken(1, time.Hour, ScopeAuthentication)
	require.NoError(t, err)

	assert.NotEqual(t, first.Plaintext, second.Plaintext)
}

func TestValidateTokenPlaintext(t *testing.T) {
	v := validator.New()
	ValidateTokenPlaintext(v, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	assert.True(t, v.Valid())

	v = validator.New()
	ValidateTokenPlaintext(v, "")
	assert.Contains(t, v.Errors, "token")

	v = validator.New()
	ValidateTokenPlaintext(v, "tooshort")
	assert.Contains(t, v.Errors, "token")
}
