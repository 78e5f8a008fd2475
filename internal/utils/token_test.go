package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// TestSessionTokenRoundTrip issues a token and decodes it back to the
// same identity.
func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken(testSecret, "alice", 42, DefaultSessionTTL)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.True(t, tok.Exp.After(time.Now().UTC()))

	ident, err := DecodeSessionToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", ident.Username)
	assert.Equal(t, uint64(42), ident.UserID)
}

// TestDecodeWrongSecret rejects a token signed with another secret.
func TestDecodeWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("other-secret", "alice", 42, DefaultSessionTTL)
	require.NoError(t, err)

	_, err = DecodeSessionToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestDecodeExpired rejects a token whose expiry already passed.
func TestDecodeExpired(t *testing.T) {
	tok, err := NewSessionToken(testSecret, "alice", 42, -time.Minute)
	require.NoError(t, err)

	_, err = DecodeSessionToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestDecodeGarbage rejects strings that are not tokens at all.
func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeSessionToken(testSecret, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestDecodeMissingClaims: a validly signed token without the sub/id
// claims decodes to a degraded zero-field identity rather than an error.
// The role gate treats that identity as anonymous.
func TestDecodeMissingClaims(t *testing.T) {
	claims := jwt.MapClaims{"exp": time.Now().UTC().Add(time.Minute).Unix()}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	ident, err := DecodeSessionToken(testSecret, raw)
	require.NoError(t, err)
	assert.Empty(t, ident.Username)
	assert.Zero(t, ident.UserID)
}
