package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "health-keeper-test"
	testSignKey = "test-sign-key"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(testIssuer, "491711234567", "opaque-session-token", time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := ValidateAndParseAccessToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, "491711234567", parsed.Claims.Subject)
	assert.Equal(t, "opaque-session-token", parsed.Claims.SessionToken)
}

func TestGenerateAccessToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name                         string
		issuer, userID, session, key string
		duration                     time.Duration
	}{
		{name: "empty issuer", userID: "1", session: "s", key: "k", duration: time.Hour},
		{name: "empty user", issuer: "i", session: "s", key: "k", duration: time.Hour},
		{name: "empty session token", issuer: "i", userID: "1", key: "k", duration: time.Hour},
		{name: "zero duration", issuer: "i", userID: "1", session: "s", key: "k"},
		{name: "empty sign key", issuer: "i", userID: "1", session: "s", duration: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateAccessToken(tt.issuer, tt.userID, tt.session, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseAccessToken_WrongKey(t *testing.T) {
	token, err := GenerateAccessToken(testIssuer, "1", "s", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseAccessToken(token.SignedString, "another-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseAccessToken_WrongIssuer(t *testing.T) {
	token, err := GenerateAccessToken("someone-else", "1", "s", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseAccessToken(token.SignedString, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(testIssuer, "1", "s", -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseAccessToken(token.SignedString, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestUUIDGenerator_UniqueAndOrdered(t *testing.T) {
	g := NewUUIDGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := g.Generate()
		require.Len(t, id, 36)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
