package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(ttl time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret-key",
		SessionTTL:  ttl,
		TokenIssuer: "campushire-test",
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestService(time.Hour)
	sessionID := NewSessionID()

	token, err := svc.GenerateSessionToken(42, sessionID)
	require.NoError(t, err)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, sessionID, claims.ID)
	assert.Equal(t, "campushire-test", claims.Issuer)
}

func TestSessionTokenCarriesNoAuthorizationState(t *testing.T) {
	svc := newTestService(time.Hour)

	token, err := svc.GenerateSessionToken(42, NewSessionID())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	// Role, scope and email live in the database, never in the token.
	var claims map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &claims))
	assert.NotContains(t, claims, "role")
	assert.NotContains(t, claims, "scopeId")
	assert.NotContains(t, claims, "email")
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.GenerateSessionToken(42, NewSessionID())
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenSignedWithOtherKeyRejected(t *testing.T) {
	issuer := newTestService(time.Hour)
	verifier := NewJWTService(JWTConfig{
		SecretKey:   "a-different-secret",
		SessionTTL:  time.Hour,
		TokenIssuer: "campushire-test",
	})

	token, err := issuer.GenerateSessionToken(42, NewSessionID())
	require.NoError(t, err)

	_, err = verifier.ValidateAndExtractClaims(token)
	assert.Error(t, err)
}

func TestValidateEmptyToken(t *testing.T) {
	svc := newTestService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
