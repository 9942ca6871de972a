package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEvaluator pins the evaluator's clock so states are deterministic.
func newTestEvaluator(ttlSec, windowSec int, now time.Time) *Evaluator {
	ev := NewEvaluator(testSecret, ttlSec, windowSec)
	ev.now = func() time.Time { return now }
	return ev
}

// signWithExpiry issues a token whose expiry lies offset away from base.
func signWithExpiry(t *testing.T, base time.Time, offset time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID:          "alice",
		IsAdministrator: false,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(base.Add(offset)),
			IssuedAt:  jwt.NewNumericDate(base),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func TestEvaluateStates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := newTestEvaluator(3600, 300, now)

	tests := []struct {
		name      string
		expOffset time.Duration
		want      TokenState
	}{
		{"well before expiry", time.Hour, TokenValid},
		{"just inside renewal window before expiry", 200 * time.Second, TokenRenewed},
		{"exactly at window edge before expiry", 300 * time.Second, TokenRenewed},
		{"exactly at expiry", 0, TokenRenewed},
		{"shortly after expiry", -200 * time.Second, TokenRenewed},
		{"at window edge after expiry", -300 * time.Second, TokenRenewed},
		{"far past expiry", -time.Hour, TokenExpired},
		{"one second past the window", -301 * time.Second, TokenExpired},
		{"one second outside window before expiry", 301 * time.Second, TokenValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signWithExpiry(t, now, tt.expOffset)
			state, claims := ev.Evaluate(token)
			assert.Equal(t, tt.want, state)
			switch tt.want {
			case TokenValid, TokenRenewed:
				require.NotNil(t, claims)
				assert.Equal(t, "alice", claims.UserID)
			default:
				assert.Nil(t, claims, "claims of a rejected token must not be exposed")
			}
		})
	}
}

func TestEvaluateInvalidSignature(t *testing.T) {
	now := time.Now()
	ev := newTestEvaluator(3600, 300, now)

	other, err := Sign("wrong-secret", "alice", true, 3600)
	require.NoError(t, err)

	state, claims := ev.Evaluate(other)
	assert.Equal(t, TokenInvalid, state)
	assert.Nil(t, claims)
}

func TestEvaluateTamperedNeverValid(t *testing.T) {
	now := time.Now()
	ev := newTestEvaluator(3600, 300, now)

	token, err := ev.Sign("alice", false)
	require.NoError(t, err)
	tampered := token[:len(token)-2] + "xx"

	state, _ := ev.Evaluate(tampered)
	assert.NotEqual(t, TokenValid, state)
	assert.NotEqual(t, TokenRenewed, state)
	assert.Equal(t, TokenInvalid, state)
}

func TestEvaluateMalformedString(t *testing.T) {
	ev := newTestEvaluator(3600, 300, time.Now())

	state, claims := ev.Evaluate("definitely-not-a-token")
	assert.Equal(t, TokenInvalid, state)
	assert.Nil(t, claims)
}

func TestEvaluateMissingExpiry(t *testing.T) {
	ev := newTestEvaluator(3600, 300, time.Now())

	// Signature-valid token that asserts no lifetime at all.
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID":          "alice",
		"isAdministrator": false,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	state, claims := ev.Evaluate(raw)
	assert.Equal(t, TokenError, state)
	assert.Nil(t, claims)
}

func TestTokenStateString(t *testing.T) {
	assert.Equal(t, "VALID", TokenValid.String())
	assert.Equal(t, "RENEWED", TokenRenewed.String())
	assert.Equal(t, "EXPIRED", TokenExpired.String())
	assert.Equal(t, "INVALID", TokenInvalid.String())
	assert.Equal(t, "ERROR", TokenError.String())
}
