package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenState classifies a presented bearer token.  The set is closed; the
// evaluator returns exactly one of these for any input string.
type TokenState int

const (
	// TokenValid means the signature verified and expiry is comfortably in
	// the future.  The client keeps using its current token.
	TokenValid TokenState = iota
	// TokenRenewed means the signature verified and expiry is near (shortly
	// before or shortly after).  The caller should issue a fresh token for
	// the same subject.
	TokenRenewed
	// TokenExpired means the signature verified but expiry lies further in
	// the past than the renewal window allows.
	TokenExpired
	// TokenInvalid means the signature did not verify or the token string
	// was not parseable at all.
	TokenInvalid
	// TokenError means the token verified but its payload is unusable (no
	// expiry), or something unexpected failed during evaluation.
	TokenError
)

func (s TokenState) String() string {
	switch s {
	case TokenValid:
		return "VALID"
	case TokenRenewed:
		return "RENEWED"
	case TokenExpired:
		return "EXPIRED"
	case TokenInvalid:
		return "INVALID"
	case TokenError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Evaluator classifies bearer tokens against the process-wide signing
// secret and renewal window.  It is stateless apart from that immutable
// configuration; the clock is injectable for tests.
type Evaluator struct {
	secret    string
	ttlSec    int
	windowSec int
	now       func() time.Time
}

// NewEvaluator builds an Evaluator.  ttlSec is the lifetime of freshly
// issued tokens, windowSec the renewal window around expiry.
func NewEvaluator(secret string, ttlSec, windowSec int) *Evaluator {
	return &Evaluator{secret: secret, ttlSec: ttlSec, windowSec: windowSec, now: time.Now}
}

// Sign issues a token for the given subject using the evaluator's secret
// and lifetime.
func (e *Evaluator) Sign(userID string, isAdministrator bool) (string, error) {
	return Sign(e.secret, userID, isAdministrator, e.ttlSec)
}

// Evaluate classifies a raw token string.  The returned claims are non-nil
// only for TokenValid and TokenRenewed; for every other state the payload
// must not be trusted.
//
// A token is renewal-eligible when the gap between current time and its
// expiry is at most the renewal window, on either side of expiry.  Past
// expiry and outside the window it is expired for good and the client has
// to log in again.
func (e *Evaluator) Evaluate(token string) (TokenState, *Claims) {
	claims, err := Verify(e.secret, token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
			errors.Is(err, jwt.ErrTokenMalformed) ||
			errors.Is(err, jwt.ErrTokenUnverifiable) {
			return TokenInvalid, nil
		}
		// Anything else is not a property of the presented token.
		return TokenError, nil
	}

	if claims.ExpiresAt == nil {
		// Signature checks out but the payload asserts no lifetime.
		return TokenError, nil
	}

	now := e.now().UTC()
	exp := claims.ExpiresAt.Time
	window := time.Duration(e.windowSec) * time.Second

	switch {
	case now.After(exp):
		if now.Sub(exp) <= window {
			return TokenRenewed, claims
		}
		return TokenExpired, nil
	case exp.Sub(now) <= window:
		return TokenRenewed, claims
	default:
		return TokenValid, claims
	}
}
