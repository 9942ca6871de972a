package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/degree-course-api/internal/auth"
)

const testSecret = "middleware-test-secret"

// invoke runs the Authenticate middleware against a request carrying the
// given Authorization header.  The next handler records the identity it saw.
func invoke(t *testing.T, ev *auth.Evaluator, header string) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/degreeCourses", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *Identity
	next := func(c echo.Context) error {
		if id, ok := GetIdentity(c); ok {
			seen = &id
		}
		return c.NoContent(http.StatusOK)
	}
	err := Authenticate(ev)(next)(c)
	require.NoError(t, err)
	return rec, seen
}

func TestAuthenticateMissingHeader(t *testing.T) {
	ev := auth.NewEvaluator(testSecret, 3600, 300)
	rec, seen := invoke(t, ev, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthenticateWrongScheme(t *testing.T) {
	ev := auth.NewEvaluator(testSecret, 3600, 300)
	rec, seen := invoke(t, ev, "Basic YWRtaW46MTIz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthenticateValidToken(t *testing.T) {
	ev := auth.NewEvaluator(testSecret, 3600, 300)
	token, err := ev.Sign("alice", false)
	require.NoError(t, err)

	rec, seen := invoke(t, ev, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.UserID)
	assert.False(t, seen.IsAdministrator)
	// A still-valid token is not replaced.
	assert.Empty(t, rec.Header().Get("Authorization"))
}

func TestAuthenticateRenewsNearExpiry(t *testing.T) {
	// Lifetime shorter than the renewal window: freshly signed tokens are
	// immediately renewal-eligible.
	ev := auth.NewEvaluator(testSecret, 100, 300)
	token, err := ev.Sign("alice", true)
	require.NoError(t, err)

	rec, seen := invoke(t, ev, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.UserID)
	assert.True(t, seen.IsAdministrator)

	issued := rec.Header().Get("Authorization")
	require.True(t, strings.HasPrefix(issued, "Bearer "))
	fresh := strings.TrimPrefix(issued, "Bearer ")
	assert.NotEmpty(t, fresh)

	claims, err := auth.Verify(testSecret, fresh)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
	assert.True(t, claims.IsAdministrator)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	ev := auth.NewEvaluator(testSecret, -3600, 300)
	token, err := ev.Sign("alice", false)
	require.NoError(t, err)

	rec, seen := invoke(t, auth.NewEvaluator(testSecret, 3600, 300), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestAuthenticateForeignToken(t *testing.T) {
	foreign := auth.NewEvaluator("some-other-secret", 3600, 300)
	token, err := foreign.Sign("alice", true)
	require.NoError(t, err)

	ev := auth.NewEvaluator(testSecret, 3600, 300)
	rec, seen := invoke(t, ev, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
	assert.Empty(t, rec.Header().Get("Authorization"))
}

func TestAuthenticateTokenWithoutExpiry(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID":          "alice",
		"isAdministrator": false,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	ev := auth.NewEvaluator(testSecret, 3600, 300)
	rec, seen := invoke(t, ev, "Bearer "+raw)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, seen)
}
