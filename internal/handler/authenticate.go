package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campushub/degree-course-api/internal/auth"
)

// AuthenticateHandler implements the single authentication endpoint.  A
// client either presents Basic credentials to obtain its first token, or an
// existing Bearer token to have it validated and, near expiry, silently
// replaced.
type AuthenticateHandler struct {
	Evaluator *auth.Evaluator
	Users     auth.UserStore
}

func NewAuthenticateHandler(ev *auth.Evaluator, users auth.UserStore) *AuthenticateHandler {
	return &AuthenticateHandler{Evaluator: ev, Users: users}
}

// Authenticate handles GET /api/authenticate.
//
// No Authorization header at all gets a 401 with a WWW-Authenticate
// challenge so browser clients prompt for credentials.  A present but
// unusable header gets the generic 401 without a challenge.  Tokens issued
// or renewed here travel back in the Authorization response header, never
// in the body; a token that is still valid gets a bare 200 and the client
// keeps what it has.
func (h *AuthenticateHandler) Authenticate(c echo.Context) error {
	values, present := c.Request().Header["Authorization"]
	if !present || len(values) == 0 {
		c.Logger().Error("authorization header missing, asking for login")
		c.Response().Header().Set("WWW-Authenticate", `Basic realm="Secure Area"`)
		return c.NoContent(http.StatusUnauthorized)
	}

	header := values[0]
	if header == "" {
		c.Logger().Error("authorization header present but empty")
		return unauthorized(c)
	}

	if strings.HasPrefix(header, "Bearer ") {
		return h.handleBearer(c, strings.TrimPrefix(header, "Bearer "))
	}
	if strings.HasPrefix(header, "Basic ") {
		return h.handleBasic(c, strings.TrimPrefix(header, "Basic "))
	}

	c.Logger().Error("authorization header used an unsupported scheme")
	return unauthorized(c)
}

func (h *AuthenticateHandler) handleBearer(c echo.Context, raw string) error {
	state, claims := h.Evaluator.Evaluate(raw)
	switch state {
	case auth.TokenRenewed:
		fresh, err := h.Evaluator.Sign(claims.UserID, claims.IsAdministrator)
		if err != nil {
			c.Logger().Errorf("re-signing token failed: %v", err)
			return serverError(c)
		}
		c.Response().Header().Set("Authorization", "Bearer "+fresh)
		return c.NoContent(http.StatusOK)
	case auth.TokenValid:
		return c.NoContent(http.StatusOK)
	case auth.TokenExpired, auth.TokenInvalid:
		return unauthorized(c)
	case auth.TokenError:
		c.Logger().Error("token evaluation failed")
		return serverError(c)
	}
	return serverError(c)
}

func (h *AuthenticateHandler) handleBasic(c echo.Context, encoded string) error {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		c.Logger().Error("basic credentials were not valid base64")
		return unauthorized(c)
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 2 {
		c.Logger().Error("basic credentials did not split into user and password")
		return unauthorized(c)
	}

	user, ok := auth.VerifyLogin(c.Request().Context(), h.Users, parts[0], parts[1])
	if !ok {
		c.Logger().Error("login information was wrong")
		return unauthorized(c)
	}

	token, err := h.Evaluator.Sign(user.UserID, user.IsAdministrator)
	if err != nil {
		c.Logger().Errorf("signing token failed: %v", err)
		return serverError(c)
	}
	c.Response().Header().Set("Authorization", "Bearer "+token)
	return c.NoContent(http.StatusOK)
}
