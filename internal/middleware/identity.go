package middleware

// identity.go defines the authenticated request context shared between the
// authentication middleware, the authorization policies and the handlers.
// The Identity is attached once per request after the bearer token verified
// and is the only part of the token downstream code gets to see.

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// identityKey is the context key under which the Identity is stored.
const identityKey = "identity"

// Identity is the decoded subject of a verified bearer token.
type Identity struct {
	UserID          string
	IsAdministrator bool
}

// SetIdentity attaches the identity to the current request.  Called by the
// authentication middleware only.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the identity attached to the request.  The second
// return value is false when authentication never ran, which downstream
// code must treat as a server-side ordering bug rather than a client error.
func GetIdentity(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

// unauthorized writes the generic 401 used whenever a header was present
// but could not be accepted.  No detail about why is leaked.
func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authorization Header is missing or Invalid"})
}

// denied writes a 401 with a human-readable policy reason.  Policy reasons
// are not sensitive; they tell the user what privilege was missing.
func denied(c echo.Context, reason string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": reason})
}

// internalError writes the generic 500.  Details stay in the server log.
func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server Error"})
}
