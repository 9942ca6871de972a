package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

const reasonNeedsAdmin = "User needs to be admin to do that!"

// RequireUserRights gates the user management routes.  Administrators pass
// unconditionally.  Everyone else may only read and update their own user
// document: creating and deleting accounts is admin-only, the userID in the
// path must match the token's subject, and an update must not try to touch
// the isAdministrator flag (no self-promotion).
//
// Authenticate must run before this middleware; a missing identity is a
// wiring bug and answered with a 500.
func RequireUserRights() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := GetIdentity(c)
			if !ok {
				c.Logger().Error("no identity in request context, authentication middleware did not run")
				return internalError(c)
			}

			if id.IsAdministrator {
				return next(c)
			}

			method := c.Request().Method
			if method == http.MethodPost || method == http.MethodDelete {
				return denied(c, reasonNeedsAdmin)
			}

			target := c.Param("userID")
			if target == "" || target != id.UserID {
				return denied(c, "Mismatch of ID in path and ID in Token User is not allowed to do that!")
			}

			if method == http.MethodPut && bodySetsField(c, "isAdministrator") {
				return denied(c, "User is not Allowed to change if the user is an admin or not!")
			}

			return next(c)
		}
	}
}

// bodySetsField reports whether the request body is a JSON object carrying
// the given key.  The body is restored afterwards so the handler can still
// bind it.  Unreadable or non-object bodies report false; the handler will
// reject those on its own terms.
func bodySetsField(c echo.Context, key string) bool {
	req := c.Request()
	if req.Body == nil {
		return false
	}
	raw, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	_, present := obj[key]
	return present
}
