package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireApplicationRights gates the degree course application routes.
// Administrators pass unconditionally.  Everyone else may list their own
// applications and submit new ones (the handler pins the applicant to the
// caller); listing, reading or modifying arbitrary applications is
// admin-only.
func RequireApplicationRights() echo.MiddlewareFunc {
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

			if c.Request().Method == http.MethodGet && strings.HasSuffix(c.Request().URL.Path, "/myApplications") {
				return next(c)
			}
			if c.Request().Method == http.MethodPost {
				return next(c)
			}

			return denied(c, reasonNeedsAdmin)
		}
	}
}
