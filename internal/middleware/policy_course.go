package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireDegreeCourseRights gates the degree course routes.  Administrators
// pass unconditionally.  Everyone else is read-only, and even reads exclude
// the nested applications listing of a course because it exposes other
// users' applications.
func RequireDegreeCourseRights() echo.MiddlewareFunc {
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

			switch c.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete:
				return denied(c, reasonNeedsAdmin)
			case http.MethodGet:
				if strings.HasSuffix(c.Request().URL.Path, "/degreeCourseApplications") {
					return denied(c, reasonNeedsAdmin)
				}
			}

			return next(c)
		}
	}
}
