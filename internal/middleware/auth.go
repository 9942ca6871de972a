package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"strings" // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/campushub/degree-course-api/internal/auth"
)

// Authenticate returns an Echo middleware that validates a Bearer token and
// attaches the decoded identity to the request context.  Protected routes
// accept Bearer only; Basic credentials belong on the authenticate endpoint.
//
// A token inside the renewal window is silently re-signed: the response
// carries a fresh `Authorization: Bearer <token>` header and the request
// proceeds as authenticated.  Expired and invalid tokens end the request
// with a generic 401; an evaluation error ends it with a 500.
func Authenticate(ev *auth.Evaluator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				c.Logger().Error("authorization header missing on protected route")
				return unauthorized(c)
			}
			if !strings.HasPrefix(header, "Bearer ") {
				c.Logger().Errorf("authorization header should start with Bearer, got scheme of %d bytes", len(header))
				return unauthorized(c)
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			state, claims := ev.Evaluate(raw)
			switch state {
			case auth.TokenRenewed:
				fresh, err := ev.Sign(claims.UserID, claims.IsAdministrator)
				if err != nil {
					c.Logger().Errorf("re-signing token failed: %v", err)
					return internalError(c)
				}
				c.Response().Header().Set("Authorization", "Bearer "+fresh)
				SetIdentity(c, Identity{UserID: claims.UserID, IsAdministrator: claims.IsAdministrator})
				return next(c)
			case auth.TokenValid:
				SetIdentity(c, Identity{UserID: claims.UserID, IsAdministrator: claims.IsAdministrator})
				return next(c)
			case auth.TokenExpired, auth.TokenInvalid:
				return unauthorized(c)
			case auth.TokenError:
				c.Logger().Error("token evaluation failed")
				return internalError(c)
			}
			return internalError(c)
		}
	}
}
