package middleware

import (
	"github.com/labstack/echo/v4"

	"task-dashboard.com/task-dashboard/internal/auth"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
)

const claimsKey = "claims"

// Authenticate verifies the bearer token and stores its claims on the
// request context.
func Authenticate(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// CallerID returns the user id of the authenticated caller.
func CallerID(c echo.Context) (string, error) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	if !ok || claims == nil {
		return "", apperrors.ErrMissingToken
	}
	return claims.UserID, nil
}
