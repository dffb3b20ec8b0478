package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RoleLookup resolves a caller's stored role; "" means no such user.
type RoleLookup interface {
	GetRole(ctx context.Context, email string) (string, error)
}

// RequireRole enforces that the authenticated caller currently holds role.
// The role is read from the user store on every request, so revocations apply
// immediately. Must run after Auth.
func RequireRole(users RoleLookup, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := Email(c)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			got, err := users.GetRole(c.Request().Context(), email)
			if err != nil {
				return err
			}
			if got != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access! "+role+" only actions")
			}
			return next(c)
		}
	}
}
