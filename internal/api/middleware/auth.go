package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// CookieName holds the signed session token.
	CookieName = "token"
	// ContextEmail is the echo.Context key carrying the caller's email.
	ContextEmail = "email"
)

// TokenVerifier is satisfied by ports.SessionService.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth validates the session token and injects the caller's email into context.
// The token is read from the session cookie, falling back to a Bearer header.
func Auth(sessions TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			email, err := sessions.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			c.Set(ContextEmail, email)
			return next(c)
		}
	}
}

func sessionToken(c echo.Context) string {
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Email returns the authenticated caller's email, or "" outside Auth.
func Email(c echo.Context) string {
	email, _ := c.Get(ContextEmail).(string)
	return email
}
