package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-server/internal/api/middleware"
)

// HeaderIdempotencyKey lets clients make order and inventory writes replay-safe.
const HeaderIdempotencyKey = "Idempotency-Key"

// callerEmail returns the email injected by the Auth middleware. An empty
// value means the route was mounted without Auth; reject with 401.
func callerEmail(c echo.Context) (string, error) {
	email := middleware.Email(c)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	}
	return email, nil
}

func idempotencyKey(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
