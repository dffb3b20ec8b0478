package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-server/internal/api/middleware"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

// SessionHandler issues and clears the session cookie.
type SessionHandler struct {
	sessions   ports.SessionService
	production bool
}

// NewSessionHandler builds the handler. In production the cookie is sent
// cross-site (SameSite=None) and only over HTTPS.
func NewSessionHandler(sessions ports.SessionService, production bool) *SessionHandler {
	return &SessionHandler{sessions: sessions, production: production}
}

// Issue signs a session token for the posted email and sets it as a cookie.
//
// @Summary      Issue session cookie
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      sessionRequest  true  "Identity email"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Router       /jwt [post]
func (h *SessionHandler) Issue(c echo.Context) error {
	var req sessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.sessions.Issue(req.Email)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie(token, h.sessions.TTL()))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Logout expires the session cookie.
//
// @Summary      Clear session cookie
// @Tags         session
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /logout [get]
func (h *SessionHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie("", 0))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *SessionHandler) cookie(value string, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	}
	if h.production {
		ck.SameSite = http.SameSiteNoneMode
	}
	if ttl > 0 {
		ck.MaxAge = int(ttl / time.Second)
		ck.Expires = time.Now().Add(ttl)
	} else {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
	}
	return ck
}
