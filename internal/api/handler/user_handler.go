package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Upsert stores a first-time user with the customer role, or returns the
// existing record untouched.
//
// @Summary      Save user on first login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        email  path      string             true  "User email"
// @Param        body   body      upsertUserRequest  true  "Profile"
// @Success      200    {object}  domain.User
// @Success      201    {object}  domain.User
// @Router       /users/{email} [post]
func (h *UserHandler) Upsert(c echo.Context) error {
	var req upsertUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, created, err := h.service.Upsert(c.Request().Context(), domain.User{
		Email: c.Param("email"),
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, user)
}

// RequestStatus asks an admin to elevate the user to seller.
//
// @Summary      Request seller status
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  domain.UpdateResult
// @Failure      404    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Security     CookieAuth
// @Router       /users/{email} [patch]
func (h *UserHandler) RequestStatus(c echo.Context) error {
	res, err := h.service.RequestStatus(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateRole sets a user's role and marks them verified.
//
// @Summary      Update user role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        email  path      string             true  "User email"
// @Param        body   body      updateRoleRequest  true  "New role"
// @Success      200    {object}  domain.UpdateResult
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Security     CookieAuth
// @Router       /user/role/{email} [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.UpdateRole(c.Request().Context(), c.Param("email"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// GetRole returns the stored role, or null for unknown emails.
//
// @Summary      Get user role
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  roleResponse
// @Router       /users/role/{email} [get]
func (h *UserHandler) GetRole(c echo.Context) error {
	role, err := h.service.GetRole(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}

	resp := roleResponse{}
	if role != "" {
		resp.Role = &role
	}
	return c.JSON(http.StatusOK, resp)
}

// ListExcept returns every user except the caller.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "Email to exclude"
// @Success      200    {array}   domain.User
// @Security     CookieAuth
// @Router       /all-users/{email} [get]
func (h *UserHandler) ListExcept(c echo.Context) error {
	users, err := h.service.ListExcept(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
