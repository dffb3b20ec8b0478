package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-server/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// AdminStats returns platform totals and the per-day sales series.
//
// @Summary      Admin statistics
// @Tags         stats
// @Produce      json
// @Success      200  {object}  domain.AdminStats
// @Failure      403  {object}  map[string]string
// @Security     CookieAuth
// @Router       /admin-stat [get]
func (h *StatsHandler) AdminStats(c echo.Context) error {
	stats, err := h.service.AdminStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
