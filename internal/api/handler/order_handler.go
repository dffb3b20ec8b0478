package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Place records an order and notifies customer and seller.
//
// @Summary      Place order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string        false  "Replay protection key"
// @Param        body             body      domain.Order  true   "Order"
// @Success      200              {object}  insertedResponse
// @Failure      402              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /order [post]
func (h *OrderHandler) Place(c echo.Context) error {
	var o domain.Order
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := h.service.Place(c.Request().Context(), ports.PlaceOrderInput{
		Order:          o,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insertedResponse{InsertedID: id})
}

// CustomerOrders returns the customer's history joined with plant details.
//
// @Summary      Customer order history
// @Tags         orders
// @Produce      json
// @Param        email  path     string  true  "Customer email"
// @Success      200    {array}  domain.OrderView
// @Security     CookieAuth
// @Router       /customer-orders/{email} [get]
func (h *OrderHandler) CustomerOrders(c echo.Context) error {
	orders, err := h.service.CustomerOrders(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// SellerOrders returns the seller's queue joined with plant details.
//
// @Summary      Seller order queue
// @Tags         orders
// @Produce      json
// @Param        email  path     string  true  "Seller email"
// @Success      200    {array}  domain.OrderView
// @Security     CookieAuth
// @Router       /seller-orders/{email} [get]
func (h *OrderHandler) SellerOrders(c echo.Context) error {
	orders, err := h.service.SellerOrders(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus sets a free-form order status.
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Order id"
// @Param        body  body      orderStatusRequest  true  "Status"
// @Success      200   {object}  domain.UpdateResult
// @Failure      404   {object}  map[string]string
// @Security     CookieAuth
// @Router       /orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel deletes an order unless it was already delivered.
//
// @Summary      Cancel order
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  deletedResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Security     CookieAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Cancel(c echo.Context) error {
	n, err := h.service.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{DeletedCount: n})
}
