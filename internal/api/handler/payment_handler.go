package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-server/internal/core/ports"
)

const (
	headerStripeSignature = "Stripe-Signature"
	maxWebhookBytes       = 64 << 10
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateIntent prices the purchase server-side and opens a PaymentIntent.
//
// @Summary      Create payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      paymentIntentRequest  true  "Plant and quantity"
// @Success      200   {object}  paymentIntentResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Security     CookieAuth
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pi, err := h.service.CreateIntent(c.Request().Context(), req.PlantID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: pi.ClientSecret})
}

// Webhook consumes signed gateway notifications.
//
// @Summary      Payment gateway webhook
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Webhook signature"
// @Success      200               {object}  webhookResponse
// @Failure      400               {object}  map[string]string
// @Router       /webhooks/stripe [post]
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	if err := h.service.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get(headerStripeSignature)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, webhookResponse{Received: true})
}
