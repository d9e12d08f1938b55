package handler

import (
	"io"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// maxWebhookBody bounds the webhook payload read into memory.
const maxWebhookBody = 64 << 10

// PaymentHandler handles checkout sessions and processor webhooks.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateCheckout handles POST /api/payments/create-checkout requests.
func (h *PaymentHandler) CreateCheckout(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	var req model.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	session, err := h.service.CreateCheckout(c.Request().Context(), p.UserID, &req)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, session)
}

// Status handles GET /api/payments/status/:session_id requests.
func (h *PaymentHandler) Status(c echo.Context) error {
	if _, err := principal(c); err != nil {
		return writeError(c, err, h.logger)
	}

	status, err := h.service.PollStatus(c.Request().Context(), c.Param("session_id"))
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, status)
}

// Webhook handles POST /api/webhook/stripe requests. The raw body is verified against the Stripe-Signature header.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return badRequest(c)
	}

	if _, err := h.service.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get("Stripe-Signature")); err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}
