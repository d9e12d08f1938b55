package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	var req model.OrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	order, err := h.service.CreateOrder(c.Request().Context(), p.UserID, &req)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, order)
}

// List handles GET /api/orders requests. Admins see every order.
func (h *OrderHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	orders, err := h.service.ListOrders(c.Request().Context(), p)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, orders)
}
