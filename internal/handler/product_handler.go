package handler

import (
	"net/http"

	"storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests, optionally filtered by ?category=.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, products)
}

// GetByID handles GET /api/products/:id requests.
func (h *ProductHandler) GetByID(c echo.Context) error {
	product, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, product)
}
