package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// CartHandler handles cart and wishlist requests for the authenticated user.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// AddToCart handles POST /api/cart requests.
func (h *CartHandler) AddToCart(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	var item model.CartItem
	if err := c.Bind(&item); err != nil {
		return badRequest(c)
	}

	if err := h.service.AddToCart(c.Request().Context(), p.UserID, item); err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, model.MessageResponse{Message: "Item added to cart"})
}

// GetCart handles GET /api/cart requests.
func (h *CartHandler) GetCart(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	cart, err := h.service.GetCart(c.Request().Context(), p.UserID)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, cart)
}

// AddToWishlist handles POST /api/wishlist requests.
func (h *CartHandler) AddToWishlist(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	var item model.WishlistItem
	if err := c.Bind(&item); err != nil {
		return badRequest(c)
	}

	if err := h.service.AddToWishlist(c.Request().Context(), p.UserID, item); err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, model.MessageResponse{Message: "Item added to wishlist"})
}

// GetWishlist handles GET /api/wishlist requests.
func (h *CartHandler) GetWishlist(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	wishlist, err := h.service.GetWishlist(c.Request().Context(), p.UserID)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, wishlist)
}
