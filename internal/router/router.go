package router

import (
	"net/http"
	"slices"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Auth           *handler.AuthHandler
	Product        *handler.ProductHandler
	Cart           *handler.CartHandler
	Order          *handler.OrderHandler
	Payment        *handler.PaymentHandler
	Recommendation *handler.RecommendationHandler
	Orders         http.Handler // WebSocket feed of new orders
}

// New creates the echo instance with all routes and middleware configured.
func New(
	h Handlers,
	verifier middleware.TokenVerifier,
	corsOrigins []string,
	logger zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	// Apply middleware in order: Recovery -> Logging -> CORS
	e.Use(echo.WrapMiddleware(middleware.Recovery(logger)))
	e.Use(echo.WrapMiddleware(middleware.Logging(logger)))
	e.Use(respondErrors)
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: !slices.Contains(corsOrigins, "*"),
	}))

	// Health check endpoint (no authentication required)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	e.GET("/ws/orders", echo.WrapHandler(h.Orders))

	api := e.Group("/api")

	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)

	api.GET("/products", h.Product.List)
	api.GET("/products/:id", h.Product.GetByID)

	api.POST("/webhook/stripe", h.Payment.Webhook)

	auth := middleware.Auth(verifier, logger)

	api.POST("/cart", h.Cart.AddToCart, auth)
	api.GET("/cart", h.Cart.GetCart, auth)
	api.POST("/wishlist", h.Cart.AddToWishlist, auth)
	api.GET("/wishlist", h.Cart.GetWishlist, auth)

	api.POST("/orders", h.Order.Create, auth)
	api.GET("/orders", h.Order.List, auth)

	api.POST("/payments/create-checkout", h.Payment.CreateCheckout, auth)
	api.GET("/payments/status/:session_id", h.Payment.Status, auth)

	api.POST("/ai/style-recommendation", h.Recommendation.Recommend, auth)

	return e
}

// respondErrors writes errors returned by inner handlers before the logging middleware records the status.
func respondErrors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := next(c); err != nil {
			c.Error(err)
		}
		return nil
	}
}

// errorHandler renders echo's own errors (unknown route, wrong method) as {"error": ...}.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(status)
		return
	}
	c.JSON(status, handler.ErrorResponse{Error: message})
}
