package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID, email, role string) (string, error)
}

// AuthHandler handles signup and login.
type AuthHandler struct {
	service service.AuthService
	tokens  TokenIssuer
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, tokens TokenIssuer, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// Signup handles POST /api/auth/signup requests.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req model.SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.service.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return h.respondWithToken(c, user)
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.service.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return h.respondWithToken(c, user)
}

func (h *AuthHandler) respondWithToken(c echo.Context, user *model.User) error {
	token, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, model.AuthResponse{Token: token, User: user})
}
