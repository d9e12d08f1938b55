package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RecommendationHandler serves style recommendations.
type RecommendationHandler struct {
	service service.RecommendationService
	logger  zerolog.Logger
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(service service.RecommendationService, logger zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		logger:  logger.With().Str("handler", "recommendation").Logger(),
	}
}

// Recommend handles POST /api/ai/style-recommendation requests.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	var req model.RecommendationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	text, err := h.service.Recommend(c.Request().Context(), p.UserID, req.Preferences)
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.JSON(http.StatusOK, model.RecommendationResponse{Recommendation: text})
}
