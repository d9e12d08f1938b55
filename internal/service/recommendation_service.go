package service

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

const stylistSystemPrompt = "You are a premium fashion stylist AI. Provide personalized outfit recommendations based on user preferences."

// recommendationService implements RecommendationService.
type recommendationService struct {
	completer Completer
	logger    zerolog.Logger
}

// NewRecommendationService creates a new style recommendation service.
func NewRecommendationService(completer Completer, logger zerolog.Logger) RecommendationService {
	return &recommendationService{
		completer: completer,
		logger:    logger.With().Str("service", "recommendation").Logger(),
	}
}

// Recommend asks the completion provider for outfits and returns its text unchanged.
func (s *recommendationService) Recommend(ctx context.Context, userID string, prefs model.StylePreferences) (string, error) {
	text, err := s.completer.Complete(ctx, model.CompletionRequest{
		SessionID:    "style_" + userID,
		SystemPrompt: stylistSystemPrompt,
		Prompt:       buildStylePrompt(prefs),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("style recommendation failed")
		return "", err
	}
	return text, nil
}

func buildStylePrompt(p model.StylePreferences) string {
	return fmt.Sprintf(`User preferences:
- Gender: %s
- Occasion: %s
- Color preference: %s
- Fit preference: %s

Recommend 3 complete outfits with specific items (shirts, pants, etc.) that would work well together.`,
		orDefault(p.Gender, "any"),
		orDefault(p.Occasion, "casual"),
		orDefault(p.Color, "any"),
		orDefault(p.Fit, "regular"),
	)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
