package model

// StylePreferences are the optional inputs to a style recommendation.
type StylePreferences struct {
	Gender   string `json:"gender,omitempty"`
	Occasion string `json:"occasion,omitempty"`
	Color    string `json:"color,omitempty"`
	Fit      string `json:"fit,omitempty"`
}

// RecommendationRequest is the payload for POST /api/ai/style-recommendation.
type RecommendationRequest struct {
	Preferences StylePreferences `json:"preferences"`
}

// RecommendationResponse carries the provider's text verbatim.
type RecommendationResponse struct {
	Recommendation string `json:"recommendation"`
}

// CompletionRequest is a single-turn request to a text-completion provider.
type CompletionRequest struct {
	SessionID    string
	SystemPrompt string
	Prompt       string
}
