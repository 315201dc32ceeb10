package ai

import (
	"fmt"

	"autoseo/internal/ai/gemini"
	"autoseo/internal/ai/mock"
	"autoseo/internal/config"
	"autoseo/pkg/models"
)

// NewProvider constructs the appropriate provider based on config.
// Called once at server startup.
func NewProvider(cfg config.AIConfig) (models.SeoProvider, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, &Error{Kind: KindMissingCredential, Message: "GEMINI_API_KEY is missing"}
		}
		return gemini.NewProvider(cfg.Gemini, cfg.RequestTimeout), nil
	case "mock":
		return mock.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of gemini, mock", cfg.Provider)
	}
}
