package llm

import (
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/solace/internal/anthropic"
	"github.com/MikeSquared-Agency/solace/internal/config"
	"github.com/MikeSquared-Agency/solace/internal/gemini"
	"github.com/MikeSquared-Agency/solace/internal/openai"
)

// Provider names accepted by MODEL_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// FromConfig builds the configured provider. Credentials are not checked
// here: a missing key surfaces as a configuration error on the first call.
func FromConfig(cfg config.Config, logger *slog.Logger) (Generator, error) {
	var g Generator
	switch cfg.ModelProvider {
	case ProviderGemini, "":
		g = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	case ProviderAnthropic:
		g = anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case ProviderOpenAI:
		g = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.ModelProvider)
	}

	provider := cfg.ModelProvider
	if provider == "" {
		provider = ProviderGemini
	}
	return Instrument(g, provider, cfg.UpstreamTimeout, logger), nil
}
