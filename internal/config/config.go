package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     int
	AppEnv   string
	LogLevel string

	ModelProvider   string
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string

	TavilyAPIKey   string
	MediaQueryMode string
	MediaAnnotate  bool

	UpstreamTimeout time.Duration
	RequestTimeout  time.Duration

	NatsURL   string
	NatsToken string
}

// Load reads .env files (if present) and the process environment.
// Missing credentials are not an error here; they fail at first use.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv.Load never overrides variables that are already set.
		_ = godotenv.Load(f)
	}

	return Config{
		Port:     envInt("PORT", 8000),
		AppEnv:   envStr("APP_ENV", "development"),
		LogLevel: strings.ToLower(envStr("LOG_LEVEL", "info")),

		ModelProvider:   strings.ToLower(envStr("MODEL_PROVIDER", "gemini")),
		GeminiAPIKey:    envStr("GEMINI_API_KEY", ""),
		GeminiModel:     envStr("GEMINI_MODEL", "gemini-2.0-flash"),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIModel:     envStr("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		TavilyAPIKey:   envStr("TAVILY_API_KEY", ""),
		MediaQueryMode: strings.ToLower(envStr("MEDIA_QUERY_MODE", "llm")),
		MediaAnnotate:  envBool("MEDIA_ANNOTATE", false),

		UpstreamTimeout: envDuration("UPSTREAM_TIMEOUT", 60*time.Second),
		RequestTimeout:  envDuration("REQUEST_TIMEOUT", 180*time.Second),

		NatsURL:   envStr("NATS_URL", ""),
		NatsToken: envStr("NATS_TOKEN", ""),
	}
}

// ModelAPIKey returns the credential for the selected model provider.
func (c Config) ModelAPIKey() string {
	switch c.ModelProvider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "openai":
		return c.OpenAIAPIKey
	default:
		return c.GeminiAPIKey
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
