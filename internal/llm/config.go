package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/proyo/internal/config"
)

// Provider names accepted in configuration.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config holds the resolved provider configuration.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string // OpenAI-compatible endpoints only
	Retry    RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// defaultModels are used when no model is configured.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
	ProviderGemini:     "gemini-flash",
	ProviderMock:       "mock",
}

// DefaultRetry is the retry policy used unless configured otherwise.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// FromConfig resolves the [llm] section. With no provider set it falls back
// to DiscoverConfig; ok is false when no provider can be found at all.
func FromConfig(c config.LLMConfig) (cfg Config, ok bool) {
	if c.Provider == "" {
		cfg, ok = DiscoverConfig()
		if !ok {
			return Config{}, false
		}
	} else {
		cfg = Config{Provider: c.Provider, APIKey: c.APIKey}
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv(standardKeyEnv(c.Provider))
		}
	}

	if c.Model != "" {
		cfg.Model = c.Model
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	cfg.BaseURL = c.BaseURL
	if cfg.BaseURL == "" && cfg.Provider == ProviderOpenRouter {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}

	cfg.Retry = DefaultRetry()
	if c.MaxRetries > 0 {
		cfg.Retry.MaxAttempts = c.MaxRetries
	}
	cfg.Timeout = c.Timeout
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return cfg, true
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found.
func DiscoverConfig() (Config, bool) {
	for _, p := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter} {
		if k := os.Getenv(standardKeyEnv(p)); k != "" {
			return Config{Provider: p, APIKey: k, Model: defaultModels[p]}, true
		}
	}
	return Config{}, false
}

func standardKeyEnv(provider string) string {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider (set llm.api_key or %s)",
				c.Provider, standardKeyEnv(c.Provider))
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
