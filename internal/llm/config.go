package llm

import (
	"fmt"
	"strings"
	"time"
)

// Config selects and configures the backend.
type Config struct {
	Provider string // gemini, anthropic, openai, openrouter or mock

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig

	Retry RetryConfig

	// Timeout bounds all attempts of one call. Chapter material and mock
	// exams are long outputs, so it is generous.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string // alias or model ID
}

type AnthropicConfig struct {
	APIKey string
	Model  string // alias or model ID
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // for OpenAI-compatible servers
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // "vendor/model"
	BaseURL string
}

// RetryConfig shapes the backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// detectOrder is the provider preference when none is configured.
var detectOrder = []string{"gemini", "openai", "anthropic", "openrouter"}

func DefaultConfig() Config {
	var c Config
	c.Provider = "gemini"
	c.Gemini.Model = "gemini-2.5-flash"
	c.Anthropic.Model = "claude-haiku"
	c.OpenAI.Model = "gpt-4o-mini"
	c.OpenRouter.Model = "google/gemini-2.5-flash"
	c.Retry = RetryConfig{MaxAttempts: 3, InitialWait: time.Second, MaxWait: 10 * time.Second, Multiplier: 2}
	c.Timeout = time.Minute
	return c
}

// credentials points at the key and model fields of provider; both are nil
// for providers that take none.
func (c *Config) credentials(provider string) (key, model *string) {
	switch provider {
	case "gemini":
		return &c.Gemini.APIKey, &c.Gemini.Model
	case "anthropic":
		return &c.Anthropic.APIKey, &c.Anthropic.Model
	case "openai":
		return &c.OpenAI.APIKey, &c.OpenAI.Model
	case "openrouter":
		return &c.OpenRouter.APIKey, &c.OpenRouter.Model
	}
	return nil, nil
}

// DetectProvider sets Provider to the first backend with an API key when
// none is chosen. With no keys at all it stays on the default.
func (c *Config) DetectProvider() {
	if c.Provider != "" {
		return
	}
	c.Provider = detectOrder[0]
	for _, name := range detectOrder {
		if key, _ := c.credentials(name); *key != "" {
			c.Provider = name
			return
		}
	}
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	if _, m := c.credentials(c.Provider); m != nil && model != "" {
		*m = model
	}
}

// Validate reports a missing API key for the selected provider.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	key, _ := c.credentials(c.Provider)
	if key == nil {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("REVQUIZ_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
