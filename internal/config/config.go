// Package config loads application configuration from defaults, an optional
// config file, a .env file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/revquiz/internal/llm"
)

const examDateLayout = "2006-01-02"

// Config holds application configuration.
type Config struct {
	DB       string `mapstructure:"db"`        // SQLite database path; empty means the default location
	LogFile  string `mapstructure:"log_file"`  // log file path; empty means the default location
	Debug    bool   `mapstructure:"debug"`     // verbose development logging
	ExamDate string `mapstructure:"exam_date"` // YYYY-MM-DD shown as a countdown in the header
	LLM      LLM    `mapstructure:"llm"`
	Cache    Cache  `mapstructure:"cache"`
	Speech   Speech `mapstructure:"speech"`
	Quiz     Quiz   `mapstructure:"quiz"`
}

// LLM selects the content generation backend.
type LLM struct {
	Provider         string        `mapstructure:"provider"` // gemini, anthropic, openai, openrouter, mock; empty auto-detects
	Model            string        `mapstructure:"model"`    // overrides the provider's default model
	Timeout          time.Duration `mapstructure:"timeout"`
	GeminiAPIKey     string        `mapstructure:"gemini_api_key"`
	AnthropicAPIKey  string        `mapstructure:"anthropic_api_key"`
	OpenAIAPIKey     string        `mapstructure:"openai_api_key"`
	OpenRouterAPIKey string        `mapstructure:"openrouter_api_key"`
}

// Cache configures the chapter study material cache.
type Cache struct {
	RedisURL string        `mapstructure:"redis_url"` // use Redis instead of the local database when set
	TTL      time.Duration `mapstructure:"ttl"`
}

// Speech configures read-aloud for the audio mock exam.
type Speech struct {
	Command string  `mapstructure:"command"` // auto, none, or an executable name
	Voice   string  `mapstructure:"voice"`
	Rate    float64 `mapstructure:"rate"` // relative to the engine's normal speed
}

// Quiz holds question counts and timing.
type Quiz struct {
	ChapterCount int `mapstructure:"chapter_count"`
	MockCount    int `mapstructure:"mock_count"`
	Countdown    int `mapstructure:"countdown"` // seconds per audio question
}

// Load reads configuration. flags may be nil; when given, its db, debug and
// redis-url flags override every other source.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// .env only fills variables that are not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetDefault("db", "")
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
	v.SetDefault("exam_date", "2026-01-18")
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.anthropic_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openrouter_api_key", "")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "168h")
	v.SetDefault("speech.command", "auto")
	v.SetDefault("speech.voice", "")
	v.SetDefault("speech.rate", 0.9)
	v.SetDefault("quiz.chapter_count", 20)
	v.SetDefault("quiz.mock_count", 25)
	v.SetDefault("quiz.countdown", 10)

	v.SetEnvPrefix("revquiz")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// API keys are also picked up from the providers' conventional names.
	_ = v.BindEnv("llm.gemini_api_key", "REVQUIZ_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("llm.anthropic_api_key", "REVQUIZ_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openai_api_key", "REVQUIZ_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.openrouter_api_key", "REVQUIZ_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")

	if flags != nil {
		for key, name := range map[string]string{
			"db":              "db",
			"debug":           "debug",
			"cache.redis_url": "redis-url",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := c.ExamDay(); err != nil {
		return err
	}
	if c.Quiz.ChapterCount <= 0 || c.Quiz.MockCount <= 0 {
		return fmt.Errorf("quiz question counts must be positive")
	}
	if c.Quiz.Countdown <= 0 {
		return fmt.Errorf("quiz.countdown must be positive")
	}
	return nil
}

// ExamDay parses ExamDate in local time. An empty date yields the zero time.
func (c *Config) ExamDay() (time.Time, error) {
	if c.ExamDate == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation(examDateLayout, c.ExamDate, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid exam_date %q: %w", c.ExamDate, err)
	}
	return d, nil
}

// LLMConfig translates the configuration into provider settings. With no
// provider set, the first provider with an API key is used.
func (c *Config) LLMConfig() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	cfg.Gemini.APIKey = c.LLM.GeminiAPIKey
	cfg.Anthropic.APIKey = c.LLM.AnthropicAPIKey
	cfg.OpenAI.APIKey = c.LLM.OpenAIAPIKey
	cfg.OpenRouter.APIKey = c.LLM.OpenRouterAPIKey
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	cfg.DetectProvider()
	cfg.SetModel(c.LLM.Model)
	return cfg
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "revquiz"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "revquiz"), nil
}
