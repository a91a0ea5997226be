package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config source at an empty temp location.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"REVQUIZ_GEMINI_API_KEY", "REVQUIZ_LLM_PROVIDER", "REVQUIZ_LLM_MODEL", "REVQUIZ_DB",
		"REVQUIZ_QUIZ_COUNTDOWN", "REVQUIZ_CACHE_REDIS_URL",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Quiz.ChapterCount)
	assert.Equal(t, 25, cfg.Quiz.MockCount)
	assert.Equal(t, 10, cfg.Quiz.Countdown)
	assert.Equal(t, 168*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "auto", cfg.Speech.Command)
	assert.InDelta(t, 0.9, cfg.Speech.Rate, 1e-9)

	day, err := cfg.ExamDay()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 18, 0, 0, 0, 0, time.Local), day)

	lc := cfg.LLMConfig()
	assert.Equal(t, "gemini", lc.Provider)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "revquiz"), 0o755))
	yaml := []byte("quiz:\n  countdown: 15\n  mock_count: 30\nllm:\n  provider: openai\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "revquiz", "config.yaml"), yaml, 0o644))

	t.Setenv("REVQUIZ_QUIZ_COUNTDOWN", "12")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REVQUIZ_LLM_MODEL", "gpt-4o")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.Bool("debug", false, "")
	flags.String("redis-url", "", "")
	require.NoError(t, flags.Parse([]string{"--db", "/tmp/x.db", "--redis-url", "redis://localhost:6379/0"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Quiz.MockCount, "file value")
	assert.Equal(t, 12, cfg.Quiz.Countdown, "env beats file")
	assert.Equal(t, "/tmp/x.db", cfg.DB, "flag value")
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.False(t, cfg.Debug)

	lc := cfg.LLMConfig()
	assert.Equal(t, "openai", lc.Provider)
	assert.Equal(t, "sk-test", lc.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", lc.OpenAI.Model)
}

func TestLLMConfigDiscovery(t *testing.T) {
	cfg := &Config{LLM: LLM{AnthropicAPIKey: "a-key"}}
	assert.Equal(t, "anthropic", cfg.LLMConfig().Provider)

	cfg = &Config{LLM: LLM{AnthropicAPIKey: "a-key", GeminiAPIKey: "g-key"}}
	assert.Equal(t, "gemini", cfg.LLMConfig().Provider)
}

func TestValidate(t *testing.T) {
	cfg := &Config{ExamDate: "18/01/2026", Quiz: Quiz{ChapterCount: 1, MockCount: 1, Countdown: 1}}
	assert.Error(t, cfg.Validate())

	cfg.ExamDate = ""
	assert.NoError(t, cfg.Validate())

	cfg.Quiz.Countdown = 0
	assert.Error(t, cfg.Validate())
}
