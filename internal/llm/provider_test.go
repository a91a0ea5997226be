package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"b":2}`), StopReason: StopMaxTokens})

	ctx := WithPurpose(context.Background(), "chapter-context")
	first, err := mock.Generate(ctx, Request{System: "sys"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(first.Content))
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, StopEnd, first.StopReason)
	assert.Equal(t, "mock", first.Model)

	second, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, second.StopReason)

	_, err = mock.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindUnavailable))
	assert.ErrorIs(t, err, errQueueEmpty)

	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, []string{"chapter-context", "unspecified", "unspecified"}, mock.Purposes)
}

func TestMockProvider_QueuedError(t *testing.T) {
	boom := errors.New("boom")
	mock := NewMockProvider(MockResponse{Err: boom})
	_, err := mock.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestPurposeAndAttempt(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unspecified", PurposeFrom(ctx))
	assert.Equal(t, 1, attemptFrom(ctx))

	ctx = withAttempt(WithPurpose(ctx, "mock-exam"), 2)
	assert.Equal(t, "mock-exam", PurposeFrom(ctx))
	assert.Equal(t, 2, attemptFrom(ctx))
	assert.Equal(t, "unspecified", PurposeFrom(WithPurpose(ctx, "")))
}

func TestError(t *testing.T) {
	cause := errors.New("connection reset")
	e := &Error{Kind: KindRateLimited, Provider: "gemini", RetryAfter: 2 * time.Second, Err: cause}

	assert.Equal(t, "gemini: rate limited (retry after 2s): connection reset", e.Error())
	assert.ErrorIs(t, e, cause)
	assert.True(t, IsKind(e, KindRateLimited))
	assert.False(t, IsKind(e, KindAuth))
	assert.False(t, IsKind(cause, KindRateLimited))
	assert.Equal(t, "truncated", KindTruncated.String())
}

func TestErrorFromStatus(t *testing.T) {
	header := map[string][]string{"Retry-After": {"5"}}

	e := errorFromStatus("openai", 429, header, nil)
	assert.Equal(t, KindRateLimited, e.Kind)
	assert.Equal(t, 5*time.Second, e.RetryAfter)

	assert.Equal(t, KindAuth, errorFromStatus("openai", 401, nil, nil).Kind)
	assert.Equal(t, KindAuth, errorFromStatus("openai", 403, nil, nil).Kind)
	assert.Equal(t, KindUnavailable, errorFromStatus("openai", 503, nil, nil).Kind)
	assert.Equal(t, KindUnavailable, errorFromStatus("openai", 400, nil, nil).Kind)
	assert.Zero(t, parseRetryAfter(map[string][]string{"Retry-After": {"Wed, 21 Oct 2015 07:28:00 GMT"}}))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock", Config{Provider: "mock"}, false},
		{"unsupported", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.GreaterOrEqual(t, cfg.Retry.MaxAttempts, 1)
	assert.Positive(t, cfg.Timeout)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock", Timeout: time.Second}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
	assert.IsType(t, &TimeoutProvider{}, p)

	_, err = NewProvider(context.Background(), Config{Provider: "llama"}, nil, nil)
	assert.ErrorContains(t, err, "llama")

	_, err = NewProvider(context.Background(), Config{Provider: "openai"}, nil, nil)
	assert.ErrorIs(t, err, errMissingKey)
}

func TestConfig_DetectProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ""
	cfg.DetectProvider()
	assert.Equal(t, "gemini", cfg.Provider)

	cfg.Provider = ""
	cfg.Anthropic.APIKey = "a"
	cfg.OpenRouter.APIKey = "o"
	cfg.DetectProvider()
	assert.Equal(t, "anthropic", cfg.Provider)

	cfg.SetModel("claude-sonnet")
	assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)
	cfg.SetModel("")
	assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)

	cfg.Provider = "mock"
	cfg.SetModel("ignored")
	assert.NoError(t, cfg.Validate())
}
