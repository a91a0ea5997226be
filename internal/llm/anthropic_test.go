package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicServer(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"}, option.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(w http.ResponseWriter, status int, typ string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": typ, "message": typ},
	})
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var body map[string]any
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"name":"Ada","age":36}`, "end_turn"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a Bible study tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate."}},
		Schema:    testSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"Ada","age":36}`, string(resp.Content))
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.EqualValues(t, 256, body["max_tokens"])
}

func TestAnthropicProvider_InvalidJSON(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"name":"Ada"}`, "end_turn"))
	})

	_, err := p.Generate(context.Background(), Request{Schema: testSchema(), MaxTokens: 64})
	assert.True(t, IsKind(err, KindInvalidResponse), "err = %v", err)
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"name":"A`, "max_tokens"))
	})

	_, err := p.Generate(context.Background(), Request{Schema: testSchema(), MaxTokens: 8})
	assert.True(t, IsKind(err, KindTruncated), "err = %v", err)
}

func TestAnthropicProvider_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		typ    string
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, "rate_limit_error", KindRateLimited},
		{http.StatusUnauthorized, "authentication_error", KindAuth},
		{http.StatusInternalServerError, "api_error", KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			calls := 0
			p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Retry-After", "3")
				anthropicError(w, tt.status, tt.typ)
			})

			_, err := p.Generate(context.Background(), Request{MaxTokens: 16})
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.want), "err = %v", err)
			assert.Equal(t, 1, calls, "sdk retries must be off")
		})
	}
}

func TestAnthropicProvider_RetryAfter(t *testing.T) {
	p := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		anthropicError(w, http.StatusTooManyRequests, "rate_limit_error")
	})

	_, err := p.Generate(context.Background(), Request{MaxTokens: 16})
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 7*time.Second, e.RetryAfter)
	assert.Equal(t, "anthropic", e.Provider)
}

func TestAnthropicProvider_MissingKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.ErrorIs(t, err, errMissingKey)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicAliases))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicAliases))
	assert.Equal(t, "gemini-2.5-flash-lite", resolveModel("gemini-lite", geminiAliases))
}
