package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func openAIServer(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return p
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var body struct {
		Model          string `json:"model"`
		Messages       []map[string]any
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name   string         `json:"name"`
				Strict bool           `json:"strict"`
				Schema map[string]any `json:"schema"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("```json\n{\"name\":\"Ada\",\"age\":36}\n```", "stop"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "sys",
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		Schema:    testSchema(),
		MaxTokens: 128,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"Ada","age":36}`, string(resp.Content))
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)

	assert.Equal(t, "gpt-4o-mini", body.Model)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0]["role"])
	assert.Equal(t, "json_schema", body.ResponseFormat.Type)
	assert.Equal(t, "test-object", body.ResponseFormat.JSONSchema.Name)
	assert.True(t, body.ResponseFormat.JSONSchema.Strict)
	assert.Equal(t, false, body.ResponseFormat.JSONSchema.Schema["additionalProperties"])
}

func TestOpenAIProvider_LengthIsTruncated(t *testing.T) {
	p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"name":`, "length"))
	})

	_, err := p.Generate(context.Background(), Request{Schema: testSchema()})
	assert.True(t, IsKind(err, KindTruncated), "err = %v", err)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := chatCompletion("", "stop")
		resp["choices"] = []any{}
		json.NewEncoder(w).Encode(resp)
	})

	_, err := p.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindInvalidResponse), "err = %v", err)
}

func TestOpenAIProvider_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusUnauthorized, KindAuth},
		{http.StatusBadGateway, KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "error", "message": "nope"},
				})
			})

			_, err := p.Generate(context.Background(), Request{})
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.want), "err = %v", err)
		})
	}
}

func TestStrictSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type":     "array",
				"minItems": 4,
				"items": map[string]any{
					"type":       "object",
					"properties": map[string]any{"n": map[string]any{"type": "integer", "minimum": 0}},
				},
			},
		},
	}

	got := strictSchema(def)

	assert.Equal(t, false, got["additionalProperties"])
	arr := got["properties"].(map[string]any)["items"].(map[string]any)
	assert.NotContains(t, arr, "minItems")
	assert.NotContains(t, arr, "additionalProperties")
	obj := arr["items"].(map[string]any)
	assert.Equal(t, false, obj["additionalProperties"])
	assert.NotContains(t, obj["properties"].(map[string]any)["n"], "minimum")

	assert.NotContains(t, def, "additionalProperties", "input must not be modified")
	assert.Contains(t, def["properties"].(map[string]any)["items"], "minItems")
}
