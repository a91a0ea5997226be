package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string", "description": "who"},
			"age":   map[string]any{"type": "integer", "minimum": 0, "maximum": 120},
			"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			"scores": map[string]any{
				"type":     "array",
				"minItems": 4,
				"maxItems": 4,
				"items":    map[string]any{"type": "number"},
			},
		},
		"required": []string{"name", "age"},
	}

	s := geminiSchema(def)

	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, []string{"name", "age"}, s.Required)
	assert.Equal(t, []string{"name", "age"}, s.PropertyOrdering)

	name := s.Properties["name"]
	assert.Equal(t, genai.TypeString, name.Type)
	assert.Equal(t, "who", name.Description)

	age := s.Properties["age"]
	assert.Equal(t, genai.TypeInteger, age.Type)
	require.NotNil(t, age.Minimum)
	require.NotNil(t, age.Maximum)
	assert.Equal(t, 0.0, *age.Minimum)
	assert.Equal(t, 120.0, *age.Maximum)

	assert.Equal(t, []string{"A", "B", "C"}, s.Properties["grade"].Enum)

	scores := s.Properties["scores"]
	assert.Equal(t, genai.TypeArray, scores.Type)
	assert.Equal(t, genai.TypeNumber, scores.Items.Type)
	require.NotNil(t, scores.MinItems)
	assert.Equal(t, int64(4), *scores.MinItems)
	assert.Equal(t, int64(4), *scores.MaxItems)
}

func TestGeminiSchema_UnknownTypeIsString(t *testing.T) {
	assert.Equal(t, genai.TypeString, geminiSchema(map[string]any{"type": "null"}).Type)
	assert.Nil(t, geminiSchema(map[string]any{}).Properties)
}

func TestGeminiConfig(t *testing.T) {
	conf := geminiConfig(Request{System: "sys", Temperature: 0.4, MaxTokens: 512, Schema: testSchema()})

	assert.Equal(t, int32(512), conf.MaxOutputTokens)
	require.NotNil(t, conf.Temperature)
	assert.InDelta(t, 0.4, *conf.Temperature, 1e-6)
	require.NotNil(t, conf.SystemInstruction)
	assert.Equal(t, "sys", conf.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", conf.ResponseMIMEType)
	assert.NotNil(t, conf.ResponseSchema)

	plain := geminiConfig(Request{})
	assert.Nil(t, plain.Temperature)
	assert.Nil(t, plain.SystemInstruction)
	assert.Nil(t, plain.ResponseSchema)
}

func TestClassifyGemini(t *testing.T) {
	err := classifyGemini(genai.APIError{Code: 429, Message: "quota"})
	assert.True(t, IsKind(err, KindRateLimited), "err = %v", err)

	err = classifyGemini(genai.APIError{Code: 403})
	assert.True(t, IsKind(err, KindAuth), "err = %v", err)

	err = classifyGemini(context.DeadlineExceeded)
	assert.True(t, IsKind(err, KindUnavailable))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewGeminiProvider_MissingKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.ErrorIs(t, err, errMissingKey)
}
