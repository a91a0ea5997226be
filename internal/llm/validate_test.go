package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	schema := testSchema()
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"name":"Alice","age":10,"grade":"A"}`, true},
		{"optional omitted", `{"name":"Bob","age":8}`, true},
		{"missing required", `{"name":"Charlie"}`, false},
		{"wrong type", `{"name":"Dan","age":"ten"}`, false},
		{"below minimum", `{"name":"Eve","age":-1}`, false},
		{"not in enum", `{"name":"Fay","age":9,"grade":"Z"}`, false},
		{"not json", `name: Gus`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(schema, json.RawMessage(tt.raw))
			if tt.valid {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, KindInvalidResponse, err.Kind)
			assert.Equal(t, tt.raw, string(err.Content))
		})
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	schema := testSchema()
	a, err := compileSchema(schema)
	require.NoError(t, err)
	b, err := compileSchema(schema)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		`{"a":1}`:                 `{"a":1}`,
		"  {\"a\":1}\n":           `{"a":1}`,
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```\n":   `{"a":1}`,
		"```{\"a\":1}```":         `{"a":1}`,
	}
	for in, want := range tests {
		assert.Equal(t, want, string(stripCodeFence(json.RawMessage(in))), "input %q", in)
	}
}

func TestFinishResponse(t *testing.T) {
	t.Run("no schema passes raw text", func(t *testing.T) {
		got, err := finishResponse("p", Request{}, "plain words", StopMaxTokens)
		require.NoError(t, err)
		assert.Equal(t, "plain words", string(got))
	})

	t.Run("truncated structured output", func(t *testing.T) {
		_, err := finishResponse("p", Request{Schema: testSchema()}, `{"name":"A`, StopMaxTokens)
		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, KindTruncated, e.Kind)
		assert.Equal(t, "p", e.Provider)
		assert.Equal(t, `{"name":"A`, string(e.Content))
	})

	t.Run("fenced valid output", func(t *testing.T) {
		got, err := finishResponse("p", Request{Schema: testSchema()}, "```json\n{\"name\":\"A\",\"age\":1}\n```", StopEnd)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"A","age":1}`, string(got))
	})

	t.Run("invalid output names provider", func(t *testing.T) {
		_, err := finishResponse("gemini", Request{Schema: testSchema()}, `{}`, StopEnd)
		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, KindInvalidResponse, e.Kind)
		assert.Equal(t, "gemini", e.Provider)
	})
}
