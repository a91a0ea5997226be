package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_RequiresEveryField(t *testing.T) {
	s := object(field("b", str("")), field("a", integer(0, 3, "idx")))
	assert.Equal(t, []any{"b", "a"}, s["required"])

	props := s["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string"}, props["b"], "empty descriptions are omitted")
	assert.Equal(t, map[string]any{"type": "integer", "minimum": 0, "maximum": 3, "description": "idx"}, props["a"])
}

func TestQuestionSetSchema(t *testing.T) {
	def := QuestionSetSchema.Definition
	assert.Equal(t, []any{"questions"}, def["required"])

	questions := def["properties"].(map[string]any)["questions"].(map[string]any)
	require.Equal(t, "array", questions["type"])
	item := questions["items"].(map[string]any)
	assert.Equal(t,
		[]any{"question", "options", "correctAnswerIndex", "scriptureReference", "chapter"},
		item["required"])

	chapter := item["properties"].(map[string]any)["chapter"].(map[string]any)
	assert.Equal(t, 1, chapter["minimum"])
	assert.Equal(t, 22, chapter["maximum"])
}

func TestChapterContextSchema(t *testing.T) {
	def := ChapterContextSchema.Definition
	assert.Equal(t,
		[]any{"title", "summary", "keyVerses", "hints", "flashcards", "fullText", "commentary"},
		def["required"])

	commentary := def["properties"].(map[string]any)["commentary"].(map[string]any)
	assert.Equal(t, []any{"culturalContext", "interpretations"}, commentary["required"])
}
