package content

import "github.com/abhisek/revquiz/internal/llm"

// QuestionSetSchema constrains generated quiz questions.
var QuestionSetSchema = &llm.Schema{
	Name:        "question-set",
	Description: "A set of multiple-choice quiz questions on the Book of Revelation in Tamil",
	Definition: object(
		field("questions", array(object(
			field("question", str("The quiz question in Tamil")),
			field("options", stringList("Exactly 4 answer options in Tamil")),
			field("correctAnswerIndex", integer(0, 3, "Index of the correct option (0-3)")),
			field("scriptureReference", str("Verse reference, e.g. '1:3'")),
			field("chapter", integer(1, 22, "The chapter this question comes from (1-22)")),
		), "")),
	),
}

// ChapterContextSchema constrains generated chapter study material.
var ChapterContextSchema = &llm.Schema{
	Name:        "chapter-context",
	Description: "Study material for one chapter of the Book of Revelation in Tamil",
	Definition: object(
		field("title", str("A creative title for the chapter story in Tamil")),
		field("summary", str("A story-style summary of the chapter's events in Tamil")),
		field("keyVerses", stringList("2-3 key verses from the chapter in Tamil")),
		field("hints", stringList("3 memorable facts or takeaways about the chapter in Tamil")),
		field("flashcards", array(object(
			field("front", str("A symbol, term or question in Tamil")),
			field("back", str("Its meaning or answer in Tamil")),
		), "8-10 study flashcards in Tamil")),
		field("fullText", array(object(
			field("number", map[string]any{"type": "integer"}),
			field("text", map[string]any{"type": "string"}),
		), "The full chapter text verse by verse in Tamil (BSI)")),
		field("commentary", object(
			field("culturalContext", str("Historical and cultural background in Tamil")),
			field("interpretations", array(object(
				field("verseRef", str("Verse or range, e.g. '1-3'")),
				field("explanation", str("Theological interpretation in Tamil")),
				field("crossReferences", stringList("Supporting references elsewhere in the Bible")),
			), "")),
		)),
	),
}

type property struct {
	name   string
	schema map[string]any
}

func field(name string, schema map[string]any) property {
	return property{name: name, schema: schema}
}

// object builds an object schema in which every property is required, in
// the order given.
func object(props ...property) map[string]any {
	properties := make(map[string]any, len(props))
	required := make([]any, len(props))
	for i, p := range props {
		properties[p.name] = p.schema
		required[i] = p.name
	}
	return map[string]any{"type": "object", "properties": properties, "required": required}
}

func array(items map[string]any, description string) map[string]any {
	return described(map[string]any{"type": "array", "items": items}, description)
}

func stringList(description string) map[string]any {
	return array(map[string]any{"type": "string"}, description)
}

func str(description string) map[string]any {
	return described(map[string]any{"type": "string"}, description)
}

func integer(lo, hi int, description string) map[string]any {
	return described(map[string]any{"type": "integer", "minimum": lo, "maximum": hi}, description)
}

func described(s map[string]any, description string) map[string]any {
	if description != "" {
		s["description"] = description
	}
	return s
}
