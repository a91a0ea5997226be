// Package content supplies chapter study material and question sets for the
// Book of Revelation.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/revquiz/internal/session"
)

var (
	// ErrFetch wraps every content retrieval failure.
	ErrFetch = errors.New("content fetch failed")

	// ErrEmptyQuestionSet is returned when no usable questions came back.
	ErrEmptyQuestionSet = errors.New("no questions generated")
)

// Purpose labels attached to LLM requests for event logging.
const (
	PurposeChapterContext   = "chapter-context"
	PurposeChapterQuestions = "chapter-questions"
	PurposeMockExam         = "mock-exam"
)

// Style selects the phrasing of mock exam questions.
type Style string

const (
	// StyleStandard asks for regular multiple-choice questions.
	StyleStandard Style = "standard"
	// StyleAudio asks for short, direct questions suited to being read
	// aloud under a countdown.
	StyleAudio Style = "audio"
)

// Provider supplies study material and questions. Calls block and may fail.
type Provider interface {
	ChapterContext(ctx context.Context, chapter int) (*ChapterContext, error)
	ChapterQuestions(ctx context.Context, chapter, count int) ([]session.Question, error)
	MockExamQuestions(ctx context.Context, count int, style Style) ([]session.Question, error)
}

// Verse is one numbered verse of the chapter text.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Flashcard is a study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Interpretation explains a verse or range of verses.
type Interpretation struct {
	VerseRef        string   `json:"verseRef"`
	Explanation     string   `json:"explanation"`
	CrossReferences []string `json:"crossReferences"`
}

// Commentary is the theological commentary on a chapter.
type Commentary struct {
	CulturalContext string           `json:"culturalContext"`
	Interpretations []Interpretation `json:"interpretations"`
}

// ChapterContext is the study material for one chapter.
type ChapterContext struct {
	Chapter    int         `json:"chapter"`
	Title      string      `json:"title"`
	Summary    string      `json:"summary"`
	KeyVerses  []string    `json:"keyVerses"`
	Hints      []string    `json:"hints"`
	Flashcards []Flashcard `json:"flashcards"`
	FullText   []Verse     `json:"fullText"`
	Commentary Commentary  `json:"commentary"`
}

// ValidChapter reports whether chapter exists in the book.
func ValidChapter(chapter int) bool {
	return chapter >= 1 && chapter <= session.ChapterCount
}

func checkChapter(chapter int) error {
	if !ValidChapter(chapter) {
		return fmt.Errorf("%w: chapter %d out of range 1-%d", ErrFetch, chapter, session.ChapterCount)
	}
	return nil
}
