package session

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// OptionCount is the number of choices every question carries.
	OptionCount = 4

	// Unknown is the answer recorded for a self-graded miss in audio mode.
	// It never matches a valid option index.
	Unknown = -1

	// ChapterCount is the number of chapters questions can be drawn from.
	ChapterCount = 22
)

// ErrInvalidQuestion is returned when a question fails validation.
var ErrInvalidQuestion = errors.New("invalid question")

// Question is a single multiple-choice question. It is immutable once fetched.
type Question struct {
	ID           int      `json:"id" yaml:"id"`
	Text         string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctAnswerIndex" yaml:"correct_index"`
	Reference    string   `json:"scriptureReference" yaml:"reference"`

	// Chapter is set for mock exam questions, which span chapters.
	// Zero means unknown.
	Chapter int `json:"chapter,omitempty" yaml:"chapter,omitempty"`
}

// Validate checks the structural invariants of a question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty question text", ErrInvalidQuestion)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: expected %d options, got %d", ErrInvalidQuestion, OptionCount, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrInvalidQuestion, i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return fmt.Errorf("%w: correct index %d out of range", ErrInvalidQuestion, q.CorrectIndex)
	}
	if q.Chapter < 0 || q.Chapter > ChapterCount {
		return fmt.Errorf("%w: chapter %d out of range", ErrInvalidQuestion, q.Chapter)
	}
	return nil
}

// OptionText returns the text of option idx, or false when idx is not a
// valid option.
func (q Question) OptionText(idx int) (string, bool) {
	if idx < 0 || idx >= len(q.Options) {
		return "", false
	}
	return q.Options[idx], true
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	s, _ := q.OptionText(q.CorrectIndex)
	return s
}
