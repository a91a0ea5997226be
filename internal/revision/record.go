// Package revision records incorrectly answered questions into a durable
// mistake log and analyzes it by chapter.
package revision

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/revquiz/internal/session"
)

// UnknownAnswerLabel is shown as the learner's answer when no option text
// exists for it, as with self-graded audio questions.
const UnknownAnswerLabel = "தெரியவில்லை (Skipped/Unknown)"

// MistakeRecord is one incorrectly answered question. It is immutable after
// creation.
type MistakeRecord struct {
	ID            string    `json:"id" yaml:"id"`
	Question      string    `json:"question" yaml:"question"`
	UserAnswer    string    `json:"userAnswer" yaml:"user_answer"`
	CorrectAnswer string    `json:"correctAnswer" yaml:"correct_answer"`
	Reference     string    `json:"scriptureReference" yaml:"reference"`
	Chapter       int       `json:"chapter" yaml:"chapter"`
	Date          time.Time `json:"date" yaml:"date"`
}

// DeriveMistakes builds one record per incorrectly answered question.
// Mock exams take the chapter from each question; chapter quizzes use the
// session chapter.
func DeriveMistakes(questions []session.Question, answers []int, mode session.Mode, chapter int, at time.Time) []MistakeRecord {
	correct := session.Correctness(questions, answers)

	var out []MistakeRecord
	for i, q := range questions {
		if correct[i] {
			continue
		}

		userAnswer := UnknownAnswerLabel
		if mode != session.ModeAudioMock && i < len(answers) {
			if text, ok := q.OptionText(answers[i]); ok {
				userAnswer = text
			}
		}

		ch := chapter
		if mode.IsMock() {
			ch = q.Chapter
		}

		out = append(out, MistakeRecord{
			ID:            uuid.NewString(),
			Question:      q.Text,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectOption(),
			Reference:     q.Reference,
			Chapter:       ch,
			Date:          at,
		})
	}
	return out
}

// FromResult derives the mistakes of a completed session.
func FromResult(r *session.Result) []MistakeRecord {
	return DeriveMistakes(r.Questions, r.Answers, r.Mode, r.Chapter, r.CompletedAt)
}
