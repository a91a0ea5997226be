package session

import (
	"math"
	"time"
)

// Result is the immutable outcome of a completed session.
type Result struct {
	SessionID   string
	Mode        Mode
	Chapter     int
	Questions   []Question
	Answers     []int
	Score       int
	Correct     []bool
	StartedAt   time.Time
	CompletedAt time.Time
}

// Total is the number of questions in the session.
func (r *Result) Total() int {
	return len(r.Questions)
}

// Incorrect is the number of questions answered wrongly.
func (r *Result) Incorrect() int {
	return r.Total() - r.Score
}

// Percent is the score as a rounded percentage.
func (r *Result) Percent() int {
	if r.Total() == 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.Total()) * 100))
}

// Duration is the wall-clock time from start to completion.
func (r *Result) Duration() time.Duration {
	if r.StartedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// Message returns the encouragement line for the score band.
func (r *Result) Message() string {
	p := r.Percent()
	switch {
	case p >= 90:
		return "அற்புதம்! மிகச் சிறப்பான அறிவு."
	case p >= 70:
		return "நன்று! நீங்கள் நன்றாக செய்திருக்கிறீர்கள்."
	case p >= 50:
		return "பரவாயில்லை, இன்னும் முயற்சி செய்யவும்."
	default:
		return "மேலும் படிக்கவும்."
	}
}
