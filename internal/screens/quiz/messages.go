package quiz

import (
	"github.com/abhisek/revquiz/internal/session"
)

// questionsLoadedMsg is sent when the question set fetch finishes.
type questionsLoadedMsg struct {
	Questions []session.Question
	Err       error
}

// audioEventMsg carries an event from the audio lifecycle into the loop.
type audioEventMsg session.AudioEvent
