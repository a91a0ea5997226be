package session

import "fmt"

// Mode selects the rules a session runs under.
type Mode int

const (
	// ModeChapterQuiz asks questions from a single chapter.
	ModeChapterQuiz Mode = iota
	// ModeStandard is a cross-chapter multiple-choice mock exam.
	ModeStandard
	// ModeAudioMock is a cross-chapter mock exam where each question is read
	// aloud under a countdown and the learner grades themselves.
	ModeAudioMock
)

func (m Mode) String() string {
	switch m {
	case ModeChapterQuiz:
		return "chapter"
	case ModeStandard:
		return "standard"
	case ModeAudioMock:
		return "audio"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Label is the human-readable name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeChapterQuiz:
		return "Chapter Quiz"
	case ModeStandard:
		return "Mock Exam"
	case ModeAudioMock:
		return "Audio Mock Exam"
	default:
		return m.String()
	}
}

// IsMock reports whether questions span multiple chapters.
func (m Mode) IsMock() bool {
	return m == ModeStandard || m == ModeAudioMock
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "chapter":
		return ModeChapterQuiz, nil
	case "standard":
		return ModeStandard, nil
	case "audio":
		return ModeAudioMock, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
