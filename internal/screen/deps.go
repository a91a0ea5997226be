package screen

import (
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/content"
	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
	"github.com/abhisek/revquiz/internal/streak"
)

// Deps are the services screens are built from.
type Deps struct {
	Content   content.Provider
	Progress  *progress.State
	EventRepo store.EventRepo // optional
	Speaker   session.Speaker
	Logger    *zap.Logger

	ChapterCount int // questions per chapter quiz
	MockCount    int // questions per mock exam
	Countdown    int // seconds per audio question
	ExamDay      time.Time
	Now          func() time.Time
}

// Clock returns the configured time source.
func (d *Deps) Clock() func() time.Time {
	if d.Now == nil {
		return time.Now
	}
	return d.Now
}

// Log returns the configured logger or a no-op one.
func (d *Deps) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// DaysToExam is the number of calendar days until the exam, or -1 when no
// exam date is set or it has passed.
func (d *Deps) DaysToExam() int {
	if d.ExamDay.IsZero() {
		return -1
	}
	today := streak.Day(d.Clock()())
	exam := streak.Day(d.ExamDay)
	if exam.Before(today) {
		return -1
	}
	return int(exam.Sub(today).Hours()+12) / 24
}
