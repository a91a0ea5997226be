// Package progress holds the learner state that outlives a single session:
// the daily streak and the mistake log.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/revision"
	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
	"github.com/abhisek/revquiz/internal/streak"
)

// HistoryRecorder appends completed sessions to the session history.
type HistoryRecorder interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Deps are the collaborators of State.
type Deps struct {
	KV      store.KV
	History HistoryRecorder // optional
	Logger  *zap.Logger
	Now     func() time.Time
}

// State is the process-wide learner state. It is loaded once at startup and
// only mutated through Complete and ClearMistakes.
type State struct {
	streak   *streak.Tracker
	mistakes *revision.Log
	history  HistoryRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// Load reads the streak and mistake log from the store.
func Load(ctx context.Context, deps Deps) *State {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &State{
		streak:   streak.LoadTracker(ctx, deps.KV, logger.Named("streak"), now()),
		mistakes: revision.Load(ctx, deps.KV, logger.Named("revision")),
		history:  deps.History,
		logger:   logger,
		now:      now,
	}
}

// Streak is the streak to display.
func (s *State) Streak() int {
	return s.streak.Current()
}

// Mistakes returns the mistake log in insertion order.
func (s *State) Mistakes() []revision.MistakeRecord {
	return s.mistakes.Records()
}

// Analysis analyzes the mistake log; nil when it is empty.
func (s *State) Analysis() *revision.Analysis {
	return revision.Analyze(s.mistakes.Records())
}

// ClearMistakes empties the mistake log.
func (s *State) ClearMistakes(ctx context.Context) error {
	return s.mistakes.Clear(ctx)
}

// Completion is what a finished session changed.
type Completion struct {
	Result      *session.Result
	NewMistakes []revision.MistakeRecord
	Streak      int
	// Err collects persistence failures. In-memory state is updated
	// regardless.
	Err error
}

// Complete records a finished session: its mistakes first, then the streak,
// then the history entry.
func (s *State) Complete(ctx context.Context, r *session.Result) Completion {
	c := Completion{Result: r}
	var errs []error

	c.NewMistakes = revision.FromResult(r)
	if err := s.mistakes.Append(ctx, c.NewMistakes); err != nil {
		errs = append(errs, err)
	}

	at := r.CompletedAt
	if at.IsZero() {
		at = s.now()
	}
	n, err := s.streak.Record(ctx, at)
	if err != nil {
		errs = append(errs, err)
	}
	c.Streak = n

	if s.history != nil {
		err := s.history.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:    r.SessionID,
			Mode:         r.Mode.String(),
			Chapter:      r.Chapter,
			Total:        r.Total(),
			Score:        r.Score,
			Mistakes:     len(c.NewMistakes),
			DurationSecs: int(r.Duration().Seconds()),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("record session history: %w", err))
		}
	}

	c.Err = errors.Join(errs...)
	if c.Err != nil {
		s.logger.Error("persist session completion",
			zap.String("session_id", r.SessionID),
			zap.Error(c.Err),
		)
	}
	s.logger.Info("session completed",
		zap.String("session_id", r.SessionID),
		zap.Stringer("mode", r.Mode),
		zap.Int("score", r.Score),
		zap.Int("total", r.Total()),
		zap.Int("mistakes", len(c.NewMistakes)),
		zap.Int("streak", c.Streak),
	)
	return c
}
