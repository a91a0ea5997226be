// Package streak tracks the consecutive-day engagement counter.
package streak

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/store"
)

const (
	// CountKey and DateKey are the store keys of the streak state.
	CountKey = "revquiz_streak"
	DateKey  = "revquiz_last_date"

	dateLayout = "2006-01-02"
)

// Day truncates t to its local calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func yesterday(today time.Time) time.Time {
	return Day(today).AddDate(0, 0, -1)
}

// Update applies one completed session played on today. A zero last means
// no prior play. Playing twice on the same day leaves the streak unchanged.
func Update(today, last time.Time, count int) (int, time.Time) {
	switch {
	case !last.IsZero() && sameDay(last, today):
		return count, Day(last)
	case !last.IsZero() && sameDay(last, yesterday(today)):
		return count + 1, Day(today)
	default:
		return 1, Day(today)
	}
}

// Active reports whether a streak last extended on last is still alive on
// today, i.e. last play was today or yesterday.
func Active(today, last time.Time) bool {
	if last.IsZero() {
		return false
	}
	return sameDay(last, today) || sameDay(last, yesterday(today))
}

// State is the persisted streak.
type State struct {
	Count      int
	LastPlayed time.Time
}

// Tracker keeps the streak in memory and mirrors it to the store.
type Tracker struct {
	kv     store.KV
	logger *zap.Logger
	state  State
}

// LoadTracker reads the streak from kv. A streak whose last play is older
// than yesterday is broken: it reads as zero and the stored count is reset.
func LoadTracker(ctx context.Context, kv store.KV, logger *zap.Logger, now time.Time) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{kv: kv, logger: logger}

	countRaw, okCount, err := kv.Get(ctx, CountKey)
	if err != nil {
		logger.Error("load streak count", zap.Error(err))
		return t
	}
	dateRaw, okDate, err := kv.Get(ctx, DateKey)
	if err != nil {
		logger.Error("load streak date", zap.Error(err))
		return t
	}
	if !okCount || !okDate {
		return t
	}

	count, err := strconv.Atoi(countRaw)
	if err != nil {
		logger.Warn("invalid stored streak count", zap.String("value", countRaw), zap.Error(err))
		count = 0
	}
	last, err := time.ParseInLocation(dateLayout, dateRaw, now.Location())
	if err != nil {
		logger.Warn("invalid stored streak date", zap.String("value", dateRaw), zap.Error(err))
		last = time.Time{}
	}
	t.state.LastPlayed = last

	if Active(now, last) {
		t.state.Count = count
		return t
	}

	if count != 0 {
		if err := kv.Set(ctx, CountKey, "0"); err != nil {
			logger.Error("reset broken streak", zap.Error(err))
		}
	}
	return t
}

// Current is the streak to display.
func (t *Tracker) Current() int {
	return t.state.Count
}

// State returns the in-memory streak state.
func (t *Tracker) State() State {
	return t.state
}

// Record applies a completed session played at now and persists the result.
// The in-memory streak is updated even if persisting fails.
func (t *Tracker) Record(ctx context.Context, now time.Time) (int, error) {
	count, day := Update(now, t.state.LastPlayed, t.state.Count)
	if count == t.state.Count && sameDay(day, t.state.LastPlayed) {
		return count, nil
	}
	t.state = State{Count: count, LastPlayed: day}

	if err := t.kv.Set(ctx, CountKey, strconv.Itoa(count)); err != nil {
		return count, fmt.Errorf("save streak count: %w", err)
	}
	if err := t.kv.Set(ctx, DateKey, day.Format(dateLayout)); err != nil {
		return count, fmt.Errorf("save streak date: %w", err)
	}
	t.logger.Debug("streak updated", zap.Int("count", count), zap.Time("day", day))
	return count, nil
}
