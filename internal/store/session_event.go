package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/revquiz/ent"
	"github.com/abhisek/revquiz/ent/predicate"
	"github.com/abhisek/revquiz/ent/sessionevent"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.appendEvent(ctx, func(tx *ent.Tx, seq int64, at time.Time) error {
		return tx.SessionEvent.Create().
			SetSequence(seq).
			SetTimestamp(at).
			SetSessionID(data.SessionID).
			SetMode(data.Mode).
			SetChapter(data.Chapter).
			SetTotal(data.Total).
			SetScore(data.Score).
			SetMistakes(data.Mistakes).
			SetDurationSecs(data.DurationSecs).
			Exec(ctx)
	})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	q := r.client.SessionEvent.Query().
		Where(eventFilters[predicate.SessionEvent](opts)...).
		Order(sessionevent.BySequence(entsql.OrderDesc()))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}

	out := make([]SessionEvent, len(rows))
	for i, e := range rows {
		out[i] = SessionEvent{
			ID:        e.ID,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp.UTC(),
			SessionEventData: SessionEventData{
				SessionID:    e.SessionID,
				Mode:         e.Mode,
				Chapter:      e.Chapter,
				Total:        e.Total,
				Score:        e.Score,
				Mistakes:     e.Mistakes,
				DurationSecs: e.DurationSecs,
			},
		}
	}
	return out, nil
}
