package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/revquiz/ent"
)

// sequenceRow is the ID of the only EventSequence row.
const sequenceRow = 1

// Column names contributed by the event mixin.
const (
	fieldSequence  = "sequence"
	fieldTimestamp = "timestamp"
)

// eventRepo implements EventRepo. Session and LLM events live in separate
// tables but share one sequence so that history can be merged in order.
type eventRepo struct {
	mu     sync.Mutex // serializes sequence allocation within the process
	client *ent.Client
	now    func() time.Time
}

// appendEvent allocates the next sequence number and runs insert in the same
// transaction, so a failed insert never leaves a gap.
func (r *eventRepo) appendEvent(ctx context.Context, insert func(tx *ent.Tx, seq int64, at time.Time) error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	counter, err := tx.EventSequence.UpdateOneID(sequenceRow).AddNextVal(1).Save(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if err = insert(tx, counter.NextVal-1, r.now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

// eventFilters turns the sequence and time bounds of opts into predicates for
// any table carrying the event mixin.
func eventFilters[P ~func(*entsql.Selector)](opts QueryOpts) []P {
	var ps []P
	if opts.After > 0 {
		ps = append(ps, P(entsql.FieldGT(fieldSequence, opts.After)))
	}
	if opts.Before > 0 {
		ps = append(ps, P(entsql.FieldLT(fieldSequence, opts.Before)))
	}
	if !opts.From.IsZero() {
		ps = append(ps, P(entsql.FieldGTE(fieldTimestamp, opts.From.UTC())))
	}
	if !opts.To.IsZero() {
		ps = append(ps, P(entsql.FieldLTE(fieldTimestamp, opts.To.UTC())))
	}
	return ps
}
