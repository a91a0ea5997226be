package revision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/store"
)

// Key is the store key holding the serialized mistake log.
const Key = "revquiz_mistakes"

// ErrParse is returned when the stored mistake log cannot be decoded.
var ErrParse = errors.New("parse mistake log")

// Parse decodes a serialized mistake log.
func Parse(raw string) ([]MistakeRecord, error) {
	var records []MistakeRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return records, nil
}

// Log is the in-memory mistake log mirrored to the store.
type Log struct {
	kv      store.KV
	logger  *zap.Logger
	records []MistakeRecord
}

// Load reads the mistake log from kv. A missing key yields an empty log;
// an unreadable or corrupt log is logged and treated as empty.
func Load(ctx context.Context, kv store.KV, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Log{kv: kv, logger: logger}

	raw, ok, err := kv.Get(ctx, Key)
	if err != nil {
		logger.Error("load mistake log", zap.Error(err))
		return l
	}
	if !ok {
		return l
	}

	records, err := Parse(raw)
	if err != nil {
		logger.Error("discarding corrupt mistake log", zap.Error(err))
		return l
	}
	l.records = records
	return l
}

// Records returns a copy of the log in insertion order.
func (l *Log) Records() []MistakeRecord {
	out := make([]MistakeRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len is the number of records in the log.
func (l *Log) Len() int {
	return len(l.records)
}

// Append adds records to the log and persists the whole log. The in-memory
// log keeps the records even if persisting fails.
func (l *Log) Append(ctx context.Context, records []MistakeRecord) error {
	if len(records) == 0 {
		return nil
	}
	l.records = append(l.records, records...)

	data, err := json.Marshal(l.records)
	if err != nil {
		return fmt.Errorf("encode mistake log: %w", err)
	}
	if err := l.kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("save mistake log: %w", err)
	}
	return nil
}

// Clear empties the log and removes it from the store.
func (l *Log) Clear(ctx context.Context) error {
	l.records = nil
	if err := l.kv.Remove(ctx, Key); err != nil {
		return fmt.Errorf("clear mistake log: %w", err)
	}
	return nil
}
