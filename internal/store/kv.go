package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/revquiz/ent"
	"github.com/abhisek/revquiz/ent/kventry"
)

type kvStore struct {
	client *ent.Client
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	e, err := s.client.KVEntry.Query().
		Where(kventry.Key(key)).
		Only(ctx)
	if ent.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return e.Data, true, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	err := s.client.KVEntry.Create().
		SetKey(key).
		SetData(value).
		SetUpdatedAt(time.Now()).
		OnConflictColumns(kventry.FieldKey).
		UpdateNewValues().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *kvStore) Remove(ctx context.Context, key string) error {
	if _, err := s.client.KVEntry.Delete().Where(kventry.Key(key)).Exec(ctx); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
