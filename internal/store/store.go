// Package store persists progress, session history and LLM request events in
// a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/revquiz/ent"
	"github.com/abhisek/revquiz/ent/eventsequence"

	_ "modernc.org/sqlite"
)

// Single-user desktop settings: WAL so reads never block the writer.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
	"PRAGMA synchronous = NORMAL",
}

// Store is an open database.
type Store struct {
	db     *sql.DB
	client *ent.Client
	events *eventRepo
}

// Open opens (creating if needed) the database at path and migrates its
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	ctx := context.Background()
	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	client := ent.NewClient(ent.Driver(entsql.OpenDB(dialect.SQLite, db)))
	if err := client.Schema.Create(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	if err := seedSequence(ctx, client); err != nil {
		client.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		client: client,
		events: &eventRepo{client: client, now: time.Now},
	}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// seedSequence creates the counter row on first open.
func seedSequence(ctx context.Context, client *ent.Client) error {
	err := client.EventSequence.Create().
		SetID(sequenceRow).
		SetNextVal(1).
		OnConflictColumns(eventsequence.FieldID).
		Ignore().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// DB exposes the raw handle for diagnostics.
func (s *Store) DB() *sql.DB { return s.db }

// Client returns the underlying ent client.
func (s *Store) Client() *ent.Client { return s.client }

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) KV() KV { return &kvStore{client: s.client} }

func (s *Store) EventRepo() EventRepo { return s.events }

// Reset deletes progress, history and LLM events in one transaction. The
// event sequence keeps counting.
func (s *Store) Reset(ctx context.Context) (err error) {
	tx, err := s.client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.KVEntry.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	if _, err = tx.SessionEvent.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("clear session events: %w", err)
	}
	if _, err = tx.LLMRequestEvent.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("clear llm events: %w", err)
	}
	return tx.Commit()
}

// DefaultDBPath returns $REVQUIZ_DB if set, otherwise revquiz/revquiz.db under
// the XDG data directory. The parent directory is created.
func DefaultDBPath() (string, error) {
	p := os.Getenv("REVQUIZ_DB")
	if p == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		p = filepath.Join(base, "revquiz", "revquiz.db")
	}
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
