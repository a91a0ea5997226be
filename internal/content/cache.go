package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
)

// Cache stores serialized chapter context by key.
type Cache interface {
	// Get returns the cached bytes, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CachedProvider serves chapter context from a Cache and falls back to the
// wrapped Provider on a miss. Question sets are never cached, so every quiz
// gets fresh questions.
type CachedProvider struct {
	next   Provider
	cache  Cache
	logger *zap.Logger
	sf     singleflight.Group
}

// NewCachedProvider wraps next with cache. A nil logger discards output.
func NewCachedProvider(next Provider, cache Cache, logger *zap.Logger) *CachedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProvider{next: next, cache: cache, logger: logger}
}

func contextKey(chapter int) string {
	return "revquiz:context:" + strconv.Itoa(chapter)
}

// ChapterContext returns cached study material when present. Concurrent
// misses for the same chapter share one upstream call.
func (c *CachedProvider) ChapterContext(ctx context.Context, chapter int) (*ChapterContext, error) {
	if err := checkChapter(chapter); err != nil {
		return nil, err
	}
	key := contextKey(chapter)

	if cc, ok := c.lookup(ctx, key); ok {
		return cc, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		if cc, ok := c.lookup(ctx, key); ok {
			return cc, nil
		}
		cc, err := c.next.ChapterContext(ctx, chapter)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(cc)
		if err != nil {
			return nil, fmt.Errorf("%w: encode chapter %d context: %w", ErrFetch, chapter, err)
		}
		if err := c.cache.Set(ctx, key, data); err != nil {
			c.logger.Warn("chapter context cache write failed", zap.Int("chapter", chapter), zap.Error(err))
		}
		return cc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ChapterContext), nil
}

func (c *CachedProvider) lookup(ctx context.Context, key string) (*ChapterContext, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("chapter context cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var cc ChapterContext
	if err := json.Unmarshal(data, &cc); err != nil {
		c.logger.Warn("discarding corrupt cached chapter context", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &cc, true
}

// ChapterQuestions always calls through.
func (c *CachedProvider) ChapterQuestions(ctx context.Context, chapter, count int) ([]session.Question, error) {
	return c.next.ChapterQuestions(ctx, chapter, count)
}

// MockExamQuestions always calls through.
func (c *CachedProvider) MockExamQuestions(ctx context.Context, count int, style Style) ([]session.Question, error) {
	return c.next.MockExamQuestions(ctx, count, style)
}

// KVCache stores entries in a store.KV with an expiry envelope.
type KVCache struct {
	kv  store.KV
	ttl time.Duration
	now func() time.Time
}

// NewKVCache creates a KVCache. A non-positive ttl keeps entries forever.
func NewKVCache(kv store.KV, ttl time.Duration) *KVCache {
	return &KVCache{kv: kv, ttl: ttl, now: time.Now}
}

type kvEnvelope struct {
	ExpiresAt int64           `json:"expires_at,omitempty"`
	Value     json.RawMessage `json:"value"`
}

func (c *KVCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	var env kvEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, false, nil
	}
	if env.ExpiresAt > 0 && c.now().UnixMilli() >= env.ExpiresAt {
		return nil, false, nil
	}
	return env.Value, true, nil
}

func (c *KVCache) Set(ctx context.Context, key string, value []byte) error {
	env := kvEnvelope{Value: value}
	if c.ttl > 0 {
		env.ExpiresAt = c.now().Add(c.ttl).UnixMilli()
	}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, key, string(data))
}
