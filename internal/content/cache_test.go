package content

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/revquiz/internal/session"
	"github.com/abhisek/revquiz/internal/store"
)

type countingProvider struct {
	contextCalls  atomic.Int32
	questionCalls atomic.Int32
	delay         time.Duration
	err           error
}

func (p *countingProvider) ChapterContext(_ context.Context, chapter int) (*ChapterContext, error) {
	p.contextCalls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return nil, p.err
	}
	return &ChapterContext{Chapter: chapter, Title: "title", Hints: []string{"h"}}, nil
}

func (p *countingProvider) ChapterQuestions(_ context.Context, chapter, _ int) ([]session.Question, error) {
	p.questionCalls.Add(1)
	return []session.Question{{Text: "q", Options: []string{"a", "b", "c", "d"}, Chapter: chapter}}, nil
}

func (p *countingProvider) MockExamQuestions(context.Context, int, Style) ([]session.Question, error) {
	p.questionCalls.Add(1)
	return nil, nil
}

func TestCachedProvider_KV(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{}
	c := NewCachedProvider(next, NewKVCache(store.NewMemoryKV(), time.Hour), nil)

	first, err := c.ChapterContext(ctx, 7)
	require.NoError(t, err)
	second, err := c.ChapterContext(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, int32(1), next.contextCalls.Load())
	assert.Equal(t, first, second)

	_, err = c.ChapterContext(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.contextCalls.Load())
}

func TestCachedProvider_QuestionsNotCached(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{}
	c := NewCachedProvider(next, NewKVCache(store.NewMemoryKV(), time.Hour), nil)

	for range 3 {
		_, err := c.ChapterQuestions(ctx, 1, 20)
		require.NoError(t, err)
	}
	_, err := c.MockExamQuestions(ctx, 25, StyleStandard)
	require.NoError(t, err)
	assert.Equal(t, int32(4), next.questionCalls.Load())
}

func TestCachedProvider_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{err: ErrFetch}
	c := NewCachedProvider(next, NewKVCache(store.NewMemoryKV(), time.Hour), nil)

	_, err := c.ChapterContext(ctx, 2)
	require.ErrorIs(t, err, ErrFetch)

	next.err = nil
	cc, err := c.ChapterContext(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cc.Chapter)
	assert.Equal(t, int32(2), next.contextCalls.Load())
}

func TestCachedProvider_SharesInflight(t *testing.T) {
	next := &countingProvider{delay: 50 * time.Millisecond}
	c := NewCachedProvider(next, NewKVCache(store.NewMemoryKV(), time.Hour), nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.ChapterContext(context.Background(), 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), next.contextCalls.Load())
}

func TestCachedProvider_BadChapter(t *testing.T) {
	next := &countingProvider{}
	c := NewCachedProvider(next, NewKVCache(store.NewMemoryKV(), time.Hour), nil)

	_, err := c.ChapterContext(context.Background(), 23)
	require.ErrorIs(t, err, ErrFetch)
	assert.Zero(t, next.contextCalls.Load())
}

func TestKVCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	c := NewKVCache(store.NewMemoryKV(), time.Hour)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`)))

	data, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(data))

	now = now.Add(2 * time.Hour)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "k", "not json"))

	_, ok, err := NewKVCache(kv, 0).Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	cache := NewRedisCache(client, time.Minute)

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", []byte("v")))
	data, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(data))

	ttl := mr.TTL("k")
	assert.GreaterOrEqual(t, ttl, time.Minute)
	assert.LessOrEqual(t, ttl, time.Minute+6*time.Second)

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachedProvider_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := DialRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	next := &countingProvider{}
	c := NewCachedProvider(next, NewRedisCache(client, time.Hour), nil)

	for range 2 {
		cc, err := c.ChapterContext(context.Background(), 12)
		require.NoError(t, err)
		assert.Equal(t, 12, cc.Chapter)
	}
	assert.Equal(t, int32(1), next.contextCalls.Load())
	assert.True(t, mr.Exists(contextKey(12)))
}

func TestDialRedis_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = DialRedis(context.Background(), "redis://"+addr)
	assert.Error(t, err)

	_, err = DialRedis(context.Background(), "::not a url")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrFetch))
}
