package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errDown = errors.New("down")

func unavailable() MockResponse {
	return MockResponse{Err: &Error{Kind: KindUnavailable, Err: errDown}}
}

// retrying wraps mock and records the waits instead of sleeping.
func retrying(mock Provider, attempts int) (*RetryProvider, *[]time.Duration) {
	p := WithRetry(mock, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     300 * time.Millisecond,
		Multiplier:  2,
	}, nil)
	var waits []time.Duration
	p.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return p, &waits
}

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"ok":true}`)})
	p, waits := retrying(mock, 3)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 1, mock.CallCount())
	assert.Empty(t, *waits)
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), MockResponse{Content: json.RawMessage(`{}`)})
	p, waits := retrying(mock, 3)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 3, mock.CallCount())
	require.Len(t, *waits, 2)
	assert.InDelta(t, float64(100*time.Millisecond), float64((*waits)[0]), float64(20*time.Millisecond))
	assert.InDelta(t, float64(200*time.Millisecond), float64((*waits)[1]), float64(40*time.Millisecond))
}

func TestRetry_BackoffCapped(t *testing.T) {
	p, _ := retrying(NewMockProvider(), 5)
	for attempt := 1; attempt <= 5; attempt++ {
		wait := p.backoff(attempt, errDown)
		assert.LessOrEqual(t, wait, 360*time.Millisecond, "attempt %d", attempt)
		assert.GreaterOrEqual(t, wait, 80*time.Millisecond, "attempt %d", attempt)
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), unavailable(), unavailable())
	p, _ := retrying(mock, 3)

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, errDown)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_PermanentKinds(t *testing.T) {
	for _, kind := range []ErrorKind{KindAuth, KindTruncated} {
		t.Run(kind.String(), func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: &Error{Kind: kind}}, unavailable())
			p, _ := retrying(mock, 3)

			_, err := p.Generate(context.Background(), Request{})
			assert.True(t, IsKind(err, kind))
			assert.Equal(t, 1, mock.CallCount())
		})
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	bad := MockResponse{Err: invalidResponse(json.RawMessage(`bad`), errors.New("bad"))}
	mock := NewMockProvider(bad, bad, MockResponse{Content: json.RawMessage(`{}`)})
	p, _ := retrying(mock, 5)

	_, err := p.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindInvalidResponse))
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_RateLimitUsesRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: KindRateLimited, RetryAfter: 4 * time.Second}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p, waits := retrying(mock, 3)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{4 * time.Second}, *waits)
}

func TestRetry_StopsWhenContextDone(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), unavailable())
	p, _ := retrying(mock, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_AttemptInContext(t *testing.T) {
	var attempts []int
	inner := providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		attempts = append(attempts, attemptFrom(ctx))
		if len(attempts) < 3 {
			return nil, &Error{Kind: KindUnavailable}
		}
		return &Response{}, nil
	})
	core, logs := observer.New(zapcore.InfoLevel)
	p := WithRetry(inner, RetryConfig{MaxAttempts: 3}, zap.New(core))
	p.sleep = func(context.Context, time.Duration) error { return nil }

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, attempts)
	assert.Equal(t, 2, logs.FilterMessage("retrying llm request").Len())
}

func TestRetry_ModelID(t *testing.T) {
	p, _ := retrying(NewMockProvider(), 1)
	assert.Equal(t, "mock", p.ModelID())
}

func TestSleepCtx(t *testing.T) {
	require.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}

type providerFunc func(ctx context.Context, req Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) { return f(ctx, req) }
func (f providerFunc) ModelID() string                                             { return "func" }
