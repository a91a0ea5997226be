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

	"github.com/abhisek/revquiz/internal/store"
)

type recorder struct {
	events []store.LLMRequestEventData
	ctxErr error
	err    error
}

func (r *recorder) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	r.ctxErr = ctx.Err()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEveryCall(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rec := &recorder{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 10, OutputTokens: 20}},
		MockResponse{Err: &Error{Kind: KindRateLimited, Err: errors.New("slow down")}},
	)
	p := WithLogging(mock, "gemini", rec, zap.New(core))

	ctx := WithPurpose(context.Background(), "chapter-context")
	_, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	_, err = p.Generate(withAttempt(ctx, 2), Request{})
	require.Error(t, err)

	require.Len(t, rec.events, 2)
	ok := rec.events[0]
	assert.Equal(t, "gemini", ok.Provider)
	assert.Equal(t, "mock", ok.Model)
	assert.Equal(t, "chapter-context", ok.Purpose)
	assert.True(t, ok.Success)
	assert.Equal(t, 10, ok.InputTokens)
	assert.Equal(t, 20, ok.OutputTokens)
	assert.Equal(t, `{"ok":true}`, ok.ResponseBody)
	assert.Equal(t, "[system]\nsys\n\n[user]\nhi\n", ok.RequestBody)

	failed := rec.events[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "slow down")

	require.Equal(t, 1, logs.FilterMessage("llm request").Len())
	warn := logs.FilterMessage("llm request failed").All()
	require.Len(t, warn, 1)
	fields := warn[0].ContextMap()
	assert.Equal(t, "rate_limited", fields["kind"])
	assert.EqualValues(t, 2, fields["attempt"])
}

func TestLoggingProvider_KeepsInvalidOutput(t *testing.T) {
	rec := &recorder{}
	mock := NewMockProvider(MockResponse{Err: invalidResponse(json.RawMessage(`{"half":`), errors.New("eof"))})
	p := WithLogging(mock, "openai", rec, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	require.Len(t, rec.events, 1)
	assert.Equal(t, `{"half":`, rec.events[0].ResponseBody)
	assert.Equal(t, "unspecified", rec.events[0].Purpose)
}

func TestLoggingProvider_RecordsAfterCancel(t *testing.T) {
	rec := &recorder{}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", rec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Generate(ctx, Request{})

	require.Len(t, rec.events, 1)
	assert.NoError(t, rec.ctxErr)
}

func TestLoggingProvider_RecorderFailureIgnored(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := &recorder{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", rec, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("record llm event").Len())
}

func TestLoggingProvider_Latency(t *testing.T) {
	rec := &recorder{}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", rec, nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(1500 * time.Millisecond)}
	p.now = func() time.Time {
		next := ticks[0]
		ticks = ticks[1:]
		return next
	}

	p.Generate(context.Background(), Request{})
	assert.Equal(t, int64(1500), rec.events[0].LatencyMs)
}

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 20*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "blocking", p.ModelID())

	assert.Equal(t, Provider(blockingProvider{}), WithTimeout(blockingProvider{}, 0))
}
