package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// SpeechLanguage is the language hint passed to the speaker.
	SpeechLanguage = "ta-IN"

	defaultSpeechDelay  = 500 * time.Millisecond
	defaultTickInterval = time.Second
)

// Speaker reads text aloud. Speak blocks until the utterance ends or ctx is
// cancelled, in which case playback must stop.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

// AudioEventKind identifies an event emitted by an AudioLifecycle.
type AudioEventKind int

const (
	EventTick AudioEventKind = iota
	EventSpeechStarted
	EventSpeechEnded
	EventSpeechFailed
)

// AudioEvent is emitted by the tasks of a presented question. Token matches
// Presentation.Token.
type AudioEvent struct {
	Kind  AudioEventKind
	Token uint64
	Err   error
}

// AudioOption configures an AudioLifecycle.
type AudioOption func(*AudioLifecycle)

// WithSpeechDelay sets how long speech waits after a question is entered.
func WithSpeechDelay(d time.Duration) AudioOption {
	return func(l *AudioLifecycle) { l.delay = d }
}

// WithTickInterval sets the countdown tick interval.
func WithTickInterval(d time.Duration) AudioOption {
	return func(l *AudioLifecycle) { l.interval = d }
}

// WithAudioLogger sets the logger for speech failures.
func WithAudioLogger(logger *zap.Logger) AudioOption {
	return func(l *AudioLifecycle) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// AudioLifecycle runs the countdown and speech tasks of one presented
// question at a time. Each task is scoped to the question's context; events
// are delivered on the Events channel.
type AudioLifecycle struct {
	speaker  Speaker
	delay    time.Duration
	interval time.Duration
	logger   *zap.Logger
	events   chan AudioEvent

	mu            sync.Mutex
	group         *errgroup.Group
	cancel        context.CancelFunc
	stopCountdown context.CancelFunc
	dropPending   context.CancelFunc
	closed        bool
}

// NewAudioLifecycle creates a lifecycle speaking through speaker.
func NewAudioLifecycle(speaker Speaker, opts ...AudioOption) *AudioLifecycle {
	l := &AudioLifecycle{
		speaker:  speaker,
		delay:    defaultSpeechDelay,
		interval: defaultTickInterval,
		logger:   zap.NewNop(),
		events:   make(chan AudioEvent, 16),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Events returns the channel countdown and speech events are sent on.
func (l *AudioLifecycle) Events() <-chan AudioEvent {
	return l.events
}

// Enter implements Lifecycle. Tasks of a previous question are stopped first.
func (l *AudioLifecycle) Enter(p Presentation) {
	l.Leave()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	qctx, cancel := context.WithCancel(context.Background())
	countdownCtx, stopCountdown := context.WithCancel(qctx)
	pendingCtx, dropPending := context.WithCancel(qctx)

	g := &errgroup.Group{}
	g.Go(func() error {
		l.runCountdown(countdownCtx, p.Token, p.Seconds)
		return nil
	})
	g.Go(func() error {
		return l.runSpeech(qctx, pendingCtx, p)
	})

	l.group = g
	l.cancel = cancel
	l.stopCountdown = stopCountdown
	l.dropPending = dropPending
}

// Reveal implements Lifecycle.
func (l *AudioLifecycle) Reveal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopCountdown != nil {
		l.stopCountdown()
		l.dropPending()
	}
}

// Leave implements Lifecycle.
func (l *AudioLifecycle) Leave() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel == nil {
		return
	}
	l.cancel()
	if err := l.group.Wait(); err != nil {
		l.logger.Warn("audio task failed", zap.Error(err))
	}
	l.group = nil
	l.cancel = nil
	l.stopCountdown = nil
	l.dropPending = nil
}

// Close stops any running tasks and closes the events channel.
func (l *AudioLifecycle) Close() {
	l.Leave()
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.events)
	}
}

func (l *AudioLifecycle) runCountdown(ctx context.Context, token uint64, seconds int) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for i := 0; i < seconds; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.emit(ctx, AudioEvent{Kind: EventTick, Token: token})
		}
	}
}

// runSpeech waits out the speech delay, unless pending speech is dropped,
// then speaks until the question context ends.
func (l *AudioLifecycle) runSpeech(qctx, pendingCtx context.Context, p Presentation) error {
	if l.speaker == nil {
		return nil
	}

	timer := time.NewTimer(l.delay)
	defer timer.Stop()
	select {
	case <-pendingCtx.Done():
		return nil
	case <-timer.C:
	}

	l.emit(qctx, AudioEvent{Kind: EventSpeechStarted, Token: p.Token})
	err := l.speaker.Speak(qctx, p.Question.Text, SpeechLanguage)
	switch {
	case qctx.Err() != nil:
		return nil
	case err != nil && !errors.Is(err, context.Canceled):
		l.logger.Warn("speech failed",
			zap.Int("question", p.Index+1),
			zap.Error(err),
		)
		l.emit(qctx, AudioEvent{Kind: EventSpeechFailed, Token: p.Token, Err: err})
	default:
		l.emit(qctx, AudioEvent{Kind: EventSpeechEnded, Token: p.Token})
	}
	return nil
}

func (l *AudioLifecycle) emit(ctx context.Context, ev AudioEvent) {
	select {
	case l.events <- ev:
	case <-ctx.Done():
	}
}
