package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSpeaker blocks until its context is cancelled or release is closed.
type fakeSpeaker struct {
	mu       sync.Mutex
	texts    []string
	langs    []string
	canceled int
	release  chan struct{}
}

func newFakeSpeaker() *fakeSpeaker {
	return &fakeSpeaker{release: make(chan struct{})}
}

func (f *fakeSpeaker) Speak(ctx context.Context, text, lang string) error {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.langs = append(f.langs, lang)
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		f.mu.Lock()
		f.canceled++
		f.mu.Unlock()
		return ctx.Err()
	case <-f.release:
		return nil
	}
}

func (f *fakeSpeaker) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts), f.canceled
}

func nextEvent(t *testing.T, ch <-chan AudioEvent) AudioEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audio event")
		return AudioEvent{}
	}
}

func presentation(token uint64, seconds int) Presentation {
	return Presentation{
		Index:    0,
		Question: testQuestions(1)[0],
		Token:    token,
		Seconds:  seconds,
	}
}

func TestAudioLifecycle_TicksAndSpeech(t *testing.T) {
	sp := newFakeSpeaker()
	l := NewAudioLifecycle(sp, WithSpeechDelay(time.Millisecond), WithTickInterval(5*time.Millisecond))
	defer l.Close()

	l.Enter(presentation(7, 3))

	var ticks int
	var started bool
	for ticks < 3 || !started {
		ev := nextEvent(t, l.Events())
		assert.Equal(t, uint64(7), ev.Token)
		switch ev.Kind {
		case EventTick:
			ticks++
		case EventSpeechStarted:
			started = true
		}
	}

	l.Leave()
	n, canceled := sp.calls()
	require.Equal(t, 1, n)
	assert.Equal(t, 1, canceled, "Leave must cancel in-flight speech")
	assert.Equal(t, []string{"Question 1?"}, sp.texts)
	assert.Equal(t, []string{SpeechLanguage}, sp.langs)
}

func TestAudioLifecycle_RevealKeepsPlayingSpeech(t *testing.T) {
	sp := newFakeSpeaker()
	l := NewAudioLifecycle(sp, WithSpeechDelay(time.Millisecond), WithTickInterval(time.Hour))
	defer l.Close()

	l.Enter(presentation(1, 10))
	ev := nextEvent(t, l.Events())
	require.Equal(t, EventSpeechStarted, ev.Kind)

	l.Reveal()
	_, canceled := sp.calls()
	assert.Equal(t, 0, canceled, "reveal must not cut off speech already playing")

	close(sp.release)
	ev = nextEvent(t, l.Events())
	assert.Equal(t, EventSpeechEnded, ev.Kind)
}

func TestAudioLifecycle_RevealDropsPendingSpeech(t *testing.T) {
	sp := newFakeSpeaker()
	l := NewAudioLifecycle(sp, WithSpeechDelay(time.Hour), WithTickInterval(time.Hour))
	defer l.Close()

	l.Enter(presentation(1, 10))
	l.Reveal()
	l.Leave()

	n, _ := sp.calls()
	assert.Equal(t, 0, n, "speech scheduled before reveal must never start")
}

func TestAudioLifecycle_EnterStopsPreviousQuestion(t *testing.T) {
	sp := newFakeSpeaker()
	l := NewAudioLifecycle(sp, WithSpeechDelay(time.Millisecond), WithTickInterval(time.Hour))
	defer l.Close()

	l.Enter(presentation(1, 10))
	require.Equal(t, EventSpeechStarted, nextEvent(t, l.Events()).Kind)

	l.Enter(presentation(2, 10))
	_, canceled := sp.calls()
	assert.Equal(t, 1, canceled, "previous speech must be cancelled before the next question")

	ev := nextEvent(t, l.Events())
	assert.Equal(t, uint64(2), ev.Token)
}

func TestAudioLifecycle_DrivesSession(t *testing.T) {
	l := NewAudioLifecycle(nil, WithTickInterval(time.Millisecond))
	defer l.Close()

	s := newStarted(t, ModeAudioMock, testQuestions(0), WithLifecycle(l), WithCountdown(2))
	for s.Phase() == PhasePresenting {
		ev := nextEvent(t, l.Events())
		if ev.Kind == EventTick {
			s.Tick(ev.Token)
		}
	}
	require.Equal(t, PhaseRevealed, s.Phase())
	require.True(t, s.SelfGrade(true))
	assert.Equal(t, PhaseComplete, s.Phase())
	assert.Equal(t, 1, s.Result().Score)
}
