package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		voice string
		rate  float64
		want  []string
	}{
		{"espeak-ng derives voice", "/usr/bin/espeak-ng", "", 0.9, []string{"-v", "ta", "-s", "157", "--", "வணக்கம்"}},
		{"espeak explicit voice", "/usr/bin/espeak", "ta+f3", 1, []string{"-v", "ta+f3", "-s", "175", "--", "வணக்கம்"}},
		{"say", "/usr/bin/say", "Vani", 1, []string{"-r", "175", "-v", "Vani", "--", "வணக்கம்"}},
		{"other", "/opt/tts", "", 1, []string{"வணக்கம்"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCommandSpeaker(tt.path, tt.voice, tt.rate)
			if got := c.args("வணக்கம்", "ta-IN"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBaseLanguage(t *testing.T) {
	for in, want := range map[string]string{"ta-IN": "ta", "en_US": "en", "TA": "ta", "": ""} {
		if got := baseLanguage(in); got != want {
			t.Errorf("baseLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDetect(t *testing.T) {
	sp, err := Detect(Config{Command: "none"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sp.(Silent); !ok {
		t.Errorf("none: got %T, want Silent", sp)
	}

	if _, err := Detect(Config{Command: "definitely-not-a-tts-engine"}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing engine: err = %v, want ErrNotFound", err)
	}

	t.Setenv("PATH", t.TempDir())
	sp, err = Detect(Config{Command: "auto"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sp.(Silent); !ok {
		t.Errorf("auto with empty PATH: got %T, want Silent", sp)
	}
}

func TestCommandSpeakerCancel(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "slow-tts")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nsleep 30\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	c := NewCommandSpeaker(script, "", 1)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := c.Speak(ctx, "text", "ta-IN")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Speak did not stop when its context was cancelled")
	}
}
