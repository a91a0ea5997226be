// Package speech reads quiz questions aloud through a local text-to-speech
// engine.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// candidates are probed in order when no command is configured.
var candidates = []string{"espeak-ng", "espeak", "say"}

// Config selects and tunes the speech engine.
type Config struct {
	Command string  // "auto", "none", or an executable
	Voice   string  // engine voice; empty derives one from the language
	Rate    float64 // relative speed, 1.0 is the engine's normal rate
}

// Silent never produces sound. Speak returns immediately.
type Silent struct{}

func (Silent) Speak(ctx context.Context, _, _ string) error {
	return ctx.Err()
}

// CommandSpeaker speaks by running an external program, killing it when the
// context is cancelled.
type CommandSpeaker struct {
	path  string
	voice string
	rate  float64
}

// NewCommandSpeaker returns a speaker running the executable at path.
func NewCommandSpeaker(path, voice string, rate float64) *CommandSpeaker {
	if rate <= 0 {
		rate = 1
	}
	return &CommandSpeaker{path: path, voice: voice, rate: rate}
}

// Speak runs the engine and blocks until it exits.
func (c *CommandSpeaker) Speak(ctx context.Context, text, lang string) error {
	cmd := exec.CommandContext(ctx, c.path, c.args(text, lang)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", filepath.Base(c.path), err)
	}
	return nil
}

func (c *CommandSpeaker) args(text, lang string) []string {
	switch filepath.Base(c.path) {
	case "espeak-ng", "espeak":
		voice := c.voice
		if voice == "" {
			voice = baseLanguage(lang)
		}
		// espeak's default rate is 175 words per minute.
		wpm := int(175 * c.rate)
		return []string{"-v", voice, "-s", strconv.Itoa(wpm), "--", text}
	case "say":
		// say's default rate is roughly 175 words per minute.
		args := []string{"-r", strconv.Itoa(int(175 * c.rate))}
		if c.voice != "" {
			args = append(args, "-v", c.voice)
		}
		return append(args, "--", text)
	default:
		return []string{text}
	}
}

// baseLanguage strips the region from a BCP 47 tag: "ta-IN" becomes "ta".
func baseLanguage(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return strings.ToLower(lang[:i])
	}
	return strings.ToLower(lang)
}

// Speaker matches session.Speaker.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

// ErrNotFound is returned when the configured engine is not installed.
var ErrNotFound = errors.New("speech engine not found")

// Detect builds the speaker described by cfg. With "auto" the first
// installed engine is used; if none is installed speech is silent.
func Detect(cfg Config, logger *zap.Logger) (Speaker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Command {
	case "none":
		return Silent{}, nil
	case "", "auto":
		for _, name := range candidates {
			if path, err := exec.LookPath(name); err == nil {
				logger.Info("speech engine detected", zap.String("path", path))
				return NewCommandSpeaker(path, cfg.Voice, cfg.Rate), nil
			}
		}
		logger.Warn("no speech engine found; audio questions will be silent",
			zap.Strings("tried", candidates))
		return Silent{}, nil
	default:
		path, err := exec.LookPath(cfg.Command)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, cfg.Command)
		}
		return NewCommandSpeaker(path, cfg.Voice, cfg.Rate), nil
	}
}
