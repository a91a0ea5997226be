package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "revquiz.log")
	l, err := New(path, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("hello")
	l.Debug("hidden")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log missing info entry: %s", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Errorf("debug entry written at info level: %s", data)
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	l, err := New("", true)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("discarded")
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "revquiz", "revquiz.log"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
