package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	content := "a\nb\nc\nd\ne"
	tests := []struct {
		name       string
		offset     int
		height     int
		want       string
		wantOffset int
	}{
		{"top", 0, 2, "a\nb", 0},
		{"middle", 2, 2, "c\nd", 2},
		{"clamped to end", 9, 2, "d\ne", 3},
		{"negative offset", -3, 2, "a\nb", 0},
		{"taller than content", 1, 10, content, 0},
		{"no room", 1, 0, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, off := Window(content, tt.offset, tt.height)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOffset, off)
		})
	}
}

func TestChrome_Render(t *testing.T) {
	c := Chrome{
		Title: "Chapters",
		Stats: HeaderStats{Streak: 4, DaysLeft: 12},
		Hints: []KeyHint{{Key: "Esc", Description: "Back"}},
	}

	var gotW, gotH int
	out := c.Render(100, 30, func(w, h int) string {
		gotW, gotH = w, h
		return "BODY"
	})

	assert.Equal(t, 100, gotW)
	assert.Equal(t, 30-lipgloss.Height(c.header(100))-lipgloss.Height(c.footer(100)), gotH)
	for _, want := range []string{"RevQuiz", "Chapters", "★ 4 day", "exam in 12 days", "Esc", "Back", "BODY"} {
		assert.Contains(t, out, want)
	}
}

func TestChrome_TooSmall(t *testing.T) {
	called := false
	out := Chrome{Title: "x"}.Render(60, 20, func(w, h int) string {
		called = true
		return ""
	})
	assert.False(t, called)
	assert.Contains(t, out, "Terminal too small")
	assert.Contains(t, out, "60 x 20")
}

func TestChrome_HeaderWithoutExam(t *testing.T) {
	h := Chrome{Title: "Home", Stats: HeaderStats{Streak: 1, DaysLeft: -1}}.header(90)
	assert.NotContains(t, h, "exam")
	assert.True(t, strings.Contains(h, "Home"))
}

func TestExamIn(t *testing.T) {
	assert.Equal(t, "exam today", examIn(0))
	assert.Equal(t, "exam tomorrow", examIn(1))
	assert.Equal(t, "exam in 30 days", examIn(30))
}

func TestCompact(t *testing.T) {
	assert.True(t, Compact(90, 30))
	assert.True(t, Compact(120, 20))
	assert.False(t, Compact(120, 30))
}

func TestChrome_FooterNotice(t *testing.T) {
	c := Chrome{Title: "Home", Hints: []KeyHint{{Key: "Esc", Description: "Back"}}}
	assert.NotContains(t, c.footer(100), "!")

	c.Notice = "Could not prepare the quiz"
	f := c.footer(100)
	assert.Contains(t, f, "Could not prepare the quiz")
	assert.Contains(t, f, "Back")
}
