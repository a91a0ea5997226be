package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

type picked string

func TestMenu(t *testing.T) {
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd { return func() tea.Msg { return picked(name) } }
	}
	m := NewMenu([]MenuItem{
		{Label: "Locked", Disabled: true},
		{Label: "Study", Action: action("study")},
		{Label: "Soon", Disabled: true},
		{Label: "Exam", Detail: "25 questions", Action: action("exam")},
	})
	assert.Equal(t, 1, m.Selected, "starts on the first enabled item")

	m, _ = m.Update(key("up"))
	assert.Equal(t, 1, m.Selected, "disabled items above are skipped")

	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(key("j"))
	assert.Equal(t, 3, m.Selected, "stays on the last item")

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, picked("exam"), cmd())

	view := m.View()
	assert.Contains(t, view, "▸ Exam")
	assert.Contains(t, view, "25 questions")
	assert.Equal(t, 4, strings.Count(view, "\n"))
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a", Disabled: true}})
	assert.Equal(t, 0, m.Selected)
	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)

	_, cmd = NewMenu(nil).Update(key("enter"))
	assert.Nil(t, cmd)
}

func TestProgressBar_Width(t *testing.T) {
	for _, bar := range []ProgressBar{
		NewProgressBar("", 0.5, false, 30),
		NewProgressBar("ch  3", 0.25, false, 30),
		NewProgressBar("done", 1.5, true, 40),
		NewProgressBar("", -1, true, 20),
	} {
		assert.Equal(t, bar.Width, lipgloss.Width(bar.View()), "%+v", bar)
	}
	assert.Equal(t, 4, lipgloss.Width(NewProgressBar("", 0.5, false, 1).View()), "minimum bar")
}

func TestCountdown(t *testing.T) {
	assert.Empty(t, Countdown(3, 0))
	out := Countdown(7, 10)
	assert.Contains(t, out, " 7s")
	assert.Contains(t, out, strings.Repeat("█", 7))
	assert.Contains(t, Countdown(12, 10), "10s")
}

func TestNumberInput(t *testing.T) {
	in := NewNumberInput("1-22", 2)
	_, ok := in.Value()
	assert.False(t, ok)

	for _, k := range []string{"1", "x", "2", "3"} {
		in, _ = in.Update(key(k))
	}
	n, ok := in.Value()
	require.True(t, ok)
	assert.Equal(t, 12, n, "letters are dropped and the limit is two digits")

	in.Reset()
	_, ok = in.Value()
	assert.False(t, ok)
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 76, ContentWidth(200))
	assert.Equal(t, 54, ContentWidth(60))
	assert.Equal(t, 20, ContentWidth(10))
}

func TestChoiceList(t *testing.T) {
	c := ChoiceList{Options: []string{"one", "two", "three", "four"}, Cursor: 1, Correct: 2, Chosen: 1}
	open := c.View()
	assert.Contains(t, open, "▸ B)  two")
	assert.NotContains(t, open, "✓")

	c.Revealed = true
	done := c.View()
	assert.Contains(t, done, "C)  three  ✓")
	assert.Contains(t, done, "B)  two  ✗")
	assert.NotContains(t, done, "▸")
}
