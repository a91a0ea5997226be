package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/revquiz/internal/progress"
	"github.com/abhisek/revquiz/internal/router"
	"github.com/abhisek/revquiz/internal/screen"
	"github.com/abhisek/revquiz/internal/store"
)

type stub struct {
	escape bool
	keys   []string
}

func (s *stub) Init() tea.Cmd { return nil }
func (s *stub) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}
func (s *stub) View(w, h int) string { return "stub" }
func (s *stub) Title() string        { return "Stub" }
func (s *stub) HandlesEscape() bool  { return s.escape }

func testModel(t *testing.T) Model {
	t.Helper()
	p := progress.Load(context.Background(), progress.Deps{KV: store.NewMemoryKV()})
	return New(&screen.Deps{Progress: p})
}

var esc = tea.KeyPressMsg{Code: tea.KeyEscape}

func TestModel_EscapeAtRoot(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(esc)
	assert.Nil(t, cmd)
}

func TestModel_EscapePops(t *testing.T) {
	m := testModel(t)
	m.router.Push(&stub{})

	_, cmd := m.Update(esc)
	require.NotNil(t, cmd)
	assert.Equal(t, router.NavMsg{Op: router.OpPop}, cmd())
}

func TestModel_EscapeHandledByScreen(t *testing.T) {
	m := testModel(t)
	s := &stub{escape: true}
	m.router.Push(s)

	_, cmd := m.Update(esc)
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"esc"}, s.keys)
}

func TestModel_Quit(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowSize(t *testing.T) {
	next, _ := testModel(t).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m := next.(Model)
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)
}

func TestModel_Chrome(t *testing.T) {
	m := testModel(t)
	c := m.chrome()
	assert.Equal(t, "Home", c.Title)
	assert.NotEmpty(t, c.Hints)
	assert.Equal(t, -1, c.Stats.DaysLeft)

	m.router.Push(&stub{})
	c = m.chrome()
	assert.Equal(t, "Stub", c.Title)
	assert.Equal(t, nestedHints, c.Hints)
}

func TestModel_NoticeFromNavigation(t *testing.T) {
	m := testModel(t)
	m.router.Push(&stub{})

	next, _ := m.Update(router.NavMsg{Op: router.OpPop, Notice: "Could not load chapter 2"})
	m = next.(Model)
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Could not load chapter 2", m.chrome().Notice)

	next, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m = next.(Model)
	assert.Empty(t, m.chrome().Notice)
}
