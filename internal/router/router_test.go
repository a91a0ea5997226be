package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/revquiz/internal/screen"
)

type fakeScreen struct {
	name   string
	inits  int
	closed int
	seen   []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd { s.inits++; return nil }
func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}
func (s *fakeScreen) View(w, h int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }
func (s *fakeScreen) Close()               { s.closed++ }

func titles(r *Router) []string {
	var out []string
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return out
}

func TestRouter_Navigation(t *testing.T) {
	home := &fakeScreen{name: "home"}
	chapters := &fakeScreen{name: "chapters"}
	study := &fakeScreen{name: "study"}
	quiz := &fakeScreen{name: "quiz"}
	result := &fakeScreen{name: "result"}
	r := New(home)

	r.Update(NavMsg{Op: OpPush, Screen: chapters})
	r.Update(NavMsg{Op: OpPush, Screen: study})
	r.Update(NavMsg{Op: OpPush, Screen: quiz})
	assert.Equal(t, []string{"home", "chapters", "study", "quiz"}, titles(r))
	assert.Equal(t, 1, quiz.inits)

	r.Update(NavMsg{Op: OpReplace, Screen: result})
	assert.Equal(t, []string{"home", "chapters", "study", "result"}, titles(r))
	assert.Equal(t, 1, quiz.closed)
	assert.Equal(t, 1, result.inits)

	r.Update(NavMsg{Op: OpPop})
	assert.Equal(t, "study", r.Active().Title())
	assert.Equal(t, 1, result.closed)
	assert.Equal(t, 2, study.inits, "uncovered screen refreshes")

	r.Update(NavMsg{Op: OpHome})
	assert.Equal(t, []string{"home"}, titles(r))
	assert.Equal(t, 1, study.closed)
	assert.Equal(t, 1, chapters.closed)
	assert.Equal(t, 0, home.closed)
	assert.Equal(t, 1, home.inits)
}

func TestRouter_RootIsKept(t *testing.T) {
	home := &fakeScreen{name: "home"}
	r := New(home)

	assert.Nil(t, r.Pop())
	assert.Nil(t, r.PopToRoot())
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, 0, home.closed)
	assert.Equal(t, 0, home.inits)
}

func TestRouter_ForwardsOtherMessages(t *testing.T) {
	home := &fakeScreen{name: "home"}
	top := &fakeScreen{name: "top"}
	r := New(home)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Len(t, top.seen, 1)
	assert.Empty(t, home.seen)
	assert.Equal(t, "top", r.View(80, 24))
}

func TestRouter_Close(t *testing.T) {
	a, b := &fakeScreen{name: "a"}, &fakeScreen{name: "b"}
	r := New(a)
	r.Push(b)
	r.Close()
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
}

func TestCommands(t *testing.T) {
	s := &fakeScreen{name: "s"}
	tests := []struct {
		cmd    tea.Cmd
		op     Op
		screen screen.Screen
	}{
		{Push(s), OpPush, s},
		{Pop(), OpPop, nil},
		{Replace(s), OpReplace, s},
		{Home(), OpHome, nil},
		{Back("gone"), OpPop, nil},
	}
	for _, tt := range tests {
		msg, ok := tt.cmd().(NavMsg)
		require.True(t, ok)
		assert.Equal(t, tt.op, msg.Op)
		assert.Equal(t, tt.screen, msg.Screen)
	}
}

func TestBack_CarriesNotice(t *testing.T) {
	msg := Back("Could not load chapter 4")().(NavMsg)
	assert.Equal(t, OpPop, msg.Op)
	assert.Equal(t, "Could not load chapter 4", msg.Notice)
}
