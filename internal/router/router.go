// Package router keeps the stack of screens and applies navigation
// requests emitted by them.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/revquiz/internal/screen"
)

// Op is a stack operation.
type Op int

const (
	OpPush Op = iota
	OpPop
	OpReplace
	OpHome // pop everything above the root
)

// NavMsg asks the router to change the stack. Screen is nil for OpPop and
// OpHome. Notice, when set, is shown to the user on the screen the stack
// lands on.
type NavMsg struct {
	Op     Op
	Screen screen.Screen
	Notice string
}

func nav(op Op, s screen.Screen) tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: op, Screen: s} }
}

func Push(s screen.Screen) tea.Cmd    { return nav(OpPush, s) }
func Pop() tea.Cmd                    { return nav(OpPop, nil) }
func Replace(s screen.Screen) tea.Cmd { return nav(OpReplace, s) }
func Home() tea.Cmd                   { return nav(OpHome, nil) }

// Back pops the active screen and leaves notice on the one below. Screens
// use it when the work they were opened for failed.
func Back(notice string) tea.Cmd {
	return func() tea.Msg { return NavMsg{Op: OpPop, Notice: notice} }
}

// Router owns the screen stack. The root screen is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push initializes s on top of the stack.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen and re-initializes the one below so it shows
// fresh data. It does nothing at the root.
func (r *Router) Pop() tea.Cmd {
	return r.truncate(r.top())
}

// Replace closes the top screen and puts s in its place.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	closeScreen(r.stack[r.top()])
	r.stack[r.top()] = s
	return s.Init()
}

// PopToRoot closes every screen above the root.
func (r *Router) PopToRoot() tea.Cmd {
	return r.truncate(1)
}

// truncate closes screens from the top down to index n and re-initializes
// the new top.
func (r *Router) truncate(n int) tea.Cmd {
	if n < 1 || n >= len(r.stack) {
		return nil
	}
	for i := r.top(); i >= n; i-- {
		closeScreen(r.stack[i])
	}
	r.stack = r.stack[:n]
	return r.Active().Init()
}

// Close closes every screen, top first.
func (r *Router) Close() {
	for i := r.top(); i >= 0; i-- {
		closeScreen(r.stack[i])
	}
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies a NavMsg or hands msg to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(NavMsg); ok {
		switch m.Op {
		case OpPush:
			return r.Push(m.Screen)
		case OpPop:
			return r.Pop()
		case OpReplace:
			return r.Replace(m.Screen)
		case OpHome:
			return r.PopToRoot()
		}
		return nil
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	next, cmd := active.Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}
