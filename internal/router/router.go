// Package router keeps the stack of screens: the oracle at the bottom, the
// journal pushed over it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aura/internal/screen"
)

// PushScreenMsg asks the router to cover the active screen with Screen.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to uncover the screen below the active one.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen in place, e.g. splash to oracle.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns the screen stack. The stack never becomes empty.
type Router struct {
	stack []screen.Screen
}

// New creates a Router rooted at initial.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push covers the active screen with s and returns s.Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the active screen. The root is never popped. When the uncovered
// screen implements screen.Resumer its Resume command is returned.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace swaps the active screen for s and returns s.Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the screen on top of the stack.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of stacked screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
