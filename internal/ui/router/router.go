package router

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen represents a screen that can be navigated to
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Router keeps a stack of screens. Key presses go to the top screen only;
// every other message reaches all screens so covered ones stay current.
type Router struct {
	stack  []Screen
	width  int
	height int
}

func New(initial Screen) *Router {
	return &Router{
		stack: []Screen{initial},
	}
}

func (r *Router) Init() tea.Cmd {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1].Init()
}

func (r *Router) Update(msg tea.Msg) (*Router, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && len(r.stack) > 1 {
			return r, r.Pop()
		}
		if len(r.stack) == 0 {
			return r, nil
		}
		top := len(r.stack) - 1
		next, cmd := r.stack[top].Update(msg)
		r.stack[top] = next
		return r, cmd
	}

	cmds := make([]tea.Cmd, 0, len(r.stack))
	for i, s := range r.stack {
		next, cmd := s.Update(msg)
		r.stack[i] = next
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return r, tea.Batch(cmds...)
}

func (r *Router) View() string {
	if len(r.stack) == 0 {
		return "No screen available"
	}
	return r.stack[len(r.stack)-1].View()
}

// SetSize resizes every screen on the stack
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	for _, s := range r.stack {
		s.SetSize(width, height)
	}
}

func (r *Router) Push(screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	r.stack = append(r.stack, screen)
	return screen.Init()
}

// Pop removes the top screen. The last screen is never removed.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

func (r *Router) Current() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}
