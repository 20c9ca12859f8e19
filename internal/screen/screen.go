package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aura/internal/ui/layout"
)

// Screen is one page of the TUI. The router keeps a stack of them and only
// the top one sees input.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between the header and the footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that stop their timers when covered and
// need to restart them once the screen above is popped.
type Resumer interface {
	Resume() tea.Cmd
}
