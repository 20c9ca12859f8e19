// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aura/internal/config"
	"github.com/abhisek/aura/internal/logging"
	"github.com/abhisek/aura/internal/reading"
	"github.com/abhisek/aura/internal/router"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/screens/oracle"
	"github.com/abhisek/aura/internal/screens/welcome"
	"github.com/abhisek/aura/internal/store"
	"github.com/abhisek/aura/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Config     config.Config
	Repo       store.ReadingRepo // nil when the journal is disabled
	Logger     *slog.Logger
	Picker     reading.Picker // nil uses Config.Oracle.Answers
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	journal bool
	width   int
	height  int
}

// newAppModel creates an AppModel starting at the splash screen, or
// directly at the oracle when SkipSplash is set.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Picker == nil {
		opts.Picker = reading.NewRandomPicker(opts.Config.Oracle.Answers, nil)
	}

	newOracle := func() screen.Screen {
		return oracle.New(oracle.Options{
			Controller: opts.Config.Oracle.Controller(),
			Timing:     opts.Config.Oracle.Timing(),
			Picker:     opts.Picker,
			Repo:       opts.Repo,
			Logger:     opts.Logger,
		})
	}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = newOracle()
	} else {
		initial = welcome.New(newOracle)
	}

	return AppModel{
		router:  router.New(initial),
		journal: opts.Repo != nil,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// At the root, esc belongs to the active screen.
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := active.Title()

	status := ""
	if m.journal {
		status = "✎ journal"
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
