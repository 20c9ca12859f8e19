// Package journal lists readings recorded by the oracle.
package journal

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/reading"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/store"
	"github.com/abhisek/aura/internal/ui/layout"
	"github.com/abhisek/aura/internal/ui/theme"
)

// PageSize is the number of readings loaded into the screen.
const PageSize = 100

type journalLoadedMsg struct {
	Readings []store.Reading
	Total    int
	Err      error
}

// JournalScreen displays past readings, newest first.
type JournalScreen struct {
	repo     store.ReadingRepo
	readings []store.Reading
	total    int
	selected int
	offset   int // first reading drawn
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*JournalScreen)(nil)
var _ screen.KeyHintProvider = (*JournalScreen)(nil)

// New creates a new JournalScreen.
func New(repo store.ReadingRepo) *JournalScreen {
	return &JournalScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *JournalScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()

		readings, err := repo.QueryReadings(ctx, store.QueryOpts{Limit: PageSize})
		if err != nil {
			return journalLoadedMsg{Err: err}
		}
		total, err := repo.CountReadings(ctx)
		if err != nil {
			total = len(readings)
		}
		return journalLoadedMsg{Readings: readings, Total: total}
	}
}

func (s *JournalScreen) Title() string {
	return "Journal"
}

func (s *JournalScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *JournalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case journalLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.readings = msg.Readings
			s.total = msg.Total
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.readings)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *JournalScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return centered.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).
			Render("\n\n  Reading the journal...")
	}
	if len(s.readings) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  The journal is empty. Ask Aura something first.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered.Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d readings", len(s.readings), s.total)))
	b.WriteString("\n\n")

	stampLayout := "Jan 02 15:04"
	if layout.IsCompactWidth(width) {
		stampLayout = "01/02"
	}

	lineWidth := max(width-8, 20)

	capacity := max(height-listChrome, 1)
	s.scrollTo(capacity)

	used := 0
	last := s.offset - 1
	for i := s.offset; i < len(s.readings) && used+s.rowHeight(i) <= capacity; i++ {
		r := s.readings[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %s",
			prefix, r.Timestamp.Local().Format(stampLayout), sourceMark(r.Source), r.Question)
		line = truncate(line, lineWidth)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Width(lineWidth).Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := lipgloss.NewStyle().
				Foreground(theme.Accent).
				Width(lineWidth).
				PaddingLeft(4).
				Render(truncate("→ "+r.Answer, lineWidth-4))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, detail))
			b.WriteString("\n")
		}
		used += s.rowHeight(i)
		last = i
	}

	if below := len(s.readings) - 1 - last; below > 0 {
		b.WriteString(centered.Foreground(theme.TextDim).Render(fmt.Sprintf("↓ %d more", below)))
	}

	return b.String()
}

// listChrome is the rows View spends outside the list: the blank line, the
// count line and its spacer, and the "more" line.
const listChrome = 4

// rowHeight is 2 for an expanded reading, 1 otherwise.
func (s *JournalScreen) rowHeight(i int) int {
	if s.expanded[i] {
		return 2
	}
	return 1
}

// scrollTo moves offset the least amount that keeps the selected reading,
// including its expansion, inside capacity rows.
func (s *JournalScreen) scrollTo(capacity int) {
	if s.selected < s.offset {
		s.offset = s.selected
	}
	for s.offset < s.selected && s.span(s.offset, s.selected) > capacity {
		s.offset++
	}
}

// span counts the rows readings from..to take up, inclusive.
func (s *JournalScreen) span(from, to int) int {
	n := 0
	for i := from; i <= to; i++ {
		n += s.rowHeight(i)
	}
	return n
}

func sourceMark(source string) string {
	if source == string(reading.SourceSecret) {
		return lipgloss.NewStyle().Foreground(theme.Secondary).Render("◆")
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("◇")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
