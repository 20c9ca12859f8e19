package oracle

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/ui/components"
	"github.com/abhisek/aura/internal/ui/layout"
	"github.com/abhisek/aura/internal/ui/theme"
)

const revealCursor = "▌"

func (s *OracleScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	if !layout.IsCompactHeight(height) {
		sections = append(sections, s.core.View(), "")
	}

	if s.session.AnswerShown() {
		sections = append(sections, s.renderReveal(cw))
	} else {
		sections = append(sections, s.renderForm(cw))
	}

	if s.errMsg != "" {
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *OracleScreen) renderForm(cw int) string {
	rows := []string{
		s.petition.View(cw),
		"",
		s.question.View(cw),
		"",
	}

	if s.session.Thinking() {
		status := s.spinner.View() + " " +
			lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Render("Aura is consulting the ether...")
		rows = append(rows, lipgloss.PlaceHorizontal(cw, lipgloss.Center, status))
	} else {
		btn := components.NewButton("Ask Aura", s.session.CanSubmit())
		rows = append(rows, lipgloss.PlaceHorizontal(cw, lipgloss.Center, btn.View()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *OracleScreen) renderReveal(cw int) string {
	inner := cw - 6
	if inner < 10 {
		inner = 10
	}

	asked := theme.Subtitle.Width(inner).Render("“" + s.session.Question() + "”")

	typed := s.session.Typed()
	if s.session.Revealing() {
		typed += revealCursor
	}
	answer := theme.Answer.Width(inner).Render(typed)

	var b strings.Builder
	b.WriteString(asked)
	b.WriteString("\n\n")
	b.WriteString(answer)
	if !s.session.Revealing() {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Width(inner).Align(lipgloss.Center).Render("press enter to ask again"))
	}

	return components.Panel(b.String(), cw)
}
