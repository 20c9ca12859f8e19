// Package layout draws the frame around every screen: a one-line title bar,
// the screen body and a one-line key hint bar.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/ui/theme"
)

const (
	// The oracle form needs two bordered fields and a button.
	MinWidth  = 44
	MinHeight = 18

	HeaderHeight = 1
	FooterHeight = 1

	CompactWidthThreshold  = 72
	CompactHeightThreshold = 28
)

const (
	brand    = "◉ Aura Replies"
	hintSep  = "  ·  "
	barInset = 1
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight reports whether the aura core should be left out.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the rows left for a screen body.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage asks the performer to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small\n\nAura needs %d x %d\nyou have %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Hint.Render(text))
}

// RenderHeader draws the brand on the left, the screen title in the middle
// and status on the right. status may be empty.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Secondary).Render(status)

	inner := max(width-2*barInset, 0)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)

	// Center the title on the bar, not on the space between brand and status.
	gapL := max((inner-mw)/2-lw, 1)
	gapR := max(inner-lw-gapL-mw-rw, 1)

	line := left + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right
	return bar(line, width)
}

// RenderFooter draws as many hints as fit in width. The last hint, usually
// Quit, is always kept.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar(strings.Join(fitHints(parts, width-2*barInset), hintSep), width)
}

// fitHints drops hints from the end, sparing the final one, until the joined
// line fits in width.
func fitHints(parts []string, width int) []string {
	for len(parts) > 1 && lipgloss.Width(strings.Join(parts, hintSep)) > width {
		last := parts[len(parts)-1]
		parts = append(parts[:len(parts)-2:len(parts)-2], last)
	}
	return parts
}

func bar(line string, width int) string {
	return theme.Bar.
		Width(width).
		MaxHeight(1).
		Padding(0, barInset).
		Render(line)
}

// RenderFrame stacks header, body and footer into exactly height rows.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}
