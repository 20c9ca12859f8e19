package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/ui/theme"
)

// ringGlyphs cycle outward from the spark while the core is active.
var ringGlyphs = []string{"·", "∘", "○", "◎", "◉"}

// AuraCore is the pulsing three-ring orb above the form.
type AuraCore struct {
	Active bool
	frame  int
}

// Advance moves the animation one frame. It is a no-op while inactive.
func (a *AuraCore) Advance() {
	if a.Active {
		a.frame++
	}
}

// Frame returns the current animation frame.
func (a AuraCore) Frame() int {
	return a.frame
}

// View renders the orb as five centered lines.
func (a AuraCore) View() string {
	colors := []color.Color{theme.Border, theme.Secondary, theme.Primary}

	ring := func(i, n int) string {
		glyph := ringGlyphs[0]
		c := theme.Border
		if a.Active {
			glyph = ringGlyphs[(a.frame+i)%len(ringGlyphs)]
			c = colors[(a.frame+i)%len(colors)]
		}
		style := lipgloss.NewStyle().Foreground(c)
		return style.Render(strings.TrimSpace(strings.Repeat(glyph+" ", n)))
	}

	spark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("✧")
	if a.Active {
		spark = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("✦")
	}

	lines := []string{
		ring(2, 5),
		ring(1, 3),
		ring(0, 1) + "  " + spark + "  " + ring(0, 1),
		ring(1, 3),
		ring(2, 5),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
