// Package theme holds Aura's palette and shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Neon cyan and violet on near-black.
var (
	Primary   = lipgloss.Color("#22D3EE")
	Secondary = lipgloss.Color("#A855F7")
	Accent    = lipgloss.Color("#67E8F9")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#64748B")
	BgBar     = lipgloss.Color("#0B1120")
	Border    = lipgloss.Color("#155E75")
)

var (
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Label    = lipgloss.NewStyle().Foreground(Primary)

	// Bar is the background of the header and footer lines.
	Bar = lipgloss.NewStyle().Background(BgBar)

	// Answer is the revealed reply.
	Answer = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
)

func fieldStyle(border lipgloss.Border, fg lipgloss.Style, c color.Color) lipgloss.Style {
	return fg.Border(border).BorderForeground(c).Padding(0, 1)
}

// Text fields. FieldGlow marks the petition while capture is engaged.
var (
	FieldIdle     = fieldStyle(lipgloss.RoundedBorder(), lipgloss.NewStyle(), Border)
	FieldFocused  = fieldStyle(lipgloss.RoundedBorder(), lipgloss.NewStyle(), Primary)
	FieldGlow     = fieldStyle(lipgloss.ThickBorder(), lipgloss.NewStyle(), Accent)
	FieldDisabled = fieldStyle(lipgloss.RoundedBorder(), lipgloss.NewStyle().Foreground(TextDim), TextDim)
)

var (
	ButtonActive = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
