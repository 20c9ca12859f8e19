package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aura/internal/ui/theme"
)

// Field wraps bubbles/textinput with a label and Aura styling.
type Field struct {
	Label    string
	Model    textinput.Model
	Glow     bool // accent border, used while the petition is capturing
	Disabled bool
}

// NewField creates a labelled, unfocused text field.
func NewField(label, placeholder string) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	return Field{
		Label: label,
		Model: ti,
	}
}

// Focus focuses the field and returns the cursor blink command.
func (f *Field) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur removes focus.
func (f *Field) Blur() {
	f.Model.Blur()
}

// Focused reports whether the field has focus.
func (f Field) Focused() bool {
	return f.Model.Focused()
}

// Update forwards msg to the text input unless the field is disabled.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if f.Disabled {
		return f, nil
	}
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// SetValue replaces the field content and moves the cursor to the end.
func (f *Field) SetValue(v string) {
	f.Model.SetValue(v)
	f.Model.CursorEnd()
}

// Value returns the current content.
func (f Field) Value() string {
	return f.Model.Value()
}

// View renders the label and the bordered input at the given outer width.
func (f Field) View(width int) string {
	style := theme.FieldIdle
	switch {
	case f.Disabled:
		style = theme.FieldDisabled
	case f.Glow:
		style = theme.FieldGlow
	case f.Model.Focused():
		style = theme.FieldFocused
	}

	inner := width - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	f.Model.SetWidth(inner)

	label := theme.Label.Render(f.Label)
	box := style.Width(width).Render(f.Model.View())
	return lipgloss.JoinVertical(lipgloss.Left, label, box)
}
