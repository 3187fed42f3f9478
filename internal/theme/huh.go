package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Huh returns a form theme drawn from t.
func (t Theme) Huh() *huh.Theme {
	accent := lipgloss.Color(t.Accent)
	muted := lipgloss.Color(t.Muted)
	text := lipgloss.Color(t.Text)
	danger := lipgloss.Color(t.Danger)

	h := huh.ThemeBase()

	h.Focused.Base = h.Focused.Base.BorderForeground(lipgloss.Color(t.BorderFocus))
	h.Focused.Card = h.Focused.Base
	h.Focused.Title = h.Focused.Title.Foreground(accent).Bold(true)
	h.Focused.Description = h.Focused.Description.Foreground(muted)
	h.Focused.ErrorIndicator = h.Focused.ErrorIndicator.Foreground(danger)
	h.Focused.ErrorMessage = h.Focused.ErrorMessage.Foreground(danger)
	h.Focused.SelectSelector = h.Focused.SelectSelector.Foreground(accent)
	h.Focused.Option = h.Focused.Option.Foreground(text)
	h.Focused.SelectedOption = h.Focused.SelectedOption.Foreground(accent)
	h.Focused.UnselectedOption = h.Focused.UnselectedOption.Foreground(text)
	h.Focused.FocusedButton = h.Focused.FocusedButton.
		Foreground(lipgloss.Color(t.Surface)).
		Background(accent)
	h.Focused.Next = h.Focused.FocusedButton
	h.Focused.BlurredButton = h.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.Color(t.TitleBar))

	h.Focused.TextInput.Cursor = h.Focused.TextInput.Cursor.Foreground(accent)
	h.Focused.TextInput.Placeholder = h.Focused.TextInput.Placeholder.Foreground(muted)
	h.Focused.TextInput.Prompt = h.Focused.TextInput.Prompt.Foreground(accent)
	h.Focused.TextInput.Text = h.Focused.TextInput.Text.Foreground(text)

	h.Blurred = h.Focused
	h.Blurred.Base = h.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	h.Blurred.Card = h.Blurred.Base
	h.Blurred.NextIndicator = lipgloss.NewStyle()
	h.Blurred.PrevIndicator = lipgloss.NewStyle()

	h.Group.Title = h.Focused.Title
	h.Group.Description = h.Focused.Description

	return h
}
