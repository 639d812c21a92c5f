package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/ui/theme"
)

// Toast is a transient message card.
type Toast struct {
	Title string
	Body  string
	Error bool
}

// View renders the toast at most width cells wide.
func (t Toast) View(width int) string {
	style := theme.ToastInfo
	titleColor := theme.Success
	if t.Error {
		style = theme.ToastError
		titleColor = theme.Error
	}
	if width > 48 {
		width = 48
	}

	content := lipgloss.NewStyle().Foreground(titleColor).Bold(true).Render(t.Title)
	if t.Body != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(t.Body)
	}
	return style.Width(width).Render(content)
}
