// Package notfound shows the screen for an unknown module id.
package notfound

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/router"
	"github.com/abhisek/prepsmart/internal/screen"
	"github.com/abhisek/prepsmart/internal/ui/components"
	"github.com/abhisek/prepsmart/internal/ui/layout"
	"github.com/abhisek/prepsmart/internal/ui/theme"
)

// NotFoundScreen reports a module that is not in the catalog.
type NotFoundScreen struct {
	moduleID string
}

var _ screen.Screen = (*NotFoundScreen)(nil)
var _ screen.KeyHintProvider = (*NotFoundScreen)(nil)

// New creates a NotFoundScreen for moduleID.
func New(moduleID string) *NotFoundScreen {
	return &NotFoundScreen{moduleID: moduleID}
}

func (p *NotFoundScreen) Init() tea.Cmd {
	return nil
}

func (p *NotFoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return p, nil
}

func (p *NotFoundScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to Modules"},
	}
}

func (p *NotFoundScreen) View(width, height int) string {
	content := theme.Title.Render("Module Not Found") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).
			Render("The module you're looking for doesn't exist.") + "\n" +
		theme.Hint.Render(fmt.Sprintf("id: %s", p.moduleID)) + "\n\n" +
		components.NewButton("Back to Modules", true).View()

	return components.Center(content, width, height)
}

func (p *NotFoundScreen) Title() string {
	return "Module Not Found"
}
