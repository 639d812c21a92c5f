package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepsmart/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of being popped.
type EscapeHandler interface {
	HandleEscape() tea.Cmd
}

// NavigateMsg asks the app to move to a top-level path.
type NavigateMsg struct {
	Path string
}

// NotifyMsg asks the app to show a toast.
type NotifyMsg struct {
	Title string
	Body  string
	Error bool
}

// RefreshMsg tells the active screen to reload its data.
type RefreshMsg struct{}

// Navigate returns a command emitting NavigateMsg.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}
