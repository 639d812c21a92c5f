// Package intro shows a module's intro card and starts the session.
package intro

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/router"
	"github.com/abhisek/prepsmart/internal/screen"
	"github.com/abhisek/prepsmart/internal/screens/notfound"
	"github.com/abhisek/prepsmart/internal/screens/play"
	"github.com/abhisek/prepsmart/internal/ui/components"
	"github.com/abhisek/prepsmart/internal/ui/layout"
	"github.com/abhisek/prepsmart/internal/ui/theme"
)

type openedMsg struct {
	Session *player.Session
	Err     error
}

// IntroScreen opens a module through the player gate and shows what the
// learner is about to do.
type IntroScreen struct {
	player   *player.Player
	moduleID string
	session  *player.Session
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*IntroScreen)(nil)
var _ screen.KeyHintProvider = (*IntroScreen)(nil)

// New creates an IntroScreen for moduleID.
func New(p *player.Player, moduleID string) *IntroScreen {
	return &IntroScreen{player: p, moduleID: moduleID}
}

func (s *IntroScreen) Init() tea.Cmd {
	p, id := s.player, s.moduleID
	return func() tea.Msg {
		sess, err := p.Open(context.Background(), id)
		return openedMsg{Session: sess, Err: err}
	}
}

func (s *IntroScreen) Title() string {
	if s.session != nil {
		return s.session.Module().Title
	}
	return "Module"
}

func (s *IntroScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start Module"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case openedMsg:
		s.loaded = true
		switch {
		case player.IsNotFound(msg.Err):
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: notfound.New(s.moduleID)}
			}
		case errors.Is(msg.Err, player.ErrNotSignedIn):
			// The player has already asked the host to show sign-in.
			s.errMsg = "Please sign in to start this module."
		case msg.Err != nil:
			s.errMsg = msg.Err.Error()
		default:
			s.session = msg.Session
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" && s.session != nil {
			if err := s.session.Start(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: play.New(s.session)}
			}
		}
	}
	return s, nil
}

func (s *IntroScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading module...")
	}
	if s.session == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.errMsg)
	}

	m := s.session.Module()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(m.Title))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(m.Description))
	b.WriteString("\n\n")

	badges := []string{
		theme.DifficultyColor(m.Difficulty.String()).Render(m.Difficulty.String()),
		lipgloss.NewStyle().Foreground(theme.Text).Render("⏱ " + m.EstimatedTime),
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d points", m.Points)),
	}
	b.WriteString(strings.Join(badges, "   "))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Render("What You'll Learn"))
	b.WriteString("\n")
	for i, st := range m.Steps {
		num := lipgloss.NewStyle().Foreground(theme.Primary).Render(fmt.Sprintf("  %d. ", i+1))
		b.WriteString(num + theme.Body.Render(st.Title()) + "\n")
	}

	out := components.Card(strings.TrimRight(b.String(), "\n"), cw) + "\n\n" +
		components.NewButton("Start Module", true).View()
	if s.errMsg != "" {
		out += "\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+out)
}
