// Package login is the sign-in gate shown when no learner is signed in.
package login

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/screen"
	"github.com/abhisek/prepsmart/internal/store"
	"github.com/abhisek/prepsmart/internal/ui/components"
	"github.com/abhisek/prepsmart/internal/ui/layout"
	"github.com/abhisek/prepsmart/internal/ui/theme"
)

const maxNameLength = 40

type signedInMsg struct {
	Profile *store.Profile
	Err     error
}

// LoginScreen asks for the learner's name and signs them in.
type LoginScreen struct {
	profiles store.ProfileRepo
	role     string
	input    components.TextInput
	errMsg   string
	busy     bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen that signs learners in with role.
func New(profiles store.ProfileRepo, role string) *LoginScreen {
	if role == "" {
		role = "student"
	}
	return &LoginScreen{
		profiles: profiles,
		role:     role,
		input:    components.NewTextInput("Your name", maxNameLength),
	}
}

// RoleFromPath extracts the role query parameter of a sign-in path.
func RoleFromPath(path string) string {
	u, err := url.Parse(path)
	if err != nil {
		return "student"
	}
	if role := u.Query().Get("role"); role != "" {
		return strings.ToLower(role)
	}
	return "student"
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *LoginScreen) Title() string {
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signedInMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		welcome := func() tea.Msg {
			return screen.NotifyMsg{
				Title: fmt.Sprintf("Welcome, %s!", msg.Profile.Name),
				Body:  "Pick a module to start training.",
			}
		}
		return s, tea.Batch(welcome, screen.Navigate(player.PathDashboard))

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	if s.busy {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	name := s.input.Value()
	if name == "" {
		s.errMsg = "Please enter your name."
		return nil
	}
	if s.profiles == nil {
		s.errMsg = "Sign-in is unavailable without a database."
		return nil
	}
	s.errMsg = ""
	s.busy = true
	profiles, role := s.profiles, s.role
	return func() tea.Msg {
		p, err := profiles.SignIn(context.Background(), name, role)
		return signedInMsg{Profile: p, Err: err}
	}
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 50 {
		cw = 50
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Sign in to PrepSmart"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You need to sign in as a %s to start a module.", s.role)))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	if s.busy {
		b.WriteString("\n\n" + theme.Hint.Render("Signing in..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}
