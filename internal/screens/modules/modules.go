// Package modules lists the learning modules of the catalog.
package modules

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/catalog"
	"github.com/abhisek/prepsmart/internal/router"
	"github.com/abhisek/prepsmart/internal/screen"
	"github.com/abhisek/prepsmart/internal/screens/deps"
	"github.com/abhisek/prepsmart/internal/screens/intro"
	"github.com/abhisek/prepsmart/internal/ui/components"
	"github.com/abhisek/prepsmart/internal/ui/layout"
	"github.com/abhisek/prepsmart/internal/ui/theme"
)

type scoresLoadedMsg struct {
	Best map[string]int
}

// ModulesScreen shows every catalog module with the learner's best quiz
// score.
type ModulesScreen struct {
	deps    deps.Deps
	modules []*catalog.Module
	best    map[string]int
	menu    components.Menu
}

var _ screen.Screen = (*ModulesScreen)(nil)
var _ screen.KeyHintProvider = (*ModulesScreen)(nil)

// New creates a ModulesScreen.
func New(d deps.Deps) *ModulesScreen {
	s := &ModulesScreen{deps: d}
	if d.Catalog != nil {
		s.modules = d.Catalog.All()
	}
	s.menu = s.buildMenu()
	return s
}

func (s *ModulesScreen) Init() tea.Cmd {
	return s.loadScores()
}

func (s *ModulesScreen) loadScores() tea.Cmd {
	d := s.deps
	if d.Rewards == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		p, err := d.CurrentProfile(ctx)
		if err != nil || p == nil {
			return scoresLoadedMsg{}
		}
		best, err := d.Rewards.BestScores(ctx, p.ID)
		if err != nil {
			d.Logger().Warn("best scores unavailable", "error", err)
			return scoresLoadedMsg{}
		}
		return scoresLoadedMsg{Best: best}
	}
}

func (s *ModulesScreen) buildMenu() components.Menu {
	items := make([]components.MenuItem, len(s.modules))
	for i, m := range s.modules {
		detail := fmt.Sprintf("%s · %s · %d pts", m.Difficulty, m.EstimatedTime, m.Points)
		if score, ok := s.best[m.ID]; ok {
			detail += fmt.Sprintf(" · best %d%%", score)
		}
		id := m.ID
		items[i] = components.MenuItem{
			Label:  m.Title,
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: intro.New(s.deps.Player, id)}
				}
			},
		}
	}
	menu := components.NewMenu(items)
	menu.Selected = s.menu.Selected
	return menu
}

func (s *ModulesScreen) Title() string {
	return "Learning Modules"
}

func (s *ModulesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ModulesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		s.best = msg.Best
		s.menu = s.buildMenu()
		return s, nil
	case screen.RefreshMsg:
		return s, s.loadScores()
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ModulesScreen) View(width, height int) string {
	if len(s.modules) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No modules available.")
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Learning Modules"))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if sel := s.menu.Selected; sel >= 0 && sel < len(s.modules) {
		m := s.modules[sel]
		b.WriteString("\n")
		b.WriteString(components.Card(
			theme.DifficultyColor(m.Difficulty.String()).Render(m.Difficulty.String())+"\n\n"+
				theme.Body.Render(m.Description), cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+b.String())
}
