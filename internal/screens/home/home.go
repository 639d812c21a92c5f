package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/rewards"
	"github.com/abhisek/prepsmart/internal/router"
	"github.com/abhisek/prepsmart/internal/screen"
	"github.com/abhisek/prepsmart/internal/screens/deps"
	"github.com/abhisek/prepsmart/internal/screens/history"
	"github.com/abhisek/prepsmart/internal/screens/modules"
	"github.com/abhisek/prepsmart/internal/store"
	"github.com/abhisek/prepsmart/internal/ui/components"
)

type statsLoadedMsg struct {
	Name   string
	Totals store.Totals
}

type signedOutMsg struct {
	Err error
}

// HomeScreen is the learner dashboard.
type HomeScreen struct {
	deps       deps.Deps
	menu       components.Menu
	menuLabels []string
	name       string
	totals     store.Totals
	errMsg     string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(d deps.Deps) *HomeScreen {
	menuLabels := []string{"MODULES", "HISTORY", "SIGN OUT", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: modules.New(d)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(d)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return signOut(d)
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       d,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func signOut(d deps.Deps) tea.Cmd {
	return func() tea.Msg {
		if d.Profiles == nil {
			return signedOutMsg{}
		}
		return signedOutMsg{Err: d.Profiles.SignOut(context.Background())}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	d := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		p, err := d.CurrentProfile(ctx)
		if err != nil {
			d.Logger().Warn("load profile failed", "error", err)
			return statsLoadedMsg{}
		}
		if p == nil {
			return statsLoadedMsg{}
		}
		msg := statsLoadedMsg{Name: p.Name}
		if d.Rewards != nil {
			totals, err := d.Rewards.Totals(ctx, p.ID)
			if err != nil {
				d.Logger().Warn("load totals failed", "error", err)
			}
			msg.Totals = totals
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.name = msg.Name
		h.totals = msg.Totals
		return h, nil
	case signedOutMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		return h, screen.Navigate(player.PathSignIn)
	case screen.RefreshMsg:
		return h, h.Init()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := contentWidth(width)
	rank := rewards.RankFor(h.totals.Points)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if g := renderGreeting(h.name, cw); g != "" {
		sections = append(sections, g)
	}
	if !compact {
		sections = append(sections, renderBadgeBox(rank, cw))
	}
	sections = append(sections, renderStatsBar(h.totals.Points, h.totals.Modules, rank, cw, compact))

	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}
	if h.errMsg != "" {
		sections = append(sections, h.errMsg)
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
