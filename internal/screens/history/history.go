package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/rewards"
	"github.com/abhisek/prepsmart/internal/router"
	"github.com/abhisek/prepsmart/internal/screen"
	"github.com/abhisek/prepsmart/internal/screens/deps"
	"github.com/abhisek/prepsmart/internal/store"
	"github.com/abhisek/prepsmart/internal/ui/layout"
	"github.com/abhisek/prepsmart/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Completions []store.CompletionRecord
	Totals      store.Totals
	Err         error
}

// HistoryScreen displays the learner's completed modules.
type HistoryScreen struct {
	deps        deps.Deps
	completions []store.CompletionRecord
	totals      store.Totals
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(d deps.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     d,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	d := s.deps
	return func() tea.Msg {
		ctx := context.Background()

		if d.Events == nil {
			return historyLoadedMsg{}
		}
		p, err := d.CurrentProfile(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		if p == nil {
			return historyLoadedMsg{}
		}

		completions, err := d.Events.QueryCompletions(ctx, store.QueryOpts{Limit: historyLimit, UserID: p.ID})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		totals, err := d.Events.PointTotals(ctx, p.ID)
		if err != nil {
			return historyLoadedMsg{Completions: completions}
		}
		return historyLoadedMsg{Completions: completions, Totals: totals}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.completions = msg.Completions
			s.totals = msg.Totals
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.completions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.completions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No modules completed yet. Start training!")
	}

	var b strings.Builder
	b.WriteString("\n")

	rank := rewards.RankFor(s.totals.Points)
	summary := fmt.Sprintf("%d pts  ·  %d modules  ·  %s", s.totals.Points, s.totals.Modules, rank.DisplayName())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(summary)))
	b.WriteString("\n\n")

	for i, c := range s.completions {
		dateStr := c.Timestamp.Format("Jan 02, 2006")
		mins := c.DurationSecs / 60
		secs := c.DurationSecs % 60
		durationStr := fmt.Sprintf("%d:%02d", mins, secs)

		scoreStr := ""
		if c.QuizScore != nil {
			scoreStr = fmt.Sprintf("  quiz %d%%", *c.QuizScore)
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %s  +%d pts%s",
			prefix, dateStr, durationStr, c.ModuleTitle, c.Points, scoreStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    module %s  ·  session %s  ·  #%d", c.ModuleID, shortID(c.SessionID), c.Sequence)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
