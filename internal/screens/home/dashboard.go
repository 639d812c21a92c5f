package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/rewards"
	"github.com/abhisek/prepsmart/internal/ui/theme"
)

const dashboardTitleFull = ` ___                ___                  _   
| _ \_ _ ___ _ __  / __|_ __  __ _ _ _| |_ 
|  _/ '_/ -_) '_ \ \__ \ '  \/ _' | '_|  _|
|_| |_| \___| .__/ |___/_|_|_\__,_|_|  \__|
            |_|                             `

const dashboardTitleCompact = "P · R · E · P · S · M · A · R · T"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	text := dashboardTitleFull
	if compact {
		text = dashboardTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(text))
}

// renderGreeting renders the signed-in learner line.
func renderGreeting(name string, cw int) string {
	if name == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Welcome back, %s", name))
}

// renderStatsBar renders the reward stats in a bordered box matching content width.
func renderStatsBar(points, modules int, rank rewards.Rank, cw int, compact bool) string {
	pointStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	moduleStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	rankStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			pointStyle.Render(fmt.Sprintf("★%d", points)),
			moduleStyle.Render(fmt.Sprintf("✓%d", modules)),
			rankStyle.Render(rank.DisplayName()),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			pointStyle.Render(fmt.Sprintf("★ %d POINTS", points)),
			moduleStyle.Render(fmt.Sprintf("✓ %d MODULES", modules)),
			rankStyle.Render(strings.ToUpper(rank.DisplayName())),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals.
func renderMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderBadgeBox renders the rank badge centered in a box matching content width.
func renderBadgeBox(rank rewards.Rank, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderBadge(rank))
}

// renderFrame wraps content in a double-border frame, centered within the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
