package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

var quitHint = KeyHint{Key: "Ctrl+C", Description: "Quit"}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("PrepSmart")
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(
		"Modules need at least %d x %d to show\nscenarios and quiz choices side by side.",
		MinWidth, MinHeight,
	))
	size := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Window is %d x %d", width, height),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", size))
}

// Header is the top bar: product name, screen title and the learner's score.
type Header struct {
	Title   string
	Learner string // empty when signed out
	Points  int
}

// Render draws the header at the given terminal width.
func (h Header) Render(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  PrepSmart")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(h.Title)

	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d pts", h.Points))
	if h.Learner != "" {
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Learner+"   ") + right
	} else {
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render("signed out")
	}

	return bar(spread(left, center, right, width-4), width)
}

// FooterHints completes a screen's hints with navigation defaults and the
// quit binding. nested reports whether a back step is possible.
func FooterHints(screenHints []KeyHint, nested bool) []KeyHint {
	switch {
	case len(screenHints) > 0:
		return append(append([]KeyHint(nil), screenHints...), quitHint)
	case nested:
		return []KeyHint{{Key: "Esc", Description: "Back"}, quitHint}
	default:
		return []KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, quitHint}
	}
}

// RenderFooter renders the footer with key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render("  ·  ")
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar("  "+strings.Join(parts, sep), width)
}

// ContentHeight is the height left for the active screen between header and
// footer.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderFrame stacks header, content and footer into one frame.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// spread places left at the start, center in the middle and right at the end
// of a line of the given inner width.
func spread(left, center, right string, inner int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
