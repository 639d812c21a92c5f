package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/ui/theme"
)

// ChoiceMsg reports that the learner picked option Index.
type ChoiceMsg struct {
	Index int
}

// Letter returns the option label for index i: A, B, C...
func Letter(i int) string {
	return string(rune('A' + i))
}

// MultiChoice is a lettered option list. Options are picked with the arrow
// keys and Enter, or directly with their letter or number.
type MultiChoice struct {
	Prompt  string
	Options []string
	Cursor  int
	// Chosen is the picked option, -1 while open.
	Chosen int
	// Reveal colours the chosen option by Correct once chosen.
	Reveal  bool
	Correct func(i int) bool
}

// NewMultiChoice creates an open option list.
func NewMultiChoice(prompt string, options []string) MultiChoice {
	return MultiChoice{
		Prompt:  prompt,
		Options: options,
		Chosen:  -1,
	}
}

// Locked reports whether an option has been chosen.
func (m MultiChoice) Locked() bool {
	return m.Chosen >= 0
}

// Update handles keyboard navigation and selection. A pick emits ChoiceMsg;
// the owner decides whether to lock it with Lock.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked() {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter":
		return m, choose(m.Cursor)
	}

	if idx, ok := keyIndex(key); ok && idx < len(m.Options) {
		m.Cursor = idx
		return m, choose(idx)
	}
	return m, nil
}

// Lock freezes the list on option i.
func (m MultiChoice) Lock(i int) MultiChoice {
	m.Chosen = i
	m.Cursor = i
	return m
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: i} }
}

// keyIndex maps a-z and 1-9 to option indices.
func keyIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	}
	return 0, false
}

// View renders the option list.
func (m MultiChoice) View() string {
	var b strings.Builder
	if m.Prompt != "" {
		b.WriteString(theme.Heading.Render(m.Prompt) + "\n\n")
	}

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Locked() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, Letter(i), opt)

		var style lipgloss.Style
		switch {
		case m.Locked() && i == m.Chosen && m.Reveal && m.Correct != nil && m.Correct(i):
			style = theme.Correct
		case m.Locked() && i == m.Chosen && m.Reveal:
			style = theme.Incorrect
		case m.Locked() && i == m.Chosen:
			style = theme.Selected
		case m.Locked():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
