// Package play renders a running module session step by step.
package play

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepsmart/internal/catalog"
	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/screen"
	"github.com/abhisek/prepsmart/internal/ui/components"
	"github.com/abhisek/prepsmart/internal/ui/layout"
)

// PlayScreen drives a started player.Session. Quiz auto-advance callbacks
// are fired by the host; the screen reads the session state on every render.
type PlayScreen struct {
	session *player.Session

	cursor    int
	cursorKey string
	errMsg    string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.EscapeHandler = (*PlayScreen)(nil)

// New creates a PlayScreen for a session that has already been started.
func New(s *player.Session) *PlayScreen {
	return &PlayScreen{session: s}
}

// Session returns the session being played.
func (s *PlayScreen) Session() *player.Session {
	return s.session
}

func (s *PlayScreen) Init() tea.Cmd {
	return nil
}

func (s *PlayScreen) Title() string {
	return s.session.Module().Title
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase() {
	case player.PhaseAwaitingDrillChoice, player.PhaseAnsweringQuiz:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Choose"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Esc", Description: "Exit"},
		}
	case player.PhaseShowingQuizResults:
		if s.lastStep() {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Complete Module"},
				{Key: "Esc", Description: "Exit"},
			}
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Exit"},
	}
}

// HandleEscape abandons the session. The session navigates away itself.
func (s *PlayScreen) HandleEscape() tea.Cmd {
	s.session.Abort()
	return nil
}

// Leave aborts the session if the screen is dropped while it is running.
func (s *PlayScreen) Leave() {
	s.session.Abort()
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoiceMsg:
		s.choose(msg.Index)
		return s, nil

	case tea.KeyMsg:
		switch s.session.Phase() {
		case player.PhaseAwaitingDrillChoice, player.PhaseAnsweringQuiz:
			return s, s.updateChoices(msg)
		case player.PhaseNone:
			return s, nil
		}
		if msg.String() == "enter" {
			s.complete()
		}
	}
	return s, nil
}

func (s *PlayScreen) choose(i int) {
	s.errMsg = ""
	var err error
	switch s.session.Phase() {
	case player.PhaseAwaitingDrillChoice:
		_, err = s.session.SelectDrillOption(i)
	case player.PhaseAnsweringQuiz:
		err = s.session.AnswerQuestion(i)
		if errors.Is(err, player.ErrAnswerPending) {
			err = nil
		}
	default:
		return
	}
	if err != nil {
		s.errMsg = err.Error()
	}
}

func (s *PlayScreen) complete() {
	s.errMsg = ""
	if err := s.session.CompleteCurrentStep(); err != nil {
		s.errMsg = err.Error()
	}
}

func (s *PlayScreen) updateChoices(msg tea.KeyMsg) tea.Cmd {
	mc, ok := s.choices()
	if !ok {
		return nil
	}
	mc, cmd := mc.Update(msg)
	s.cursor = mc.Cursor
	s.cursorKey = s.choiceKey()
	return cmd
}

// choiceKey identifies the option list on screen so the cursor resets when
// the step or question changes.
func (s *PlayScreen) choiceKey() string {
	if q, ok := s.session.QuizView(); ok {
		return fmt.Sprintf("%d/q%d", s.session.CurrentIndex(), q.Index)
	}
	return fmt.Sprintf("%d", s.session.CurrentIndex())
}

// choices builds the option list for the current drill or quiz question.
func (s *PlayScreen) choices() (components.MultiChoice, bool) {
	var mc components.MultiChoice
	if d, ok := s.session.DrillView(); ok {
		opts := make([]string, len(d.Step.Options))
		for i, o := range d.Step.Options {
			opts[i] = o.Text
		}
		mc = components.NewMultiChoice("", opts)
		mc.Reveal = true
		mc.Correct = func(i int) bool { return d.Step.Options[i].IsCorrect }
		if d.HasSelection() {
			mc = mc.Lock(d.Selected)
		}
	} else if q, ok := s.session.QuizView(); ok && !q.Finished {
		mc = components.NewMultiChoice("", q.Question.Choices)
		mc.Reveal = true
		correct := q.Question.CorrectChoiceIndex
		mc.Correct = func(i int) bool { return i == correct }
		if q.Answered >= 0 {
			mc = mc.Lock(q.Answered)
		}
	} else {
		return mc, false
	}
	if !mc.Locked() && s.cursorKey == s.choiceKey() {
		mc.Cursor = s.cursor
	}
	return mc, true
}

func (s *PlayScreen) lastStep() bool {
	return s.session.CurrentIndex() == s.session.TotalSteps()-1
}

// stepKindLabel names a step kind for the step header.
func stepKindLabel(st catalog.Step) string {
	switch st.(type) {
	case *catalog.ContentStep:
		return "Lesson"
	case *catalog.InteractiveStep:
		return "Practice"
	case *catalog.DrillStep:
		return "Drill"
	case *catalog.QuizStep:
		return "Quiz"
	}
	return ""
}
