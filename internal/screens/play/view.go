package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepsmart/internal/catalog"
	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/ui/components"
	"github.com/abhisek/prepsmart/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	st := s.session.CurrentStep()
	if st == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Leaving module...")
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	heading := fmt.Sprintf("Step %d of %d: %s", s.session.CurrentIndex()+1, s.session.TotalSteps(), st.Title())
	b.WriteString(theme.Heading.Render(heading))
	if label := stepKindLabel(st); label != "" {
		b.WriteString("  " + theme.Hint.Render(label))
	}
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("Progress", s.session.StepPercent(), true, cw).View())
	b.WriteString("\n\n")

	var body string
	switch st := st.(type) {
	case *catalog.ContentStep:
		body = renderContent(st)
	case *catalog.InteractiveStep:
		body = renderInteractive(st)
	case *catalog.DrillStep:
		body = s.renderDrill(st)
	case *catalog.QuizStep:
		body = s.renderQuiz()
	}
	b.WriteString(components.Card(body, cw))
	b.WriteString("\n\n")
	b.WriteString(s.renderAction())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func renderContent(st *catalog.ContentStep) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render(st.Body))
	if len(st.KeyPoints) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("Key Points:"))
		b.WriteString("\n")
		for _, p := range st.KeyPoints {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  ✓ "))
			b.WriteString(theme.Body.Render(p))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderInteractive(st *catalog.InteractiveStep) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render(st.Body))
	b.WriteString("\n")
	for i, a := range st.Actions {
		b.WriteString("\n")
		num := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("  %d. ", i+1))
		b.WriteString(num + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(a.Label))
		if a.Description != "" {
			b.WriteString("\n     " + theme.Hint.Render(a.Description))
		}
	}
	return b.String()
}

func (s *PlayScreen) renderDrill(st *catalog.DrillStep) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Scenario:"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(st.Scenario))
	b.WriteString("\n\n")
	if mc, ok := s.choices(); ok {
		b.WriteString(mc.View())
	}
	if d, ok := s.session.DrillView(); ok && d.HasSelection() {
		opt := d.Step.Options[d.Selected]
		style := theme.Correct
		verdict := "Correct!"
		if !opt.IsCorrect {
			style = theme.Incorrect
			verdict = "Try Again"
		}
		b.WriteString("\n")
		b.WriteString(style.Render(verdict))
		if opt.Feedback != "" {
			b.WriteString("\n" + theme.Body.Render(opt.Feedback))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *PlayScreen) renderQuiz() string {
	q, ok := s.session.QuizView()
	if !ok {
		return ""
	}
	if q.Finished {
		return renderQuizResults(q)
	}

	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d", q.Index+1, q.QuestionCount)))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading.Render(q.Question.Prompt))
	b.WriteString("\n\n")
	if mc, ok := s.choices(); ok {
		b.WriteString(mc.View())
	}
	if q.Pending {
		b.WriteString("\n")
		if q.Answered == q.Question.CorrectChoiceIndex {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite."))
		}
		if q.Question.Explanation != "" {
			b.WriteString("\n" + theme.Hint.Render(q.Question.Explanation))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderQuizResults(q player.QuizView) string {
	sum := q.Summary
	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz Complete!"))
	b.WriteString("\n\n")

	style := theme.Correct
	if sum.Score < 70 {
		style = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	}
	b.WriteString(style.Render(fmt.Sprintf("Score: %d%% (%d/%d correct)", sum.Score, sum.Correct, sum.QuestionCount)))
	if sum.Skipped > 0 {
		b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("%d question(s) could not be shown", sum.Skipped)))
	}
	return b.String()
}

func (s *PlayScreen) renderAction() string {
	switch s.session.Phase() {
	case player.PhaseViewingContent:
		return components.NewButton("Continue", true).View()
	case player.PhaseViewingInteractive:
		return components.NewButton("Practice Now", true).View()
	case player.PhaseAwaitingDrillChoice:
		return components.NewButton("Continue", false).View()
	case player.PhaseShowingDrillFeedback:
		return components.NewButton("Continue", true).View()
	case player.PhaseAnsweringQuiz:
		if q, ok := s.session.QuizView(); ok && q.Pending {
			return theme.Hint.Render("Next question...")
		}
		return theme.Hint.Render("Choose an answer")
	case player.PhaseShowingQuizResults:
		if s.lastStep() {
			return components.NewButton("Complete Module", true).View()
		}
		return components.NewButton("Continue", true).View()
	}
	return ""
}
