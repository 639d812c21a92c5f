package catalog

import (
	"fmt"
	"strings"
)

// Difficulty is the authored difficulty level of a module.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// ParseDifficulty parses a difficulty label case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) String() string {
	return string(d)
}

// Kind discriminates the step variants.
type Kind string

const (
	KindContent     Kind = "content"
	KindInteractive Kind = "interactive"
	KindDrill       Kind = "drill"
	KindQuiz        Kind = "quiz"
)

// Module is an authored unit of instructional content. Modules are read-only
// once loaded; the step order is the play order.
type Module struct {
	ID            string
	Title         string
	Description   string
	Difficulty    Difficulty
	EstimatedTime string
	Points        int
	Steps         []Step
}

// Step is one unit of interaction within a module. The set of
// implementations is closed: ContentStep, InteractiveStep, DrillStep and
// QuizStep.
type Step interface {
	Title() string
	Kind() Kind
	step()
}

// ContentStep is a reading slide with key learning points.
type ContentStep struct {
	Name      string
	Body      string
	KeyPoints []string
}

func (s *ContentStep) Title() string { return s.Name }
func (s *ContentStep) Kind() Kind    { return KindContent }
func (*ContentStep) step()           {}

// Action is a single numbered item of an interactive checklist.
type Action struct {
	Label       string
	Description string
}

// InteractiveStep walks through a sequence of actions to practise.
type InteractiveStep struct {
	Name    string
	Body    string
	Actions []Action
}

func (s *InteractiveStep) Title() string { return s.Name }
func (s *InteractiveStep) Kind() Kind    { return KindInteractive }
func (*InteractiveStep) step()           {}

// DrillOption is one possible response to a drill scenario.
type DrillOption struct {
	Text      string
	IsCorrect bool
	Feedback  string
}

// DrillStep is a single-choice scenario with immediate feedback.
type DrillStep struct {
	Name     string
	Scenario string
	Options  []DrillOption
}

func (s *DrillStep) Title() string { return s.Name }
func (s *DrillStep) Kind() Kind    { return KindDrill }
func (*DrillStep) step()           {}

// Question is a single multiple-choice quiz question.
type Question struct {
	Prompt             string
	Choices            []string
	CorrectChoiceIndex int
	Explanation        string
}

// Valid reports whether the correct choice index points into Choices.
func (q Question) Valid() bool {
	return q.CorrectChoiceIndex >= 0 && q.CorrectChoiceIndex < len(q.Choices)
}

// QuizStep is a multi-question assessment.
type QuizStep struct {
	Name      string
	Questions []Question
}

func (s *QuizStep) Title() string { return s.Name }
func (s *QuizStep) Kind() Kind    { return KindQuiz }
func (*QuizStep) step()           {}
