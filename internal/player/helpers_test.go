package player

import (
	"context"
	"sync"

	"github.com/abhisek/prepsmart/internal/catalog"
)

type recorder struct {
	mu    sync.Mutex
	notes []Notification
	paths []string
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) NavigateTo(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.Title
	}
	return out
}

type staticUser struct {
	user *User
	err  error
}

func (s staticUser) CurrentUser(context.Context) (*User, error) {
	return s.user, s.err
}

func contentStep(name string) *catalog.ContentStep {
	return &catalog.ContentStep{Name: name, Body: name + " body"}
}

func twoQuestionQuiz() *catalog.QuizStep {
	return &catalog.QuizStep{
		Name: "Knowledge Check",
		Questions: []catalog.Question{
			{Prompt: "q0", Choices: []string{"a", "b", "c", "d"}, CorrectChoiceIndex: 1},
			{Prompt: "q1", Choices: []string{"a", "b", "c", "d"}, CorrectChoiceIndex: 1},
		},
	}
}

func threeOptionDrill() *catalog.DrillStep {
	return &catalog.DrillStep{
		Name:     "Drill",
		Scenario: "Shaking starts.",
		Options: []catalog.DrillOption{
			{Text: "run", Feedback: "no"},
			{Text: "drop", IsCorrect: true, Feedback: "yes"},
			{Text: "doorway", Feedback: "no"},
		},
	}
}

// earthquakeModule mirrors the shape of the built-in module "1".
func earthquakeModule() *catalog.Module {
	return &catalog.Module{
		ID:         "1",
		Title:      "Earthquake Safety Basics",
		Difficulty: catalog.Beginner,
		Points:     200,
		Steps: []catalog.Step{
			contentStep("Understanding Earthquakes"),
			&catalog.InteractiveStep{Name: "Drop, Cover, and Hold On", Actions: []catalog.Action{{Label: "DROP"}}},
			&catalog.DrillStep{
				Name: "Virtual Drill Simulation",
				Options: []catalog.DrillOption{
					{Text: "Run outside immediately"},
					{Text: "Drop, cover under desk, hold on", IsCorrect: true},
					{Text: "Stand in a doorway"},
					{Text: "Hide under the stairs"},
				},
			},
			contentStep("After the Shaking Stops"),
			twoQuestionQuiz(),
		},
	}
}

func contentModule(n int) *catalog.Module {
	m := &catalog.Module{ID: "c", Title: "Content only", Points: 10}
	for i := 0; i < n; i++ {
		m.Steps = append(m.Steps, contentStep("step"))
	}
	return m
}

type mapCatalog map[string]*catalog.Module

func (c mapCatalog) Lookup(id string) (*catalog.Module, error) {
	if m, ok := c[id]; ok {
		return m, nil
	}
	return nil, catalog.ErrModuleNotFound
}

func (c mapCatalog) All() []*catalog.Module {
	out := make([]*catalog.Module, 0, len(c))
	for _, m := range c {
		out = append(out, m)
	}
	return out
}
