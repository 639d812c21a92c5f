package catalog

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// moduleDoc is the on-disk YAML shape of a module.
type moduleDoc struct {
	ID            string    `yaml:"id"`
	Title         string    `yaml:"title"`
	Description   string    `yaml:"description"`
	Difficulty    string    `yaml:"difficulty"`
	EstimatedTime string    `yaml:"estimated_time"`
	Points        int       `yaml:"points"`
	Steps         []stepDoc `yaml:"steps"`
}

type stepDoc struct {
	Title     string        `yaml:"title"`
	Type      string        `yaml:"type"`
	Text      string        `yaml:"text"`
	KeyPoints []string      `yaml:"key_points"`
	Actions   []actionDoc   `yaml:"actions"`
	Scenario  string        `yaml:"scenario"`
	Options   []optionDoc   `yaml:"options"`
	Questions []questionDoc `yaml:"questions"`
}

type actionDoc struct {
	Action      string `yaml:"action"`
	Description string `yaml:"description"`
}

type optionDoc struct {
	Text     string `yaml:"text"`
	Correct  bool   `yaml:"correct"`
	Feedback string `yaml:"feedback"`
}

type questionDoc struct {
	Question    string   `yaml:"question"`
	Options     []string `yaml:"options"`
	Correct     int      `yaml:"correct"`
	Explanation string   `yaml:"explanation"`
}

// errNoSteps rejects modules that could never be started.
var errNoSteps = errors.New("module has no steps")

// parseModule decodes, validates and converts one YAML document.
func parseModule(data []byte) (*Module, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc moduleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode module: %w", err)
	}

	difficulty, err := ParseDifficulty(doc.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("module %q: %w", doc.ID, err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("module %q: %w", doc.ID, errNoSteps)
	}

	m := &Module{
		ID:            doc.ID,
		Title:         doc.Title,
		Description:   doc.Description,
		Difficulty:    difficulty,
		EstimatedTime: doc.EstimatedTime,
		Points:        doc.Points,
		Steps:         make([]Step, 0, len(doc.Steps)),
	}
	for i, sd := range doc.Steps {
		step, err := sd.toStep()
		if err != nil {
			return nil, fmt.Errorf("module %q step %d: %w", doc.ID, i+1, err)
		}
		m.Steps = append(m.Steps, step)
	}
	return m, nil
}

func (sd stepDoc) toStep() (Step, error) {
	switch Kind(sd.Type) {
	case KindContent:
		return &ContentStep{
			Name:      sd.Title,
			Body:      sd.Text,
			KeyPoints: sd.KeyPoints,
		}, nil

	case KindInteractive:
		actions := make([]Action, len(sd.Actions))
		for i, a := range sd.Actions {
			actions[i] = Action{Label: a.Action, Description: a.Description}
		}
		return &InteractiveStep{Name: sd.Title, Body: sd.Text, Actions: actions}, nil

	case KindDrill:
		options := make([]DrillOption, len(sd.Options))
		for i, o := range sd.Options {
			options[i] = DrillOption{Text: o.Text, IsCorrect: o.Correct, Feedback: o.Feedback}
		}
		return &DrillStep{Name: sd.Title, Scenario: sd.Scenario, Options: options}, nil

	case KindQuiz:
		questions := make([]Question, len(sd.Questions))
		for i, q := range sd.Questions {
			questions[i] = Question{
				Prompt:             q.Question,
				Choices:            q.Options,
				CorrectChoiceIndex: q.Correct,
				Explanation:        q.Explanation,
			}
		}
		return &QuizStep{Name: sd.Title, Questions: questions}, nil
	}
	return nil, fmt.Errorf("unknown step type %q", sd.Type)
}
