package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := LoadEmbedded(nil)
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "3", all[1].ID)

	m, err := c.Lookup("1")
	require.NoError(t, err)
	assert.Equal(t, "Earthquake Safety Basics", m.Title)
	assert.Equal(t, Beginner, m.Difficulty)
	assert.Equal(t, 200, m.Points)
	assert.Equal(t, "15 min", m.EstimatedTime)

	kinds := make([]Kind, len(m.Steps))
	for i, s := range m.Steps {
		kinds[i] = s.Kind()
	}
	assert.Equal(t, []Kind{KindContent, KindInteractive, KindDrill, KindContent, KindQuiz}, kinds)

	drill, ok := m.Steps[2].(*DrillStep)
	require.True(t, ok)
	require.Len(t, drill.Options, 4)
	assert.True(t, drill.Options[1].IsCorrect)
	assert.False(t, drill.Options[0].IsCorrect)

	quiz, ok := m.Steps[4].(*QuizStep)
	require.True(t, ok)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, 1, quiz.Questions[0].CorrectChoiceIndex)
	assert.True(t, quiz.Questions[1].Valid())

	flood, err := c.Lookup("3")
	require.NoError(t, err)
	assert.Equal(t, Intermediate, flood.Difficulty)
	assert.Len(t, flood.Steps, 3)
}

func TestLookupNotFound(t *testing.T) {
	c, err := LoadEmbedded(nil)
	require.NoError(t, err)

	_, err = c.Lookup("2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModuleNotFound))
	assert.Contains(t, err.Error(), `"2"`)
}

func TestAddRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "not yaml",
			doc:  "id: [unterminated",
		},
		{
			name: "missing title",
			doc: `id: "9"
difficulty: Beginner
points: 10
steps:
  - title: Intro
    type: content
    text: hello`,
		},
		{
			name: "unknown step type",
			doc: `id: "9"
title: Broken
difficulty: Beginner
points: 10
steps:
  - title: Intro
    type: video`,
		},
		{
			name: "drill without options",
			doc: `id: "9"
title: Broken
difficulty: Beginner
points: 10
steps:
  - title: Drill
    type: drill
    scenario: what now`,
		},
		{
			name: "drill with empty options",
			doc: `id: "9"
title: Broken
difficulty: Beginner
points: 10
steps:
  - title: Drill
    type: drill
    scenario: what now
    options: []`,
		},
		{
			name: "unknown difficulty",
			doc: `id: "9"
title: Broken
difficulty: Expert
points: 10
steps:
  - title: Intro
    type: content`,
		},
		{
			name: "no steps",
			doc: `id: "9"
title: Empty
difficulty: Beginner
points: 10
steps: []`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil)
			_, err := c.Add([]byte(tt.doc))
			require.Error(t, err)
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestAddKeepsOutOfRangeQuizIndex(t *testing.T) {
	c := New(nil)
	m, err := c.Add([]byte(`id: "7"
title: Fire Safety
difficulty: advanced
points: 50
steps:
  - title: Check
    type: quiz
    questions:
      - question: Which extinguisher?
        options: [A, B]
        correct: 5
`))
	require.NoError(t, err)
	assert.Equal(t, Advanced, m.Difficulty)

	quiz := m.Steps[0].(*QuizStep)
	assert.False(t, quiz.Questions[0].Valid())
}

func TestLoadDirSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := `id: "5"
title: Fire Drill
difficulty: Beginner
points: 100
steps:
  - title: Intro
    type: content
    text: Know your exits.
    key_points: [Stay low]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fire.yaml"), []byte(good), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("title: nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# ignored"), 0o644))

	c, err := LoadEmbedded(nil)
	require.NoError(t, err)
	require.NoError(t, c.LoadDir(dir))

	assert.Equal(t, 3, c.Len())
	m, err := c.Lookup("5")
	require.NoError(t, err)
	assert.Equal(t, "Fire Drill", m.Title)
}

func TestLoadDirMissing(t *testing.T) {
	c := New(nil)
	err := c.LoadDir(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"Beginner", Beginner, false},
		{" intermediate ", Intermediate, false},
		{"ADVANCED", Advanced, false},
		{"", "", true},
		{"hard", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
