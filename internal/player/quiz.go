package player

import (
	"fmt"
	"math"

	"github.com/abhisek/prepsmart/internal/catalog"
)

// QuizSummary is the scored result of a finished quiz step.
type QuizSummary struct {
	StepIndex     int
	Correct       int
	QuestionCount int
	Score         int
	// Skipped counts malformed questions that were never presented.
	Skipped int
}

// Score returns round(100 * correct / count). A quiz with no questions is
// vacuously complete and scores 100.
func Score(correct, count int) int {
	if count <= 0 {
		return 100
	}
	return int(math.Round(100 * float64(correct) / float64(count)))
}

// QuizView is a snapshot of the active quiz step.
type QuizView struct {
	Step *catalog.QuizStep
	// Index is the position of the current question among presented questions.
	Index         int
	QuestionCount int
	Question      catalog.Question
	// Answered is the choice recorded for the current question, -1 if none.
	Answered int
	// Pending is true while an answer waits for the auto-advance.
	Pending  bool
	Finished bool
	Summary  QuizSummary
}

// quizAttempt presents the valid questions of a quiz step in order, once
// each, and records one answer per question.
type quizAttempt struct {
	step      *catalog.QuizStep
	stepIndex int
	questions []catalog.Question
	skipped   int
	current   int
	answers   map[int]int
	pending   bool
	finished  bool
	summary   QuizSummary
}

func newQuizAttempt(step *catalog.QuizStep, stepIndex int) *quizAttempt {
	q := &quizAttempt{
		step:      step,
		stepIndex: stepIndex,
		answers:   make(map[int]int),
	}
	for _, question := range step.Questions {
		if !question.Valid() {
			q.skipped++
			continue
		}
		q.questions = append(q.questions, question)
	}
	if len(q.questions) == 0 {
		q.finish()
	}
	return q
}

// record stores the answer for the current question. It reports whether this
// was the last question.
func (q *quizAttempt) record(choice int) (bool, error) {
	if q.finished {
		return false, fmt.Errorf("quiz already finished: %w", ErrInvalidChoice)
	}
	if q.pending {
		return false, ErrAnswerPending
	}
	question := q.questions[q.current]
	if choice < 0 || choice >= len(question.Choices) {
		return false, ErrInvalidChoice
	}
	q.answers[q.current] = choice
	q.pending = true
	return q.current == len(q.questions)-1, nil
}

// advance moves past an answered question, finishing the quiz after the last.
func (q *quizAttempt) advance() {
	if !q.pending || q.finished {
		return
	}
	q.pending = false
	if q.current < len(q.questions)-1 {
		q.current++
		return
	}
	q.finish()
}

func (q *quizAttempt) finish() {
	correct := 0
	for i, question := range q.questions {
		if ans, ok := q.answers[i]; ok && ans == question.CorrectChoiceIndex {
			correct++
		}
	}
	q.pending = false
	q.finished = true
	q.summary = QuizSummary{
		StepIndex:     q.stepIndex,
		Correct:       correct,
		QuestionCount: len(q.questions),
		Score:         Score(correct, len(q.questions)),
		Skipped:       q.skipped,
	}
}

func (q *quizAttempt) view() QuizView {
	v := QuizView{
		Step:          q.step,
		Index:         q.current,
		QuestionCount: len(q.questions),
		Answered:      -1,
		Pending:       q.pending,
		Finished:      q.finished,
		Summary:       q.summary,
	}
	if q.current < len(q.questions) {
		v.Question = q.questions[q.current]
		if ans, ok := q.answers[q.current]; ok {
			v.Answered = ans
		}
	}
	return v
}

func quizNotification(s QuizSummary) Notification {
	return Notification{
		Title: fmt.Sprintf("Quiz Complete! %d%%", s.Score),
		Body:  fmt.Sprintf("You got %d out of %d questions correct.", s.Correct, s.QuestionCount),
		Tone:  ToneInfo,
	}
}
