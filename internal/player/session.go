package player

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prepsmart/internal/catalog"
)

// CompletionEvent describes a finished session. It is handed to the
// completion hook exactly once.
type CompletionEvent struct {
	SessionID   string
	ModuleID    string
	ModuleTitle string
	Points      int
	User        *User
	Quizzes     []QuizSummary
	StartedAt   time.Time
	CompletedAt time.Time
}

// QuizScore returns the mean score across the module's quizzes.
func (e CompletionEvent) QuizScore() (int, bool) {
	if len(e.Quizzes) == 0 {
		return 0, false
	}
	total := 0
	for _, q := range e.Quizzes {
		total += q.Score
	}
	return int(math.Round(float64(total) / float64(len(e.Quizzes)))), true
}

// Session is one attempt at playing a module. It is never resumed: a new
// attempt needs a new Session.
//
// All methods are safe for concurrent use. Collaborators (notifier,
// navigator, completion hook) are called after the session lock is released.
type Session struct {
	settings

	mu          sync.Mutex
	id          string
	module      *catalog.Module
	state       State
	current     int
	completed   map[int]struct{}
	drill       *drillAttempt
	quiz        *quizAttempt
	quizResults []QuizSummary
	startedAt   time.Time

	// Pending quiz advance. gen invalidates callbacks that were cancelled
	// but had already been dequeued.
	cancelAdvance CancelFunc
	gen           uint64

	navigated bool
}

// NewSession creates a NotStarted session for m.
func NewSession(m *catalog.Module, opts ...Option) *Session {
	st := defaultSettings()
	for _, o := range opts {
		o(&st)
	}
	return newSession(m, st)
}

func newSession(m *catalog.Module, st settings) *Session {
	return &Session{
		settings:  st,
		id:        uuid.NewString(),
		module:    m,
		state:     StateNotStarted,
		completed: make(map[int]struct{}),
	}
}

// effects are collaborator calls gathered under the lock and run after it.
type effects struct {
	notes      []Notification
	completion *CompletionEvent
	navigate   string
}

func (s *Session) run(e effects) {
	for _, n := range e.notes {
		s.notifier.Notify(n)
	}
	if e.completion != nil && s.hook != nil {
		if err := s.hook(*e.completion); err != nil {
			s.log.Error("completion hook failed",
				"session", s.id, "module", e.completion.ModuleID, "error", err)
		}
	}
	if e.navigate != "" {
		s.navigator.NavigateTo(e.navigate)
	}
}

// exitLocked claims the single navigation allowed per session.
func (s *Session) exitLocked(e *effects) {
	if s.navigated {
		return
	}
	s.navigated = true
	e.navigate = s.exitPath
}

func (s *Session) ID() string { return s.id }

func (s *Session) Module() *catalog.Module { return s.module }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start moves the session to the first step.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.state != StateNotStarted {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	if s.module == nil || len(s.module.Steps) == 0 {
		s.mu.Unlock()
		return ErrNoSteps
	}
	s.state = StateInProgress
	s.current = 0
	s.startedAt = s.now()
	var e effects
	s.enterStepLocked(&e)
	s.log.Debug("session started", "session", s.id, "module", s.module.ID, "steps", len(s.module.Steps))
	s.mu.Unlock()

	s.run(e)
	return nil
}

// enterStepLocked resets the per-step interaction for the current step. A
// quiz with nothing to answer finishes on entry and reports its summary.
func (s *Session) enterStepLocked(e *effects) {
	s.drill = nil
	s.quiz = nil
	switch st := s.module.Steps[s.current].(type) {
	case *catalog.ContentStep, *catalog.InteractiveStep:
	case *catalog.DrillStep:
		s.drill = newDrillAttempt(st)
		if len(st.Options) == 0 {
			s.log.Warn("drill step has no options",
				"module", s.module.ID, "step", s.current)
		}
	case *catalog.QuizStep:
		s.quiz = newQuizAttempt(st, s.current)
		if s.quiz.skipped > 0 {
			s.log.Warn("skipping malformed quiz questions",
				"module", s.module.ID, "step", s.current, "skipped", s.quiz.skipped)
		}
		if s.quiz.finished {
			e.notes = append(e.notes, quizNotification(s.quiz.summary))
		}
	default:
		panic(fmt.Sprintf("player: unhandled step type %T", st))
	}
}

// CurrentStep returns the active step, or nil outside InProgress.
func (s *Session) CurrentStep() catalog.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return nil
	}
	return s.module.Steps[s.current]
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) TotalSteps() int {
	if s.module == nil {
		return 0
	}
	return len(s.module.Steps)
}

// Completed reports whether step i has been completed.
func (s *Session) Completed(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.completed[i]
	return ok
}

// CompletedIndices returns the completed step indices in ascending order.
func (s *Session) CompletedIndices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.completed))
	for i := range s.completed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Phase returns the interaction substate of the current step.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return PhaseNone
	}
	switch st := s.module.Steps[s.current].(type) {
	case *catalog.ContentStep:
		return PhaseViewingContent
	case *catalog.InteractiveStep:
		return PhaseViewingInteractive
	case *catalog.DrillStep:
		if s.drill.resolved() {
			return PhaseShowingDrillFeedback
		}
		return PhaseAwaitingDrillChoice
	case *catalog.QuizStep:
		if s.quiz.finished {
			return PhaseShowingQuizResults
		}
		return PhaseAnsweringQuiz
	default:
		panic(fmt.Sprintf("player: unhandled step type %T", st))
	}
}

// Resolved reports whether the current step's interaction allows it to be
// completed.
func (s *Session) Resolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolvedLocked()
}

func (s *Session) resolvedLocked() bool {
	if s.state != StateInProgress {
		return false
	}
	switch st := s.module.Steps[s.current].(type) {
	case *catalog.ContentStep, *catalog.InteractiveStep:
		return true
	case *catalog.DrillStep:
		return s.drill.resolved()
	case *catalog.QuizStep:
		return s.quiz.finished
	default:
		panic(fmt.Sprintf("player: unhandled step type %T", st))
	}
}

// SelectDrillOption selects option i of the current drill step. The first
// selection is frozen; later calls return it with Accepted=false and emit
// nothing.
func (s *Session) SelectDrillOption(i int) (DrillOutcome, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return DrillOutcome{}, ErrNotInProgress
	}
	if s.drill == nil {
		s.mu.Unlock()
		return DrillOutcome{}, ErrWrongStepKind
	}
	out, err := s.drill.selectOption(i)
	if err != nil || !out.Accepted {
		s.mu.Unlock()
		return out, err
	}
	s.log.Debug("drill option selected", "session", s.id, "step", s.current, "option", i, "correct", out.Option.IsCorrect)
	e := effects{notes: []Notification{drillNotification(out.Option)}}
	s.mu.Unlock()

	s.run(e)
	return out, nil
}

// DrillView returns the current drill step, if the current step is one.
func (s *Session) DrillView() (DrillView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.drill == nil {
		return DrillView{}, false
	}
	return DrillView{Step: s.drill.step, Selected: s.drill.selected}, true
}

// AnswerQuestion records choice for the current quiz question. The next
// question becomes answerable after the quiz delay; the last answer
// finishes the quiz immediately and notifies the summary.
func (s *Session) AnswerQuestion(choice int) error {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return ErrNotInProgress
	}
	if s.quiz == nil {
		s.mu.Unlock()
		return ErrWrongStepKind
	}
	last, err := s.quiz.record(choice)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	var e effects
	switch {
	case last || s.quizDelay == 0:
		s.quiz.advance()
		if s.quiz.finished {
			e.notes = append(e.notes, quizNotification(s.quiz.summary))
			s.log.Debug("quiz finished", "session", s.id, "step", s.current, "score", s.quiz.summary.Score)
		}
	default:
		s.gen++
		gen := s.gen
		s.cancelAdvance = s.scheduler.After(s.quizDelay, func() { s.onAdvance(gen) })
	}
	s.mu.Unlock()

	s.run(e)
	return nil
}

// onAdvance is the scheduled quiz advance. Stale generations are ignored.
func (s *Session) onAdvance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.state != StateInProgress || s.quiz == nil {
		return
	}
	s.cancelAdvance = nil
	s.quiz.advance()
}

func (s *Session) cancelPendingLocked() {
	s.gen++
	if s.cancelAdvance != nil {
		s.cancelAdvance()
		s.cancelAdvance = nil
	}
}

// QuizView returns the current quiz step, if the current step is one.
func (s *Session) QuizView() (QuizView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.quiz == nil {
		return QuizView{}, false
	}
	return s.quiz.view(), true
}

// QuizSummary returns the summary of the current quiz step once finished.
func (s *Session) QuizSummary() (QuizSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.quiz == nil || !s.quiz.finished {
		return QuizSummary{}, false
	}
	return s.quiz.summary, true
}

// QuizResults returns the summaries of completed quiz steps.
func (s *Session) QuizResults() []QuizSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]QuizSummary(nil), s.quizResults...)
}

// CompleteCurrentStep marks the current step completed and moves to the
// next one. Completing the last step completes the session.
func (s *Session) CompleteCurrentStep() error {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return ErrNotInProgress
	}
	if !s.resolvedLocked() {
		s.mu.Unlock()
		return ErrStepUnresolved
	}

	s.completed[s.current] = struct{}{}
	if s.quiz != nil {
		s.quizResults = append(s.quizResults, s.quiz.summary)
	}

	var e effects
	if s.current == len(s.module.Steps)-1 {
		s.cancelPendingLocked()
		s.state = StateCompleted
		e.notes = append(e.notes, Notification{
			Title: "Module Completed!",
			Body:  fmt.Sprintf("You earned %d points!", s.module.Points),
			Tone:  ToneInfo,
		})
		e.completion = &CompletionEvent{
			SessionID:   s.id,
			ModuleID:    s.module.ID,
			ModuleTitle: s.module.Title,
			Points:      s.module.Points,
			User:        s.user,
			Quizzes:     append([]QuizSummary(nil), s.quizResults...),
			StartedAt:   s.startedAt,
			CompletedAt: s.now(),
		}
		s.exitLocked(&e)
		s.log.Info("module completed", "session", s.id, "module", s.module.ID, "points", s.module.Points)
	} else {
		s.current++
		s.enterStepLocked(&e)
	}
	s.mu.Unlock()

	s.run(e)
	return nil
}

// ProgressPercent is the share of completed steps. It is monotonic and
// reaches 100 only once the last step is completed.
func (s *Session) ProgressPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateNotStarted:
		return 0
	case StateCompleted:
		return 100
	}
	return float64(len(s.completed)) / float64(len(s.module.Steps)) * 100
}

// StepPercent is the position indicator (current+1)/total*100 shown while
// playing.
func (s *Session) StepPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateNotStarted:
		return 0
	case StateCompleted:
		return 100
	}
	return float64(s.current+1) / float64(len(s.module.Steps)) * 100
}

// Abort discards the session and navigates away. A pending quiz advance is
// cancelled. Abort after the session has terminated is a no-op.
func (s *Session) Abort() {
	s.mu.Lock()
	if s.state == StateCompleted || s.state == StateAborted {
		s.mu.Unlock()
		return
	}
	s.cancelPendingLocked()
	s.state = StateAborted
	s.drill = nil
	s.quiz = nil
	var e effects
	s.exitLocked(&e)
	moduleID := ""
	if s.module != nil {
		moduleID = s.module.ID
	}
	s.log.Info("session aborted", "session", s.id, "module", moduleID, "step", s.current)
	s.mu.Unlock()

	s.run(e)
}
