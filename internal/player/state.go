package player

// State is the lifecycle state of a play session.
type State int

const (
	StateNotStarted State = iota // Intro card shown, nothing played yet
	StateInProgress              // Playing steps in order
	StateCompleted               // Last step completed, points awarded
	StateAborted                 // Left before completion, discarded
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// Phase is the interaction substate of the current step while in progress.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseViewingContent
	PhaseViewingInteractive
	PhaseAwaitingDrillChoice
	PhaseShowingDrillFeedback
	PhaseAnsweringQuiz
	PhaseShowingQuizResults
)

func (p Phase) String() string {
	switch p {
	case PhaseViewingContent:
		return "viewing-content"
	case PhaseViewingInteractive:
		return "viewing-interactive"
	case PhaseAwaitingDrillChoice:
		return "awaiting-drill-choice"
	case PhaseShowingDrillFeedback:
		return "showing-drill-feedback"
	case PhaseAnsweringQuiz:
		return "answering-quiz"
	case PhaseShowingQuizResults:
		return "showing-quiz-results"
	}
	return "none"
}
