package store

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyName is returned by SignIn for a blank learner name.
var ErrEmptyName = errors.New("learner name is empty")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	UserID   string    // exact match when set
	ModuleID string    // exact match when set
}

// CompletionEventData captures a completed module play.
type CompletionEventData struct {
	SessionID    string
	UserID       string
	ModuleID     string
	ModuleTitle  string
	Points       int
	QuizScore    *int // nil when the module has no quiz
	DurationSecs int
	// Timestamp defaults to now.
	Timestamp time.Time
}

// CompletionRecord is a stored completion event.
type CompletionRecord struct {
	CompletionEventData
	Sequence int64
}

// Totals aggregates a learner's completions.
type Totals struct {
	Points      int
	Completions int
	Modules     int // distinct modules completed
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendCompletion records a completed module and returns its sequence.
	AppendCompletion(ctx context.Context, data CompletionEventData) (int64, error)

	// QueryCompletions returns completions, newest first.
	QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionRecord, error)

	// PointTotals aggregates completions for userID.
	PointTotals(ctx context.Context, userID string) (Totals, error)
}

// Profile is a local learner account.
type Profile struct {
	ID         string
	Name       string
	Role       string
	SignedIn   bool
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// ProfileRepo manages local learner profiles. At most one is signed in.
type ProfileRepo interface {
	// Current returns the signed-in profile, or nil if nobody is signed in.
	Current(ctx context.Context) (*Profile, error)

	// SignIn signs in the profile with the given name, creating it if needed,
	// and signs out everyone else.
	SignIn(ctx context.Context, name, role string) (*Profile, error)

	// SignOut signs out the current profile.
	SignOut(ctx context.Context) error
}

// SnapshotData captures a learner's reward state at a point in time.
type SnapshotData struct {
	Version          int            `json:"version"`
	UserID           string         `json:"user_id"`
	TotalPoints      int            `json:"total_points"`
	ModulesCompleted int            `json:"modules_completed"`
	BestScores       map[string]int `json:"best_scores,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot for userID, or nil if none exist.
	Latest(ctx context.Context, userID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots of userID.
	Prune(ctx context.Context, userID string, keep int) error
}
