package rewards

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/prepsmart/internal/logging"
	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/store"
)

// snapshotKeep is how many snapshots survive a prune.
const snapshotKeep = 5

// Award is the point grant for one completed module.
type Award struct {
	UserID      string
	ModuleID    string
	ModuleTitle string
	Points      int
	QuizScore   *int
	SessionID   string
	AwardedAt   time.Time
}

// Service books module completions and tracks point totals.
type Service struct {
	events    store.EventRepo
	snapshots store.SnapshotRepo
	log       *logging.Logger

	mu sync.Mutex
	// SessionAwards accumulates awards booked by this process.
	sessionAwards []Award
}

// NewService creates a Service. snapshots may be nil.
func NewService(events store.EventRepo, snapshots store.SnapshotRepo, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{events: events, snapshots: snapshots, log: log}
}

// Award books the points of a completed session.
func (s *Service) Award(ctx context.Context, ev player.CompletionEvent) (*Award, error) {
	award := &Award{
		ModuleID:    ev.ModuleID,
		ModuleTitle: ev.ModuleTitle,
		Points:      ev.Points,
		SessionID:   ev.SessionID,
		AwardedAt:   ev.CompletedAt,
	}
	if ev.User != nil {
		award.UserID = ev.User.ID
	}
	if score, ok := ev.QuizScore(); ok {
		award.QuizScore = &score
	}
	if award.AwardedAt.IsZero() {
		award.AwardedAt = time.Now()
	}

	if s.events != nil {
		duration := 0
		if !ev.StartedAt.IsZero() {
			duration = int(award.AwardedAt.Sub(ev.StartedAt).Seconds())
		}
		seq, err := s.events.AppendCompletion(ctx, store.CompletionEventData{
			SessionID:    award.SessionID,
			UserID:       award.UserID,
			ModuleID:     award.ModuleID,
			ModuleTitle:  award.ModuleTitle,
			Points:       award.Points,
			QuizScore:    award.QuizScore,
			DurationSecs: duration,
			Timestamp:    award.AwardedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("book award: %w", err)
		}
		s.snapshot(ctx, award, seq)
	}

	s.mu.Lock()
	s.sessionAwards = append(s.sessionAwards, *award)
	s.mu.Unlock()

	s.log.Info("points awarded", "user", award.UserID, "module", award.ModuleID, "points", award.Points)
	return award, nil
}

// Hook adapts Award to a player completion hook.
func (s *Service) Hook(ctx context.Context) player.CompletionHook {
	return func(ev player.CompletionEvent) error {
		_, err := s.Award(ctx, ev)
		return err
	}
}

// Totals returns the booked totals for userID.
func (s *Service) Totals(ctx context.Context, userID string) (store.Totals, error) {
	if s.events == nil {
		return s.sessionTotals(userID), nil
	}
	return s.events.PointTotals(ctx, userID)
}

// SessionAwards returns the awards booked by this process.
func (s *Service) SessionAwards() []Award {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Award(nil), s.sessionAwards...)
}

// SessionPoints sums the points booked by this process.
func (s *Service) SessionPoints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, a := range s.sessionAwards {
		total += a.Points
	}
	return total
}

func (s *Service) sessionTotals(userID string) store.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	var t store.Totals
	modules := make(map[string]struct{})
	for _, a := range s.sessionAwards {
		if a.UserID != userID {
			continue
		}
		t.Points += a.Points
		t.Completions++
		modules[a.ModuleID] = struct{}{}
	}
	t.Modules = len(modules)
	return t
}

// snapshot records the learner's totals after an award. Failures are logged;
// the award itself is already booked.
func (s *Service) snapshot(ctx context.Context, award *Award, seq int64) {
	if s.snapshots == nil {
		return
	}
	totals, err := s.events.PointTotals(ctx, award.UserID)
	if err != nil {
		s.log.Warn("snapshot totals failed", "user", award.UserID, "error", err)
		return
	}

	best := make(map[string]int)
	prev, err := s.snapshots.Latest(ctx, award.UserID)
	if err != nil {
		s.log.Warn("load previous snapshot failed", "user", award.UserID, "error", err)
	} else if prev != nil {
		for k, v := range prev.Data.BestScores {
			best[k] = v
		}
	}
	if award.QuizScore != nil && *award.QuizScore >= best[award.ModuleID] {
		best[award.ModuleID] = *award.QuizScore
	}

	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: award.AwardedAt,
		Data: store.SnapshotData{
			Version:          1,
			UserID:           award.UserID,
			TotalPoints:      totals.Points,
			ModulesCompleted: totals.Modules,
			BestScores:       best,
		},
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.log.Warn("save snapshot failed", "user", award.UserID, "error", err)
		return
	}
	if err := s.snapshots.Prune(ctx, award.UserID, snapshotKeep); err != nil {
		s.log.Warn("prune snapshots failed", "error", err)
	}
}

// BestScores returns the best quiz score per module from the latest snapshot.
func (s *Service) BestScores(ctx context.Context, userID string) (map[string]int, error) {
	if s.snapshots == nil {
		return nil, nil
	}
	snap, err := s.snapshots.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}
	return snap.Data.BestScores, nil
}
