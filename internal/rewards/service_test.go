package rewards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/prepsmart/internal/catalog"
	"github.com/abhisek/prepsmart/internal/player"
	"github.com/abhisek/prepsmart/internal/store"
)

// mockEventRepo implements store.EventRepo for rewards tests.
type mockEventRepo struct {
	completions []store.CompletionEventData
	err         error
}

func (m *mockEventRepo) AppendCompletion(_ context.Context, data store.CompletionEventData) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.completions = append(m.completions, data)
	return int64(len(m.completions)), nil
}

func (m *mockEventRepo) QueryCompletions(_ context.Context, _ store.QueryOpts) ([]store.CompletionRecord, error) {
	return nil, nil
}

func (m *mockEventRepo) PointTotals(_ context.Context, userID string) (store.Totals, error) {
	var t store.Totals
	seen := map[string]bool{}
	for _, c := range m.completions {
		if c.UserID != userID {
			continue
		}
		t.Points += c.Points
		t.Completions++
		if !seen[c.ModuleID] {
			seen[c.ModuleID] = true
			t.Modules++
		}
	}
	return t, nil
}

// mockSnapshotRepo implements store.SnapshotRepo for rewards tests.
type mockSnapshotRepo struct {
	saved  []store.Snapshot
	pruned int
}

func (m *mockSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	m.saved = append(m.saved, *snap)
	return nil
}

func (m *mockSnapshotRepo) Latest(_ context.Context, userID string) (*store.Snapshot, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].Data.UserID == userID {
			s := m.saved[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (m *mockSnapshotRepo) Prune(_ context.Context, _ string, _ int) error {
	m.pruned++
	return nil
}

func completion(module string, points int, scores ...int) player.CompletionEvent {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := player.CompletionEvent{
		SessionID:   "sess-" + module,
		ModuleID:    module,
		ModuleTitle: "Module " + module,
		Points:      points,
		User:        &player.User{ID: "u1", Name: "Asha"},
		StartedAt:   start,
		CompletedAt: start.Add(4 * time.Minute),
	}
	for _, s := range scores {
		ev.Quizzes = append(ev.Quizzes, player.QuizSummary{Score: s})
	}
	return ev
}

func TestAwardBooksCompletion(t *testing.T) {
	events := &mockEventRepo{}
	snaps := &mockSnapshotRepo{}
	svc := NewService(events, snaps, nil)

	award, err := svc.Award(context.Background(), completion("1", 200, 100, 50))
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if award.Points != 200 || award.UserID != "u1" {
		t.Errorf("award = %+v", award)
	}
	if award.QuizScore == nil || *award.QuizScore != 75 {
		t.Errorf("quiz score = %v, want 75", award.QuizScore)
	}

	if len(events.completions) != 1 {
		t.Fatalf("completions = %d, want 1", len(events.completions))
	}
	got := events.completions[0]
	if got.ModuleID != "1" || got.SessionID != "sess-1" || got.DurationSecs != 240 {
		t.Errorf("booked = %+v", got)
	}

	if len(snaps.saved) != 1 || snaps.pruned != 1 {
		t.Fatalf("snapshots saved=%d pruned=%d, want 1/1", len(snaps.saved), snaps.pruned)
	}
	if snaps.saved[0].Data.TotalPoints != 200 || snaps.saved[0].Data.BestScores["1"] != 75 {
		t.Errorf("snapshot = %+v", snaps.saved[0].Data)
	}
	if snaps.saved[0].Sequence != 1 {
		t.Errorf("snapshot sequence = %d, want 1", snaps.saved[0].Sequence)
	}
}

func TestAwardWithoutQuiz(t *testing.T) {
	events := &mockEventRepo{}
	svc := NewService(events, nil, nil)

	award, err := svc.Award(context.Background(), completion("3", 300))
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if award.QuizScore != nil {
		t.Errorf("quiz score = %d, want nil", *award.QuizScore)
	}
	if events.completions[0].QuizScore != nil {
		t.Error("booked quiz score for a module without quizzes")
	}
}

func TestBestScoresKeepMaximum(t *testing.T) {
	svc := NewService(&mockEventRepo{}, &mockSnapshotRepo{}, nil)
	ctx := context.Background()

	for _, score := range []int{50, 100, 0} {
		if _, err := svc.Award(ctx, completion("1", 200, score)); err != nil {
			t.Fatalf("award: %v", err)
		}
	}
	best, err := svc.BestScores(ctx, "u1")
	if err != nil {
		t.Fatalf("best scores: %v", err)
	}
	if best["1"] != 100 {
		t.Errorf("best = %d, want 100", best["1"])
	}
}

func TestAwardError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&mockEventRepo{err: boom}, nil, nil)

	_, err := svc.Award(context.Background(), completion("1", 200))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if len(svc.SessionAwards()) != 0 {
		t.Error("failed award was accumulated")
	}
}

func TestTotalsAndSessionPoints(t *testing.T) {
	svc := NewService(&mockEventRepo{}, nil, nil)
	ctx := context.Background()
	svc.Award(ctx, completion("1", 200))
	svc.Award(ctx, completion("1", 200))
	svc.Award(ctx, completion("3", 300))

	totals, err := svc.Totals(ctx, "u1")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	want := store.Totals{Points: 700, Completions: 3, Modules: 2}
	if totals != want {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}
	if svc.SessionPoints() != 700 {
		t.Errorf("session points = %d, want 700", svc.SessionPoints())
	}
}

func TestTotalsWithoutStore(t *testing.T) {
	svc := NewService(nil, nil, nil)
	ctx := context.Background()
	svc.Award(ctx, completion("1", 200))

	totals, _ := svc.Totals(ctx, "u1")
	if totals.Points != 200 || totals.Modules != 1 {
		t.Errorf("totals = %+v", totals)
	}
	other, _ := svc.Totals(ctx, "u2")
	if other.Points != 0 {
		t.Errorf("other user totals = %+v", other)
	}
}

func TestHookRunsOnSessionCompletion(t *testing.T) {
	events := &mockEventRepo{}
	svc := NewService(events, nil, nil)

	m := contentModule()
	s := player.NewSession(m,
		player.WithUser(&player.User{ID: "u1"}),
		player.WithCompletionHook(svc.Hook(context.Background())),
	)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.CompleteCurrentStep(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(events.completions) != 1 || events.completions[0].Points != 120 {
		t.Errorf("completions = %+v", events.completions)
	}
}

func TestAbortBooksNothing(t *testing.T) {
	events := &mockEventRepo{}
	svc := NewService(events, nil, nil)

	s := player.NewSession(contentModule(), player.WithCompletionHook(svc.Hook(context.Background())))
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Abort()
	if len(events.completions) != 0 {
		t.Errorf("abort booked %d completions", len(events.completions))
	}
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		points int
		want   Rank
	}{
		{0, RankNovice},
		{499, RankNovice},
		{500, RankPrepared},
		{1500, RankResponder},
		{3000, RankGuardian},
	}
	for _, tt := range tests {
		if got := RankFor(tt.points); got != tt.want {
			t.Errorf("RankFor(%d) = %s, want %s", tt.points, got, tt.want)
		}
	}
	if RankGuardian.DisplayName() != "Guardian" {
		t.Errorf("display name = %s", RankGuardian.DisplayName())
	}
}

func contentModule() *catalog.Module {
	return &catalog.Module{
		ID:     "c",
		Title:  "Content",
		Points: 120,
		Steps:  []catalog.Step{&catalog.ContentStep{Name: "only"}},
	}
}
