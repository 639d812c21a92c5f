package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(v int) *int { return &v }

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil ent driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"completion_events", "learner_profiles", "snapshots", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}

	cur, err := s.seq.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur != 5 {
		t.Errorf("current = %d, want 5", cur)
	}
}

func TestAppendAndQueryCompletions(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	events := []CompletionEventData{
		{SessionID: "s1", UserID: "u1", ModuleID: "1", ModuleTitle: "Earthquake Safety Basics", Points: 200, QuizScore: intPtr(100), Timestamp: base},
		{SessionID: "s2", UserID: "u2", ModuleID: "3", ModuleTitle: "Flood Preparedness", Points: 300, Timestamp: base.Add(time.Hour)},
		{SessionID: "s3", UserID: "u1", ModuleID: "3", ModuleTitle: "Flood Preparedness", Points: 300, QuizScore: intPtr(50), DurationSecs: 90, Timestamp: base.Add(2 * time.Hour)},
	}
	for i, e := range events {
		seq, err := repo.AppendCompletion(ctx, e)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if seq != int64(i+1) {
			t.Errorf("append %d sequence = %d, want %d", i, seq, i+1)
		}
	}

	all, err := repo.QueryCompletions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	if all[0].SessionID != "s3" || all[2].SessionID != "s1" {
		t.Errorf("order = %s..%s, want newest first", all[0].SessionID, all[2].SessionID)
	}
	if all[0].QuizScore == nil || *all[0].QuizScore != 50 {
		t.Errorf("quiz score = %v, want 50", all[0].QuizScore)
	}
	if all[1].QuizScore != nil {
		t.Errorf("quiz score = %v, want nil", *all[1].QuizScore)
	}
	if !all[2].Timestamp.Equal(base) {
		t.Errorf("timestamp = %v, want %v", all[2].Timestamp, base)
	}
	if all[0].DurationSecs != 90 {
		t.Errorf("duration = %d, want 90", all[0].DurationSecs)
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []string
	}{
		{"by user", QueryOpts{UserID: "u1"}, []string{"s3", "s1"}},
		{"by module", QueryOpts{ModuleID: "3"}, []string{"s3", "s2"}},
		{"limit", QueryOpts{Limit: 1}, []string{"s3"}},
		{"after", QueryOpts{After: 1}, []string{"s3", "s2"}},
		{"before", QueryOpts{Before: 3}, []string{"s2", "s1"}},
		{"from", QueryOpts{From: base.Add(30 * time.Minute)}, []string{"s3", "s2"}},
		{"to", QueryOpts{To: base.Add(time.Hour)}, []string{"s2", "s1"}},
		{"combined", QueryOpts{UserID: "u1", ModuleID: "1"}, []string{"s1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryCompletions(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.SessionID
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Errorf("sessions = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestPointTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	totals, err := repo.PointTotals(ctx, "u1")
	if err != nil {
		t.Fatalf("totals (empty): %v", err)
	}
	if totals != (Totals{}) {
		t.Errorf("empty totals = %+v", totals)
	}

	for _, e := range []CompletionEventData{
		{SessionID: "a", UserID: "u1", ModuleID: "1", Points: 200},
		{SessionID: "b", UserID: "u1", ModuleID: "1", Points: 200},
		{SessionID: "c", UserID: "u1", ModuleID: "3", Points: 300},
		{SessionID: "d", UserID: "u2", ModuleID: "3", Points: 300},
	} {
		if _, err := repo.AppendCompletion(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	totals, err = repo.PointTotals(ctx, "u1")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	want := Totals{Points: 700, Completions: 3, Modules: 2}
	if totals != want {
		t.Errorf("totals = %+v, want %+v", totals, want)
	}
}

func TestProfileSignInOut(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	p, err := repo.Current(ctx)
	if err != nil {
		t.Fatalf("current (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nobody signed in")
	}

	if _, err := repo.SignIn(ctx, "  ", "student"); err != ErrEmptyName {
		t.Errorf("blank name err = %v, want ErrEmptyName", err)
	}

	asha, err := repo.SignIn(ctx, " Asha ", "")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if asha.Name != "Asha" || asha.Role != "student" || asha.ID == "" {
		t.Errorf("profile = %+v", asha)
	}

	ravi, err := repo.SignIn(ctx, "Ravi", "Teacher")
	if err != nil {
		t.Fatalf("sign in ravi: %v", err)
	}
	cur, err := repo.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur == nil || cur.ID != ravi.ID || cur.Role != "teacher" {
		t.Errorf("current = %+v, want ravi as teacher", cur)
	}

	again, err := repo.SignIn(ctx, "Asha", "student")
	if err != nil {
		t.Fatalf("sign in again: %v", err)
	}
	if again.ID != asha.ID {
		t.Errorf("returning learner got new id %s, want %s", again.ID, asha.ID)
	}
	cur, _ = repo.Current(ctx)
	if cur == nil || cur.ID != asha.ID {
		t.Errorf("current = %+v, want asha", cur)
	}

	if err := repo.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	cur, err = repo.Current(ctx)
	if err != nil {
		t.Fatalf("current after sign out: %v", err)
	}
	if cur != nil {
		t.Errorf("current after sign out = %+v, want nil", cur)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err = repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: now.Add(time.Duration(i) * time.Minute),
			Data: SnapshotData{
				Version:          1,
				UserID:           "u1",
				TotalPoints:      200 * (i + 1),
				ModulesCompleted: i + 1,
				BestScores:       map[string]int{"1": 100},
			},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	if err := repo.Save(ctx, &Snapshot{Sequence: 4, Timestamp: now, Data: SnapshotData{Version: 1, UserID: "u2"}}); err != nil {
		t.Fatalf("save u2: %v", err)
	}

	snap, err = repo.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.TotalPoints != 600 || snap.Data.BestScores["1"] != 100 {
		t.Errorf("data = %+v", snap.Data)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1, UserID: "u1"},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Save(ctx, &Snapshot{Sequence: 8, Timestamp: base, Data: SnapshotData{Version: 1, UserID: "u2"}}); err != nil {
		t.Fatalf("save u2: %v", err)
	}

	// Prune to keep 5.
	if err := repo.Prune(ctx, "u1", 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots WHERE user_id = 'u1'").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	if other, err := repo.Latest(ctx, "u2"); err != nil || other == nil {
		t.Errorf("u2 snapshot pruned: %v", err)
	}

	// Latest should still be sequence 7.
	snap, err := repo.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}

	// Prune with keep above the count is a no-op.
	if err := repo.Prune(ctx, "u1", 10); err != nil {
		t.Fatalf("prune no-op: %v", err)
	}
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots WHERE user_id = 'u1'").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("PREPSMART_DB", dir+"/custom/p.db")
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path (env): %v", err)
	}
	if p != dir+"/custom/p.db" {
		t.Errorf("path = %q", p)
	}

	t.Setenv("PREPSMART_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("default path (xdg): %v", err)
	}
	if p != dir+"/prepsmart/prepsmart.db" {
		t.Errorf("path = %q", p)
	}
}
