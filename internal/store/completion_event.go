package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var completionColumns = []string{
	colSequence, colTimestamp, "session_id", "user_id", "module_id",
	"module_title", "points", "quiz_score", "duration_secs",
}

// eventRepo implements EventRepo with ent SQL builders.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendCompletion(ctx context.Context, data CompletionEventData) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var quizScore sql.NullInt64
	if data.QuizScore != nil {
		quizScore = sql.NullInt64{Int64: int64(*data.QuizScore), Valid: true}
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableCompletionEvents).
		Columns(completionColumns...).
		Values(seqNum, ts.UTC(), data.SessionID, data.UserID, data.ModuleID,
			data.ModuleTitle, data.Points, quizScore, data.DurationSecs).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return 0, fmt.Errorf("save completion event: %w", err)
	}
	return seqNum, nil
}

func (r *eventRepo) QueryCompletions(ctx context.Context, opts QueryOpts) ([]CompletionRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(completionColumns...).
		From(entsql.Table(tableCompletionEvents)).
		OrderBy(entsql.Desc(colSequence))

	if preds := opts.predicates(); len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var records []CompletionRecord
	for rows.Next() {
		var (
			rec       CompletionRecord
			quizScore sql.NullInt64
		)
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.UserID,
			&rec.ModuleID, &rec.ModuleTitle, &rec.Points, &quizScore, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		if quizScore.Valid {
			v := int(quizScore.Int64)
			rec.QuizScore = &v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completion events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) PointTotals(ctx context.Context, userID string) (Totals, error) {
	b := entsql.Dialect(dialect.SQLite)
	byUser := entsql.EQ("user_id", userID)

	query, args := b.Select(
		entsql.As(entsql.Sum("points"), "total_points"),
		entsql.As(entsql.Count("*"), "completions"),
	).
		From(entsql.Table(tableCompletionEvents)).
		Where(byUser).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return Totals{}, fmt.Errorf("query point totals: %w", err)
	}
	var (
		points sql.NullInt64
		totals Totals
	)
	if rows.Next() {
		if err := rows.Scan(&points, &totals.Completions); err != nil {
			rows.Close()
			return Totals{}, fmt.Errorf("scan point totals: %w", err)
		}
	}
	rows.Close()
	totals.Points = int(points.Int64)

	query, args = b.Select("module_id").
		Distinct().
		From(entsql.Table(tableCompletionEvents)).
		Where(entsql.EQ("user_id", userID)).
		Query()
	rows = &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return Totals{}, fmt.Errorf("query completed modules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		totals.Modules++
	}
	if err := rows.Err(); err != nil {
		return Totals{}, fmt.Errorf("iterate completed modules: %w", err)
	}
	return totals, nil
}

func (o QueryOpts) predicates() []*entsql.Predicate {
	var preds []*entsql.Predicate
	if o.After > 0 {
		preds = append(preds, entsql.GT(colSequence, o.After))
	}
	if o.Before > 0 {
		preds = append(preds, entsql.LT(colSequence, o.Before))
	}
	if !o.From.IsZero() {
		preds = append(preds, entsql.GTE(colTimestamp, o.From.UTC()))
	}
	if !o.To.IsZero() {
		preds = append(preds, entsql.LTE(colTimestamp, o.To.UTC()))
	}
	if o.UserID != "" {
		preds = append(preds, entsql.EQ("user_id", o.UserID))
	}
	if o.ModuleID != "" {
		preds = append(preds, entsql.EQ("module_id", o.ModuleID))
	}
	return preds
}
