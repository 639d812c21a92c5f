package store

import (
	"context"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo with ent SQL builders.
type snapshotRepo struct {
	drv *entsql.Driver
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSnapshots).
		Columns(colSequence, colTimestamp, "user_id", "data").
		Values(snap.Sequence, snap.Timestamp.UTC(), snap.Data.UserID, string(data)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, userID string) (*Snapshot, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(colID, colSequence, colTimestamp, "data").
		From(entsql.Table(tableSnapshots)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc(colSequence), entsql.Desc(colID)).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var (
		snap Snapshot
		raw  string
	)
	if err := rows.Scan(&snap.ID, &snap.Sequence, &snap.Timestamp, &raw); err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, userID string, keep int) error {
	b := entsql.Dialect(dialect.SQLite)

	// Find the ID threshold: the newest snapshot past the keep window.
	query, args := b.Select(colID).
		From(entsql.Table(tableSnapshots)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc(colID)).
		Offset(keep).
		Limit(1).
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	var threshold int
	found := rows.Next()
	if found {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return fmt.Errorf("scan prune threshold: %w", err)
		}
	}
	rows.Close()
	if !found {
		return nil // fewer than keep snapshots exist
	}

	query, args = b.Delete(tableSnapshots).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.LTE(colID, threshold),
		)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
