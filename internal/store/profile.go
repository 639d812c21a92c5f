package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var profileColumns = []string{colID, "name", "role", "signed_in", "created_at", "last_seen_at"}

// profileRepo implements ProfileRepo with ent SQL builders.
type profileRepo struct {
	drv *entsql.Driver
}

func (r *profileRepo) Current(ctx context.Context) (*Profile, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(profileColumns...).
		From(entsql.Table(tableLearnerProfiles)).
		Where(entsql.EQ("signed_in", true)).
		OrderBy(entsql.Desc("last_seen_at")).
		Limit(1).
		Query()
	return queryProfile(ctx, r.drv, query, args)
}

func (r *profileRepo) SignIn(ctx context.Context, name, role string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = "student"
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sign-in: %w", err)
	}
	p, err := signIn(ctx, tx, name, role, time.Now().UTC())
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sign-in: %w", err)
	}
	return p, nil
}

func signIn(ctx context.Context, tx dialect.ExecQuerier, name, role string, now time.Time) (*Profile, error) {
	b := entsql.Dialect(dialect.SQLite)

	query, args := b.Update(tableLearnerProfiles).
		Set("signed_in", false).
		Where(entsql.EQ("signed_in", true)).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("sign out others: %w", err)
	}

	query, args = b.Select(profileColumns...).
		From(entsql.Table(tableLearnerProfiles)).
		Where(entsql.EQ("name", name)).
		Limit(1).
		Query()
	existing, err := queryProfile(ctx, tx, query, args)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		query, args = b.Update(tableLearnerProfiles).
			Set("role", role).
			Set("signed_in", true).
			Set("last_seen_at", now).
			Where(entsql.EQ(colID, existing.ID)).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		existing.Role = role
		existing.SignedIn = true
		existing.LastSeenAt = now
		return existing, nil
	}

	p := &Profile{
		ID:         uuid.NewString(),
		Name:       name,
		Role:       role,
		SignedIn:   true,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	query, args = b.Insert(tableLearnerProfiles).
		Columns(profileColumns...).
		Values(p.ID, p.Name, p.Role, p.SignedIn, p.CreatedAt, p.LastSeenAt).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

func (r *profileRepo) SignOut(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Update(tableLearnerProfiles).
		Set("signed_in", false).
		Where(entsql.EQ("signed_in", true)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// queryProfile runs a profile select and returns the first row, or nil.
func queryProfile(ctx context.Context, q dialect.ExecQuerier, query string, args []any) (*Profile, error) {
	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var p Profile
	if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.SignedIn, &p.CreatedAt, &p.LastSeenAt); err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}
