package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableCompletionEvents = "completion_events"
	tableLearnerProfiles  = "learner_profiles"
	tableSnapshots        = "snapshots"
)

// Columns shared by every event table.
const (
	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
)

var (
	completionEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "module_id", Type: field.TypeString},
		{Name: "module_title", Type: field.TypeString},
		{Name: "points", Type: field.TypeInt},
		{Name: "quiz_score", Type: field.TypeInt, Nullable: true},
		{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	}
	completionEventsTable = &schema.Table{
		Name:       tableCompletionEvents,
		Columns:    completionEventsColumns,
		PrimaryKey: []*schema.Column{completionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "completionevent_timestamp", Columns: []*schema.Column{completionEventsColumns[2]}},
			{Name: "completionevent_user_id", Columns: []*schema.Column{completionEventsColumns[4]}},
		},
	}

	learnerProfilesColumns = []*schema.Column{
		{Name: colID, Type: field.TypeString},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "role", Type: field.TypeString, Default: "student"},
		{Name: "signed_in", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "last_seen_at", Type: field.TypeTime},
	}
	learnerProfilesTable = &schema.Table{
		Name:       tableLearnerProfiles,
		Columns:    learnerProfilesColumns,
		PrimaryKey: []*schema.Column{learnerProfilesColumns[0]},
	}

	snapshotsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeString},
		{Name: "data", Type: field.TypeJSON},
	}
	snapshotsTable = &schema.Table{
		Name:       tableSnapshots,
		Columns:    snapshotsColumns,
		PrimaryKey: []*schema.Column{snapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_timestamp", Columns: []*schema.Column{snapshotsColumns[2]}},
			{Name: "snapshot_user_id", Columns: []*schema.Column{snapshotsColumns[3]}},
		},
	}

	tables = []*schema.Table{
		completionEventsTable,
		learnerProfilesTable,
		snapshotsTable,
	}
)

// migrate creates or upgrades the tables.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
