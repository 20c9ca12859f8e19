package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	readingsTableName = "readings"
	sequenceTableName = "journal_sequence"

	sequenceRowID = 1
)

// Column names of the readings table, kept in step with ent/schema.Reading.
const (
	colID           = "id"
	colReadingID    = "reading_id"
	colSequence     = "sequence"
	colTimestamp    = "timestamp"
	colQuestion     = "question"
	colAnswer       = "answer"
	colSource       = "source"
	colSecretLength = "secret_length"
	colNextVal      = "next_val"
)

var (
	readingsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colReadingID, Type: field.TypeString, Unique: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colQuestion, Type: field.TypeString, Size: 2147483647},
		{Name: colAnswer, Type: field.TypeString, Size: 2147483647},
		{Name: colSource, Type: field.TypeEnum, Enums: []string{"secret", "decoy"}},
		{Name: colSecretLength, Type: field.TypeInt, Default: 0},
	}

	readingsTable = &schema.Table{
		Name:       readingsTableName,
		Columns:    readingsColumns,
		PrimaryKey: []*schema.Column{readingsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "reading_timestamp", Unique: false, Columns: []*schema.Column{readingsColumns[3]}},
			{Name: "reading_source", Unique: false, Columns: []*schema.Column{readingsColumns[6]}},
		},
	}

	// sequenceTable holds a single row with the next journal sequence
	// number. It is never cleared, so numbers survive ClearReadings.
	sequenceColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt},
		{Name: colNextVal, Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       sequenceTableName,
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	tables = []*schema.Table{readingsTable, sequenceTable}
)

// migrate creates or upgrades the journal tables and seeds the sequence row.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return err
	}

	query, args := builder().
		Insert(sequenceTableName).
		Columns(colID, colNextVal).
		Values(sequenceRowID, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}
