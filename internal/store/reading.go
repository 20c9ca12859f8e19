package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// readingRepo implements ReadingRepo on top of the ent SQL builder.
type readingRepo struct {
	drv *entsql.Driver
}

var readingColumns = []string{
	colReadingID, colSequence, colTimestamp, colQuestion, colAnswer, colSource, colSecretLength,
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// AppendReading claims a sequence number and inserts the reading in one
// transaction.
func (r *readingRepo) AppendReading(ctx context.Context, data ReadingData) (Reading, error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return Reading{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	seqNum, err := nextSequence(ctx, tx)
	if err != nil {
		return Reading{}, err
	}

	rec := Reading{
		ID:           uuid.New().String(),
		Sequence:     seqNum,
		Timestamp:    time.Now().UTC(),
		Question:     data.Question,
		Answer:       data.Answer,
		Source:       data.Source,
		SecretLength: data.SecretLength,
	}

	query, args := builder().
		Insert(readingsTableName).
		Columns(readingColumns...).
		Values(rec.ID, rec.Sequence, rec.Timestamp, rec.Question, rec.Answer, rec.Source, rec.SecretLength).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return Reading{}, fmt.Errorf("save reading: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Reading{}, fmt.Errorf("commit reading: %w", err)
	}
	return rec, nil
}

func (r *readingRepo) QueryReadings(ctx context.Context, opts QueryOpts) ([]Reading, error) {
	sel := builder().
		Select(readingColumns...).
		From(entsql.Table(readingsTableName)).
		OrderBy(entsql.Desc(colSequence))

	if opts.After > 0 {
		sel.Where(entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(colTimestamp, opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(colTimestamp, opts.To.UTC()))
	}
	if opts.Source != "" {
		sel.Where(entsql.EQ(colSource, opts.Source))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	defer rows.Close()

	var out []Reading
	for rows.Next() {
		var rec Reading
		if err := rows.Scan(
			&rec.ID,
			&rec.Sequence,
			&rec.Timestamp,
			&rec.Question,
			&rec.Answer,
			&rec.Source,
			&rec.SecretLength,
		); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return out, nil
}

func (r *readingRepo) CountReadings(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(readingsTableName)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count readings: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}

func (r *readingRepo) ClearReadings(ctx context.Context) (int64, error) {
	query, args := builder().Delete(readingsTableName).Query()

	var res entsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("clear readings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
