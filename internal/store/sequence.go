package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// nextSequenceQuery claims a number and advances the counter in one
// statement. Running it inside the insert's transaction means a failed
// insert gives the number back.
var nextSequenceQuery = fmt.Sprintf(
	"UPDATE %s SET %s = %s + 1 WHERE %s = ? RETURNING %s - 1",
	sequenceTableName, colNextVal, colNextVal, colID, colNextVal,
)

// nextSequence returns the next journal sequence number using q, normally
// the transaction that will insert the reading.
func nextSequence(ctx context.Context, q dialect.ExecQuerier) (int64, error) {
	rows := &entsql.Rows{}
	if err := q.Query(ctx, nextSequenceQuery, []any{sequenceRowID}, rows); err != nil {
		return 0, fmt.Errorf("claim sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("claim sequence: %w", err)
		}
		return 0, fmt.Errorf("claim sequence: %s row missing", sequenceTableName)
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return seq, nil
}
