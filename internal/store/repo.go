package store

import (
	"context"
	"time"
)

// QueryOpts configures journal queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Source string    // exact source match ("" = any)
}

// ReadingData captures one finished reading for the journal.
type ReadingData struct {
	Question     string
	Answer       string
	Source       string
	SecretLength int
}

// Reading is a journaled reading.
type Reading struct {
	ID           string
	Sequence     int64
	Timestamp    time.Time
	Question     string
	Answer       string
	Source       string
	SecretLength int
}

// ReadingRepo provides append and query access to the reading journal.
type ReadingRepo interface {
	// AppendReading records a finished reading and returns it with its
	// assigned ID, sequence and timestamp.
	AppendReading(ctx context.Context, data ReadingData) (Reading, error)

	// QueryReadings returns readings, newest first.
	QueryReadings(ctx context.Context, opts QueryOpts) ([]Reading, error)

	// CountReadings returns the number of journaled readings.
	CountReadings(ctx context.Context) (int, error)

	// ClearReadings deletes every reading and returns how many were removed.
	ClearReadings(ctx context.Context) (int64, error)
}
