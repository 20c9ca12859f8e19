package store

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// RetryConfig controls how journal writes are retried while another
// process holds the database lock.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the retry settings used by Store.ReadingRepo.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 4,
		InitialWait: 25 * time.Millisecond,
		MaxWait:     400 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// retryRepo is a decorator that retries busy/locked writes with
// exponential backoff and jitter. Reads are passed through.
type retryRepo struct {
	ReadingRepo
	config    RetryConfig
	retryable func(error) bool
}

// WithRetry wraps a ReadingRepo with retry logic for lock contention.
func WithRetry(r ReadingRepo, cfg RetryConfig) ReadingRepo {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &retryRepo{ReadingRepo: r, config: cfg, retryable: isBusy}
}

func (r *retryRepo) AppendReading(ctx context.Context, data ReadingData) (Reading, error) {
	var rec Reading
	err := r.do(ctx, func() error {
		var err error
		rec, err = r.ReadingRepo.AppendReading(ctx, data)
		return err
	})
	return rec, err
}

func (r *retryRepo) ClearReadings(ctx context.Context) (int64, error) {
	var n int64
	err := r.do(ctx, func() error {
		var err error
		n, err = r.ReadingRepo.ClearReadings(ctx)
		return err
	})
	return n, err
}

func (r *retryRepo) do(ctx context.Context, op func() error) error {
	var lastErr error
	for attempt := range r.config.MaxAttempts {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.retryable(err) {
			return err
		}

		// Out of attempts: return the error without sleeping.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}
	return lastErr
}

// isBusy reports whether err is SQLite lock contention.
func isBusy(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	// Extended result codes carry the primary code in the low byte.
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// backoff computes the wait duration for the given attempt.
func (r *retryRepo) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
