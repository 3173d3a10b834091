package ledger

import (
	"context"
	"time"
)

// Retrying wraps a Client with bounded exponential backoff on transient
// failures. Terminal errors pass through on the first attempt.
type Retrying struct {
	next            Client
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
}

func WithRetry(next Client) *Retrying {
	if next == nil {
		panic("ledger client is nil")
	}
	return &Retrying{
		next:            next,
		maxAttempts:     5,
		initialInterval: 100 * time.Millisecond,
		maxInterval:     time.Second,
	}
}

func (r *Retrying) Append(ctx context.Context, collection Collection, row Row) error {
	return r.do(ctx, func() error {
		return r.next.Append(ctx, collection, row)
	})
}

func (r *Retrying) Query(ctx context.Context, collection Collection, match func(Row) bool) ([]Row, error) {
	var rows []Row
	err := r.do(ctx, func() error {
		var queryErr error
		rows, queryErr = r.next.Query(ctx, collection, match)
		return queryErr
	})
	return rows, err
}

func (r *Retrying) QueryRecords(ctx context.Context, collection Collection) ([]RawRecord, error) {
	var records []RawRecord
	err := r.do(ctx, func() error {
		var queryErr error
		records, queryErr = r.next.QueryRecords(ctx, collection)
		return queryErr
	})
	return records, err
}

func (r *Retrying) do(ctx context.Context, op func() error) error {
	interval := r.initialInterval

	var err error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		err = op()
		if err == nil || !IsRetryable(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		interval *= 2
		if interval > r.maxInterval {
			interval = r.maxInterval
		}
	}
	return err
}
