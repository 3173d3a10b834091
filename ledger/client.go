package ledger

import (
	"context"
	"errors"
)

// Collection names one append-only sheet in the remote tabular store.
type Collection string

const (
	CollectionTickets     Collection = "tickets"
	CollectionLineItems   Collection = "line_items"
	CollectionSummaries   Collection = "sales_summary"
	CollectionSettings    Collection = "settings"
	CollectionStaff       Collection = "staff"
	CollectionTables      Collection = "tables"
	CollectionMenuItems   Collection = "menu_items"
	CollectionIdempotency Collection = "idempotency"
	CollectionJournal     Collection = "journal"
)

// Row is one positional record.
type Row []string

// RawRecord is a header-keyed view of a row. Field names are whatever the
// venue configured in the source sheet; nothing here assumes a fixed schema.
type RawRecord map[string]string

var (
	ErrUnauthorized    = errors.New("ledger: unauthorized")
	ErrUnavailable     = errors.New("ledger: unavailable")
	ErrMalformedRecord = errors.New("ledger: malformed record")

	// ErrDuplicateRow is reported by backends that can enforce uniqueness on
	// conditional appends. Callers treat it as "someone else won the race",
	// not as a failure.
	ErrDuplicateRow = errors.New("ledger: duplicate row")
)

// IsRetryable reports whether the error is transient. Only these errors are
// worth retrying; everything else in the taxonomy is terminal.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Client is the only way the rest of the system touches durable state.
// Append calls carry no transactional guarantee across each other; callers
// own the partial-write recovery strategy.
type Client interface {
	Append(ctx context.Context, collection Collection, row Row) error
	// Query returns all rows matching the predicate, in append order.
	// A nil predicate matches everything.
	Query(ctx context.Context, collection Collection, match func(Row) bool) ([]Row, error)
	// QueryRecords reads a headered collection and returns each data row
	// keyed by the header row's field names.
	QueryRecords(ctx context.Context, collection Collection) ([]RawRecord, error)
}
