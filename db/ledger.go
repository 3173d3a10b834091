package db

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"luxpos/ledger"
)

// PostgresLedger implements ledger.Client against a local postgres. Used for
// development and integration tests where the remote sheets gateway is not
// reachable; the engine cannot tell the two apart.
type PostgresLedger struct {
	db *DB
}

func NewPostgresLedger(db *DB) *PostgresLedger {
	if db == nil {
		panic("db is nil")
	}
	return &PostgresLedger{
		db: db,
	}
}

func (l *PostgresLedger) Append(ctx context.Context, collection ledger.Collection, row ledger.Row) error {
	_, err := l.db.Conn.ExecContext(
		ctx,
		`INSERT INTO ledger_rows (collection, cols) VALUES ($1, $2)`,
		string(collection),
		pq.Array([]string(row)),
	)
	if isErrorUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ledger.ErrDuplicateRow, collection)
	}
	if err != nil {
		return fmt.Errorf("%w: append to %s: %v", ledger.ErrUnavailable, collection, err)
	}
	return nil
}

func (l *PostgresLedger) Query(ctx context.Context, collection ledger.Collection, match func(ledger.Row) bool) ([]ledger.Row, error) {
	raw, err := l.fetchRows(ctx, collection)
	if err != nil {
		return nil, err
	}

	if match == nil {
		return raw, nil
	}

	matched := make([]ledger.Row, 0, len(raw))
	for _, row := range raw {
		if match(row) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (l *PostgresLedger) QueryRecords(ctx context.Context, collection ledger.Collection) ([]ledger.RawRecord, error) {
	rows, err := l.fetchRows(ctx, collection)
	if err != nil {
		return nil, err
	}
	return ledger.RecordsFromRows(rows), nil
}

func (l *PostgresLedger) fetchRows(ctx context.Context, collection ledger.Collection) ([]ledger.Row, error) {
	dbRows, err := l.db.Conn.QueryContext(
		ctx,
		`SELECT cols FROM ledger_rows WHERE collection = $1 ORDER BY seq`,
		string(collection),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ledger.ErrUnavailable, collection, err)
	}
	defer dbRows.Close()

	var rows []ledger.Row
	for dbRows.Next() {
		var cols pq.StringArray
		if err := dbRows.Scan(&cols); err != nil {
			return nil, fmt.Errorf("%w: scanning %s row: %v", ledger.ErrMalformedRecord, collection, err)
		}
		rows = append(rows, ledger.Row(cols))
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s rows: %v", ledger.ErrUnavailable, collection, err)
	}
	return rows, nil
}
