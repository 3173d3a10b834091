package db

// One generic append-only table for every collection; rows are positional,
// exactly as they would land in the remote spreadsheet. The partial unique
// indexes give this backend conditional-append semantics the remote store
// cannot offer: one reservation per idempotency token, one summary per
// ticket.
var schema = `
CREATE TABLE IF NOT EXISTS ledger_rows (
	seq BIGSERIAL PRIMARY KEY,
	collection VARCHAR(64) NOT NULL,
	cols TEXT[] NOT NULL,
	appended_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS ledger_rows_collection_idx
	ON ledger_rows (collection);

CREATE UNIQUE INDEX IF NOT EXISTS ledger_idempotency_token_idx
	ON ledger_rows ((cols[1])) WHERE collection = 'idempotency';

CREATE UNIQUE INDEX IF NOT EXISTS ledger_summary_ticket_idx
	ON ledger_rows ((cols[2])) WHERE collection = 'sales_summary';
`
