package db

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxpos/ledger"
)

var testDB *sqlx.DB
var getDbOnce sync.Once

func getDb(t *testing.T) *sqlx.DB {
	t.Helper()

	if os.Getenv("POSTGRES_URL") == "" {
		t.Skip("POSTGRES_URL not set")
	}

	getDbOnce.Do(func() {
		var err error
		testDB, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}
	})
	return testDB
}

func TestPostgresLedgerAppendQuery(t *testing.T) {
	conn := getDb(t)
	db := DB{Conn: conn}
	db.MigrateSchema()
	pgLedger := NewPostgresLedger(&db)
	ctx := context.Background()

	ticketID := uuid.NewString()

	err := pgLedger.Append(ctx, ledger.CollectionLineItems, ledger.Row{
		ticketID, "basic", "基本料金", "2", "5000", "10000", "2026-09-01T20:00:00+09:00",
	})
	require.NoError(t, err)

	err = pgLedger.Append(ctx, ledger.CollectionLineItems, ledger.Row{
		ticketID, "p-1", "シャンパン", "1", "30000", "30000", "2026-09-01T20:15:00+09:00",
	})
	require.NoError(t, err)

	rows, err := pgLedger.Query(ctx, ledger.CollectionLineItems, func(row ledger.Row) bool {
		return len(row) > 0 && row[0] == ticketID
	})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "basic", rows[0][1])
	assert.Equal(t, "p-1", rows[1][1])
}

func TestPostgresLedgerDuplicateSummaryRejected(t *testing.T) {
	conn := getDb(t)
	db := DB{Conn: conn}
	db.MigrateSchema()
	pgLedger := NewPostgresLedger(&db)
	ctx := context.Background()

	ticketID := uuid.NewString()
	summary := ledger.Row{
		"2026-09-01T23:00:00+09:00", ticketID, "10000", "1000", "1000", "12000", "cash", "蘭", "DONE",
	}

	err := pgLedger.Append(ctx, ledger.CollectionSummaries, summary)
	require.NoError(t, err)

	err = pgLedger.Append(ctx, ledger.CollectionSummaries, summary)
	assert.ErrorIs(t, err, ledger.ErrDuplicateRow)
}

func TestPostgresLedgerDuplicateIdempotencyTokenRejected(t *testing.T) {
	conn := getDb(t)
	db := DB{Conn: conn}
	db.MigrateSchema()
	pgLedger := NewPostgresLedger(&db)
	ctx := context.Background()

	token := uuid.NewString()

	err := pgLedger.Append(ctx, ledger.CollectionIdempotency, ledger.Row{token, uuid.NewString(), "2026-09-01T20:00:00+09:00"})
	require.NoError(t, err)

	err = pgLedger.Append(ctx, ledger.CollectionIdempotency, ledger.Row{token, uuid.NewString(), "2026-09-01T20:00:01+09:00"})
	assert.ErrorIs(t, err, ledger.ErrDuplicateRow)
}
