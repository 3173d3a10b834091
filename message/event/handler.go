package event

import (
	"context"

	"luxpos/ledger"
)

// JournalWriter is the slice of the ledger the event handlers need.
type JournalWriter interface {
	Append(ctx context.Context, collection ledger.Collection, row ledger.Row) error
}

type Handler struct {
	journal JournalWriter
}

func NewHandler(journal JournalWriter) Handler {
	if journal == nil {
		panic("journal writer is required")
	}

	return Handler{
		journal: journal,
	}
}
