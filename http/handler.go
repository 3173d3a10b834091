package http

import (
	"context"

	"luxpos/engine"
	"luxpos/ledger"
)

// CommandSender delivers an action payload to the lifecycle engine
// out-of-band from the requesting client.
type CommandSender interface {
	Send(ctx context.Context, cmd any) error
}

type LedgerReader interface {
	Query(ctx context.Context, collection ledger.Collection, match func(ledger.Row) bool) ([]ledger.Row, error)
	QueryRecords(ctx context.Context, collection ledger.Collection) ([]ledger.RawRecord, error)
}

type TicketReader interface {
	GetTicket(ctx context.Context, ticketID string) (engine.TicketView, error)
}

type Handler struct {
	commandBus   CommandSender
	ledgerReader LedgerReader
	ticketReader TicketReader
}
