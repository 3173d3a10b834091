package engine

import (
	"context"
	"fmt"

	"luxpos/entities"
	"luxpos/ledger"
)

// TicketView is the read model served to clients: the ticket with its
// status derived from the ledger and its accumulated line items.
type TicketView struct {
	Ticket    entities.Ticket     `json:"ticket"`
	LineItems []entities.LineItem `json:"line_items"`
}

func (s *Service) GetTicket(ctx context.Context, ticketID string) (TicketView, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return TicketView{}, err
	}

	totals, done, err := s.recordedTotals(ctx, ticketID)
	if err != nil {
		return TicketView{}, err
	}
	if done {
		ticket.Status = entities.TicketStatusDone
		ticket.Totals = totals
	}

	rows, err := s.ledger.Query(ctx, ledger.CollectionLineItems, matchFirstColumn(ticketID))
	if err != nil {
		return TicketView{}, fmt.Errorf("could not read line items: %w", err)
	}

	lines := make([]entities.LineItem, 0, len(rows))
	for _, row := range rows {
		line, err := parseLineItemRow(row)
		if err != nil {
			return TicketView{}, err
		}
		lines = append(lines, line)
	}

	return TicketView{Ticket: ticket, LineItems: lines}, nil
}
