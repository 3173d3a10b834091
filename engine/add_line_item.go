package engine

import (
	"context"
	"fmt"
	"strings"

	"luxpos/entities"
	"luxpos/ledger"
)

// AddLineItem appends one billable entry to an open ticket. The line total
// is always recomputed server-side; a client-supplied total is never
// trusted.
func (s *Service) AddLineItem(ctx context.Context, cmd entities.AddLineItem) error {
	if cmd.TicketID == "" {
		return InvalidRequestError{Reason: "ticket id is required"}
	}
	if strings.TrimSpace(cmd.ProductID) == "" {
		return InvalidRequestError{Reason: "product id is required"}
	}
	if cmd.ProductID == entities.BasicChargeProductID {
		return InvalidRequestError{Reason: "basic charge is seeded at creation and cannot be added"}
	}
	if cmd.Quantity < 1 {
		return InvalidRequestError{Reason: "quantity must be at least 1"}
	}
	if cmd.UnitPrice < 0 {
		return InvalidRequestError{Reason: "unit price must not be negative"}
	}

	if _, err := s.loadTicket(ctx, cmd.TicketID); err != nil {
		return err
	}

	if _, done, err := s.recordedTotals(ctx, cmd.TicketID); err != nil {
		return err
	} else if done {
		return InvalidRequestError{Reason: "ticket is already checked out"}
	}

	line := entities.LineItem{
		TicketID:    cmd.TicketID,
		ProductID:   cmd.ProductID,
		ProductName: cmd.ProductName,
		Quantity:    cmd.Quantity,
		UnitPrice:   cmd.UnitPrice,
		LineTotal:   int64(cmd.Quantity) * cmd.UnitPrice,
		CreatedAt:   s.now().In(s.location),
	}

	if err := s.ledger.Append(ctx, ledger.CollectionLineItems, lineItemRow(line)); err != nil {
		return fmt.Errorf("could not append line item: %w", err)
	}

	s.publish(ctx, entities.LineItemAdded_v1{
		Header:    entities.NewEventHeaderWithIdempotencyKey(cmd.Header.IdempotencyKey),
		TicketID:  cmd.TicketID,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
		LineTotal: line.LineTotal,
	})

	return nil
}
