package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"luxpos/billing"
	"luxpos/entities"
	"luxpos/ledger"
	"luxpos/masters"
)

// Checkout computes the ticket's charges and appends its sales summary.
// Re-delivery is a no-op success: if a summary already exists, its totals
// are returned unchanged and nothing is written.
func (s *Service) Checkout(ctx context.Context, cmd entities.CheckoutTicket) (entities.Totals, error) {
	if cmd.TicketID == "" {
		return entities.Totals{}, InvalidRequestError{Reason: "ticket id is required"}
	}

	ticket, err := s.loadTicket(ctx, cmd.TicketID)
	if err != nil {
		return entities.Totals{}, err
	}

	if totals, done, err := s.recordedTotals(ctx, cmd.TicketID); err != nil {
		return entities.Totals{}, err
	} else if done {
		log.FromContext(ctx).WithField("ticket_id", cmd.TicketID).Info("Ticket already checked out")
		return totals, nil
	}

	lineTotalSum, err := s.sumLineItems(ctx, cmd.TicketID)
	if err != nil {
		return entities.Totals{}, err
	}

	settingsRows, err := s.ledger.Query(ctx, ledger.CollectionSettings, nil)
	if err != nil {
		return entities.Totals{}, fmt.Errorf("could not read settings: %w", err)
	}
	rates := billing.RatesFromSettings(masters.SettingsFromRows(settingsRows))

	totals := billing.Compute(lineTotalSum, cmd.Discount, rates)

	summary := entities.SalesSummary{
		CreatedAt:     s.now().In(s.location),
		TicketID:      cmd.TicketID,
		Subtotal:      totals.Subtotal,
		ServiceFee:    totals.ServiceFee,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: cmd.PaymentMethod,
		MainCastName:  ticket.MainCastName,
		Status:        entities.TicketStatusDone,
	}

	err = s.ledger.Append(ctx, ledger.CollectionSummaries, summaryRow(summary))
	if errors.Is(err, ledger.ErrDuplicateRow) {
		// A concurrent checkout won the conditional append. Its summary is
		// the authoritative one.
		recorded, done, readErr := s.recordedTotals(ctx, cmd.TicketID)
		if readErr != nil {
			return entities.Totals{}, readErr
		}
		if done {
			return recorded, nil
		}
		return entities.Totals{}, fmt.Errorf("duplicate summary reported but none found: %w", err)
	}
	if err != nil {
		return entities.Totals{}, fmt.Errorf("could not append sales summary: %w", err)
	}

	s.publish(ctx, entities.TicketCheckedOut_v1{
		Header:        entities.NewEventHeaderWithIdempotencyKey(cmd.Header.IdempotencyKey),
		TicketID:      cmd.TicketID,
		Totals:        totals,
		PaymentMethod: cmd.PaymentMethod,
		MainCastName:  ticket.MainCastName,
	})

	return totals, nil
}

func (s *Service) loadTicket(ctx context.Context, ticketID string) (entities.Ticket, error) {
	rows, err := s.ledger.Query(ctx, ledger.CollectionTickets, matchFirstColumn(ticketID))
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("could not read ticket: %w", err)
	}
	if len(rows) == 0 {
		return entities.Ticket{}, TicketNotFoundError{TicketID: ticketID}
	}
	return parseTicketRow(rows[0])
}

// recordedTotals reads back the ticket's summary, if any. The summary row is
// what marks a ticket DONE; the append-only store has no status update.
func (s *Service) recordedTotals(ctx context.Context, ticketID string) (entities.Totals, bool, error) {
	rows, err := s.ledger.Query(ctx, ledger.CollectionSummaries, func(row ledger.Row) bool {
		return len(row) > 1 && row[1] == ticketID
	})
	if err != nil {
		return entities.Totals{}, false, fmt.Errorf("could not read sales summary: %w", err)
	}
	if len(rows) == 0 {
		return entities.Totals{}, false, nil
	}

	summary, err := parseSummaryRow(rows[0])
	if err != nil {
		return entities.Totals{}, false, err
	}
	return entities.Totals{
		Subtotal:   summary.Subtotal,
		ServiceFee: summary.ServiceFee,
		Tax:        summary.Tax,
		Total:      summary.Total,
	}, true, nil
}

func (s *Service) sumLineItems(ctx context.Context, ticketID string) (int64, error) {
	rows, err := s.ledger.Query(ctx, ledger.CollectionLineItems, matchFirstColumn(ticketID))
	if err != nil {
		return 0, fmt.Errorf("could not read line items: %w", err)
	}

	var sum int64
	for _, row := range rows {
		line, err := parseLineItemRow(row)
		if err != nil {
			return 0, err
		}
		sum += line.LineTotal
	}
	return sum, nil
}
