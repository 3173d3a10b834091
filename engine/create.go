package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"

	"luxpos/entities"
	"luxpos/ledger"
)

// CreateTicket opens a visit and seeds its basic-charge line. The two
// appends are not atomic, so the idempotency token is reserved in the ledger
// first; a retry after an ambiguous failure finds the reservation and
// repairs whatever rows are missing instead of minting a second ticket.
func (s *Service) CreateTicket(ctx context.Context, cmd entities.CreateTicket) (string, error) {
	if err := validateCreate(cmd); err != nil {
		return "", err
	}

	token := cmd.Header.IdempotencyKey

	reservations, err := s.ledger.Query(ctx, ledger.CollectionIdempotency, matchFirstColumn(token))
	if err != nil {
		return "", fmt.Errorf("could not check idempotency token: %w", err)
	}

	if len(reservations) > 0 {
		ticketID := reservations[0][1]
		log.FromContext(ctx).WithField("ticket_id", ticketID).Info("Duplicate create detected, reconciling")
		if err := s.reconcileCreate(ctx, ticketID, cmd); err != nil {
			return "", err
		}
		return ticketID, nil
	}

	ticketID := uuid.NewString()
	now := s.now().In(s.location)

	err = s.ledger.Append(ctx, ledger.CollectionIdempotency, ledger.Row{
		token,
		ticketID,
		now.Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("could not reserve idempotency token: %w", err)
	}

	ticket := entities.Ticket{
		TicketID:     ticketID,
		CustomerType: cmd.CustomerType,
		PeopleCount:  cmd.PeopleCount,
		TableIDs:     cmd.TableIDs,
		TableNames:   cmd.TableNames,
		MainCastID:   cmd.MainCastID,
		MainCastName: cmd.MainCastName,
		SubCastIDs:   cmd.SubCastIDs,
		SubCastNames: cmd.SubCastNames,
		CreatedAt:    now,
		Status:       entities.TicketStatusOpen,
	}

	if err := s.ledger.Append(ctx, ledger.CollectionTickets, ticketRow(ticket)); err != nil {
		return "", fmt.Errorf("could not append ticket row: %w", err)
	}

	basicCharge := entities.LineItem{
		TicketID:    ticketID,
		ProductID:   entities.BasicChargeProductID,
		ProductName: entities.BasicChargeProductName,
		Quantity:    cmd.PeopleCount,
		UnitPrice:   cmd.BaseFee,
		LineTotal:   int64(cmd.PeopleCount) * cmd.BaseFee,
		CreatedAt:   now,
	}

	if err := s.ledger.Append(ctx, ledger.CollectionLineItems, lineItemRow(basicCharge)); err != nil {
		return "", fmt.Errorf("could not append basic charge line: %w", err)
	}

	s.publish(ctx, entities.TicketCreated_v1{
		Header:       entities.NewEventHeaderWithIdempotencyKey(token),
		TicketID:     ticketID,
		CustomerType: cmd.CustomerType,
		PeopleCount:  cmd.PeopleCount,
		TableIDs:     cmd.TableIDs,
		MainCastID:   cmd.MainCastID,
		BaseFee:      cmd.BaseFee,
	})

	return ticketID, nil
}

// reconcileCreate re-appends whichever of the ticket and basic-charge rows a
// previous attempt failed to write. Read-back before every append keeps the
// repair itself idempotent.
func (s *Service) reconcileCreate(ctx context.Context, ticketID string, cmd entities.CreateTicket) error {
	now := s.now().In(s.location)

	tickets, err := s.ledger.Query(ctx, ledger.CollectionTickets, matchFirstColumn(ticketID))
	if err != nil {
		return fmt.Errorf("could not read back ticket row: %w", err)
	}
	if len(tickets) == 0 {
		ticket := entities.Ticket{
			TicketID:     ticketID,
			CustomerType: cmd.CustomerType,
			PeopleCount:  cmd.PeopleCount,
			TableIDs:     cmd.TableIDs,
			TableNames:   cmd.TableNames,
			MainCastID:   cmd.MainCastID,
			MainCastName: cmd.MainCastName,
			SubCastIDs:   cmd.SubCastIDs,
			SubCastNames: cmd.SubCastNames,
			CreatedAt:    now,
			Status:       entities.TicketStatusOpen,
		}
		if err := s.ledger.Append(ctx, ledger.CollectionTickets, ticketRow(ticket)); err != nil {
			return fmt.Errorf("could not repair ticket row: %w", err)
		}
	}

	basicLines, err := s.ledger.Query(ctx, ledger.CollectionLineItems, func(row ledger.Row) bool {
		return len(row) > 1 && row[0] == ticketID && row[1] == entities.BasicChargeProductID
	})
	if err != nil {
		return fmt.Errorf("could not read back basic charge line: %w", err)
	}
	if len(basicLines) == 0 {
		basicCharge := entities.LineItem{
			TicketID:    ticketID,
			ProductID:   entities.BasicChargeProductID,
			ProductName: entities.BasicChargeProductName,
			Quantity:    cmd.PeopleCount,
			UnitPrice:   cmd.BaseFee,
			LineTotal:   int64(cmd.PeopleCount) * cmd.BaseFee,
			CreatedAt:   now,
		}
		if err := s.ledger.Append(ctx, ledger.CollectionLineItems, lineItemRow(basicCharge)); err != nil {
			return fmt.Errorf("could not repair basic charge line: %w", err)
		}
	}

	return nil
}

func validateCreate(cmd entities.CreateTicket) error {
	if cmd.Header.IdempotencyKey == "" {
		return InvalidRequestError{Reason: "idempotency token is required"}
	}
	if len(cmd.TableIDs) == 0 {
		return InvalidRequestError{Reason: "at least one table is required"}
	}
	for _, tableID := range cmd.TableIDs {
		if strings.TrimSpace(tableID) == "" {
			return InvalidRequestError{Reason: "table ids must be non-empty"}
		}
	}
	if strings.TrimSpace(cmd.MainCastID) == "" {
		return InvalidRequestError{Reason: "main cast is required"}
	}
	if cmd.PeopleCount < 1 {
		return InvalidRequestError{Reason: "people count must be at least 1"}
	}
	if cmd.BaseFee < 0 {
		return InvalidRequestError{Reason: "base fee must not be negative"}
	}
	return nil
}
