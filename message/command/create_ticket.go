package command

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"luxpos/engine"
	"luxpos/entities"
)

// CreateTicket runs the create dispatch. A permanently invalid command is
// logged and acked so the bus never redelivers it; transient ledger failures
// are returned and retried by the router's retry middleware.
func (h Handler) CreateTicket(ctx context.Context, cmd *entities.CreateTicket) error {
	ticketID, err := h.ticketService.CreateTicket(ctx, *cmd)
	if err != nil {
		if engine.IsPermanent(err) {
			log.FromContext(ctx).WithField("error", err.Error()).Error("Rejected create ticket dispatch")
			return nil
		}
		return fmt.Errorf("create ticket dispatch failed: %w", err)
	}

	log.FromContext(ctx).WithField("ticket_id", ticketID).Info("Ticket created")
	return nil
}
