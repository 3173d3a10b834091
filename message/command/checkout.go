package command

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"

	"luxpos/engine"
	"luxpos/entities"
)

func (h Handler) Checkout(ctx context.Context, cmd *entities.CheckoutTicket) error {
	totals, err := h.ticketService.Checkout(ctx, *cmd)
	if err != nil {
		if engine.IsPermanent(err) {
			log.FromContext(ctx).WithField("error", err.Error()).Error("Rejected checkout dispatch")
			return nil
		}
		return fmt.Errorf("checkout dispatch failed: %w", err)
	}

	log.FromContext(ctx).WithFields(logrus.Fields{
		"ticket_id": cmd.TicketID,
		"total":     totals.Total,
	}).Info("Ticket checked out")
	return nil
}
