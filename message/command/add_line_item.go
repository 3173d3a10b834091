package command

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"luxpos/engine"
	"luxpos/entities"
)

func (h Handler) AddLineItem(ctx context.Context, cmd *entities.AddLineItem) error {
	err := h.ticketService.AddLineItem(ctx, *cmd)
	if err != nil {
		if engine.IsPermanent(err) {
			log.FromContext(ctx).WithField("error", err.Error()).Error("Rejected add line item dispatch")
			return nil
		}
		return fmt.Errorf("add line item dispatch failed: %w", err)
	}

	log.FromContext(ctx).WithField("ticket_id", cmd.TicketID).Info("Line item added")
	return nil
}
