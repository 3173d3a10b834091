package command

import (
	"context"

	"luxpos/entities"
)

// TicketService is the lifecycle engine as seen from the dispatch side.
type TicketService interface {
	CreateTicket(ctx context.Context, cmd entities.CreateTicket) (string, error)
	AddLineItem(ctx context.Context, cmd entities.AddLineItem) error
	Checkout(ctx context.Context, cmd entities.CheckoutTicket) (entities.Totals, error)
}

type Handler struct {
	ticketService TicketService
}

func NewHandler(ticketService TicketService) Handler {
	if ticketService == nil {
		panic("ticketService is required")
	}

	return Handler{
		ticketService: ticketService,
	}
}
