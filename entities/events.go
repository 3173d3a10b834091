package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type IEvent interface {
	IsInternal() bool
}

type TicketCreated_v1 struct {
	Header EventHeader `json:"header"`

	TicketID     string       `json:"ticket_id"`
	CustomerType CustomerType `json:"customer_type"`
	PeopleCount  int          `json:"people_count"`
	TableIDs     []string     `json:"table_ids"`
	MainCastID   string       `json:"main_cast_id"`
	BaseFee      int64        `json:"base_fee"`
}

func (e TicketCreated_v1) IsInternal() bool { return false }

type LineItemAdded_v1 struct {
	Header EventHeader `json:"header"`

	TicketID  string `json:"ticket_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
}

func (e LineItemAdded_v1) IsInternal() bool { return false }

type TicketCheckedOut_v1 struct {
	Header EventHeader `json:"header"`

	TicketID      string `json:"ticket_id"`
	Totals        Totals `json:"totals"`
	PaymentMethod string `json:"payment_method"`
	MainCastName  string `json:"main_cast_name"`
}

func (e TicketCheckedOut_v1) IsInternal() bool { return false }
