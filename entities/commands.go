package entities

// CreateTicket opens a new visit. The header's idempotency key is the
// client-generated token that makes a retried dispatch a no-op.
type CreateTicket struct {
	Header EventHeader `json:"header"`

	CustomerType CustomerType `json:"customer_type"`
	PeopleCount  int          `json:"people_count"`
	TableIDs     []string     `json:"table_ids"`
	TableNames   string       `json:"table_names"`
	MainCastID   string       `json:"main_cast_id"`
	MainCastName string       `json:"main_cast_name"`
	SubCastIDs   []string     `json:"sub_cast_ids"`
	SubCastNames string       `json:"sub_cast_names"`
	BaseFee      int64        `json:"base_fee"`
}

type AddLineItem struct {
	Header EventHeader `json:"header"`

	TicketID    string `json:"ticket_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

type CheckoutTicket struct {
	Header EventHeader `json:"header"`

	TicketID      string `json:"ticket_id"`
	Discount      int64  `json:"discount"`
	PaymentMethod string `json:"payment_method"`
}
