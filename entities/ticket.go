package entities

import "time"

type TicketStatus string

const (
	TicketStatusOpen TicketStatus = "OPEN"
	TicketStatusDone TicketStatus = "DONE"
)

type CustomerType string

const (
	CustomerTypeNormal   CustomerType = "normal"
	CustomerTypeNew      CustomerType = "new"
	CustomerTypeReferred CustomerType = "referred"
)

// BasicChargeProductID marks the line item seeded automatically at ticket
// creation. It is a reserved product id, never assignable from the menu.
const BasicChargeProductID = "basic"

const BasicChargeProductName = "基本料金"

type Ticket struct {
	TicketID     string       `json:"ticket_id"`
	CustomerType CustomerType `json:"customer_type"`
	PeopleCount  int          `json:"people_count"`
	TableIDs     []string     `json:"table_ids"`
	TableNames   string       `json:"table_names"`
	MainCastID   string       `json:"main_cast_id"`
	MainCastName string       `json:"main_cast_name"`
	SubCastIDs   []string     `json:"sub_cast_ids"`
	SubCastNames string       `json:"sub_cast_names"`
	CreatedAt    time.Time    `json:"created_at"`
	Status       TicketStatus `json:"status"`
	Totals       Totals       `json:"totals"`
}

type LineItem struct {
	TicketID    string    `json:"ticket_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	LineTotal   int64     `json:"line_total"`
	CreatedAt   time.Time `json:"created_at"`
}
