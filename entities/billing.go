package entities

import "time"

// Totals holds checkout amounts in the smallest currency unit (yen).
type Totals struct {
	Subtotal   int64 `json:"subtotal"`
	ServiceFee int64 `json:"service_fee"`
	Tax        int64 `json:"tax"`
	Discount   int64 `json:"discount"`
	Total      int64 `json:"total"`
}

// SalesSummary is the terminal record of a ticket. It is appended exactly
// once per ticket and never updated.
type SalesSummary struct {
	CreatedAt     time.Time    `json:"created_at"`
	TicketID      string       `json:"ticket_id"`
	Subtotal      int64        `json:"subtotal"`
	ServiceFee    int64        `json:"service_fee"`
	Tax           int64        `json:"tax"`
	Total         int64        `json:"total"`
	PaymentMethod string       `json:"payment_method"`
	MainCastName  string       `json:"main_cast_name"`
	Status        TicketStatus `json:"status"`
}
