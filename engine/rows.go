package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"luxpos/entities"
	"luxpos/ledger"
)

// Positional layouts of the ledger collections. The remote store knows
// nothing about these; the engine is the only writer and owns the shape.
//
//	ticket:    [id, customer_type, people_count, table_ids_csv, table_names,
//	            main_id, main_name, sub_ids_csv, sub_names, created_at,
//	            subtotal, service_fee, tax, status]
//	line item: [ticket_id, product_id, product_name, quantity, unit_price,
//	            line_total, created_at]
//	summary:   [created_at, ticket_id, subtotal, service_fee, tax, total,
//	            payment_method, main_name, status]
//	idempotency: [token, ticket_id, created_at]

func ticketRow(t entities.Ticket) ledger.Row {
	return ledger.Row{
		t.TicketID,
		string(t.CustomerType),
		strconv.Itoa(t.PeopleCount),
		joinCSV(t.TableIDs),
		t.TableNames,
		t.MainCastID,
		t.MainCastName,
		joinCSV(t.SubCastIDs),
		t.SubCastNames,
		t.CreatedAt.Format(time.RFC3339),
		strconv.FormatInt(t.Totals.Subtotal, 10),
		strconv.FormatInt(t.Totals.ServiceFee, 10),
		strconv.FormatInt(t.Totals.Tax, 10),
		string(t.Status),
	}
}

func parseTicketRow(row ledger.Row) (entities.Ticket, error) {
	if len(row) < 14 {
		return entities.Ticket{}, fmt.Errorf("%w: ticket row has %d columns", ledger.ErrMalformedRecord, len(row))
	}

	peopleCount, err := strconv.Atoi(row[2])
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("%w: people count %q", ledger.ErrMalformedRecord, row[2])
	}
	createdAt, err := time.Parse(time.RFC3339, row[9])
	if err != nil {
		return entities.Ticket{}, fmt.Errorf("%w: ticket created_at %q", ledger.ErrMalformedRecord, row[9])
	}

	return entities.Ticket{
		TicketID:     row[0],
		CustomerType: entities.CustomerType(row[1]),
		PeopleCount:  peopleCount,
		TableIDs:     splitCSV(row[3]),
		TableNames:   row[4],
		MainCastID:   row[5],
		MainCastName: row[6],
		SubCastIDs:   splitCSV(row[7]),
		SubCastNames: row[8],
		CreatedAt:    createdAt,
		Status:       entities.TicketStatus(row[13]),
	}, nil
}

func lineItemRow(li entities.LineItem) ledger.Row {
	return ledger.Row{
		li.TicketID,
		li.ProductID,
		li.ProductName,
		strconv.Itoa(li.Quantity),
		strconv.FormatInt(li.UnitPrice, 10),
		strconv.FormatInt(li.LineTotal, 10),
		li.CreatedAt.Format(time.RFC3339),
	}
}

func parseLineItemRow(row ledger.Row) (entities.LineItem, error) {
	if len(row) < 7 {
		return entities.LineItem{}, fmt.Errorf("%w: line item row has %d columns", ledger.ErrMalformedRecord, len(row))
	}

	quantity, err := strconv.Atoi(row[3])
	if err != nil {
		return entities.LineItem{}, fmt.Errorf("%w: quantity %q", ledger.ErrMalformedRecord, row[3])
	}
	unitPrice, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return entities.LineItem{}, fmt.Errorf("%w: unit price %q", ledger.ErrMalformedRecord, row[4])
	}
	lineTotal, err := strconv.ParseInt(row[5], 10, 64)
	if err != nil {
		return entities.LineItem{}, fmt.Errorf("%w: line total %q", ledger.ErrMalformedRecord, row[5])
	}
	createdAt, _ := time.Parse(time.RFC3339, row[6])

	return entities.LineItem{
		TicketID:    row[0],
		ProductID:   row[1],
		ProductName: row[2],
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   lineTotal,
		CreatedAt:   createdAt,
	}, nil
}

func summaryRow(s entities.SalesSummary) ledger.Row {
	return ledger.Row{
		s.CreatedAt.Format(time.RFC3339),
		s.TicketID,
		strconv.FormatInt(s.Subtotal, 10),
		strconv.FormatInt(s.ServiceFee, 10),
		strconv.FormatInt(s.Tax, 10),
		strconv.FormatInt(s.Total, 10),
		s.PaymentMethod,
		s.MainCastName,
		string(s.Status),
	}
}

func parseSummaryRow(row ledger.Row) (entities.SalesSummary, error) {
	if len(row) < 9 {
		return entities.SalesSummary{}, fmt.Errorf("%w: summary row has %d columns", ledger.ErrMalformedRecord, len(row))
	}

	createdAt, _ := time.Parse(time.RFC3339, row[0])
	subtotal, err := strconv.ParseInt(row[2], 10, 64)
	if err != nil {
		return entities.SalesSummary{}, fmt.Errorf("%w: summary subtotal %q", ledger.ErrMalformedRecord, row[2])
	}
	serviceFee, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return entities.SalesSummary{}, fmt.Errorf("%w: summary service fee %q", ledger.ErrMalformedRecord, row[3])
	}
	tax, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return entities.SalesSummary{}, fmt.Errorf("%w: summary tax %q", ledger.ErrMalformedRecord, row[4])
	}
	total, err := strconv.ParseInt(row[5], 10, 64)
	if err != nil {
		return entities.SalesSummary{}, fmt.Errorf("%w: summary total %q", ledger.ErrMalformedRecord, row[5])
	}

	return entities.SalesSummary{
		CreatedAt:     createdAt,
		TicketID:      row[1],
		Subtotal:      subtotal,
		ServiceFee:    serviceFee,
		Tax:           tax,
		Total:         total,
		PaymentMethod: row[6],
		MainCastName:  row[7],
		Status:        entities.TicketStatus(row[8]),
	}, nil
}

func joinCSV(values []string) string {
	return strings.Join(values, ",")
}

func splitCSV(csv string) []string {
	if csv == "" {
		return nil
	}
	return strings.Split(csv, ",")
}

func matchFirstColumn(value string) func(ledger.Row) bool {
	return func(row ledger.Row) bool {
		return len(row) > 0 && row[0] == value
	}
}
