package engine

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxpos/entities"
	"luxpos/ledger"
)

func newCreateCmd(token string) entities.CreateTicket {
	return entities.CreateTicket{
		Header:       entities.NewEventHeaderWithIdempotencyKey(token),
		CustomerType: entities.CustomerTypeNormal,
		PeopleCount:  2,
		TableIDs:     []string{"t-1"},
		TableNames:   "VIP1",
		MainCastID:   "s-1",
		MainCastName: "蘭",
		BaseFee:      5000,
	}
}

func seedDefaultRates(mock *ledger.Mock) {
	mock.Seed(ledger.CollectionSettings,
		ledger.Row{"service_rate", "0.10"},
		ledger.Row{"tax_rate", "0.10"},
	)
}

func TestCreateTicketGeneratesUniqueIDs(t *testing.T) {
	mock := ledger.NewMock()
	svc := New(mock, nil)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ticketID, err := svc.CreateTicket(ctx, newCreateCmd(uuid.NewString()))
		require.NoError(t, err)
		require.False(t, seen[ticketID], "ticket id %s issued twice", ticketID)
		seen[ticketID] = true
	}

	assert.Len(t, mock.Rows[ledger.CollectionTickets], 100)
	assert.Len(t, mock.Rows[ledger.CollectionLineItems], 100)
}

func TestCreateTicketSeedsBasicCharge(t *testing.T) {
	mock := ledger.NewMock()
	svc := New(mock, nil)

	ticketID, err := svc.CreateTicket(context.Background(), newCreateCmd(uuid.NewString()))
	require.NoError(t, err)

	lines := mock.Rows[ledger.CollectionLineItems]
	require.Len(t, lines, 1)
	assert.Equal(t, ticketID, lines[0][0])
	assert.Equal(t, entities.BasicChargeProductID, lines[0][1])
	assert.Equal(t, "2", lines[0][3])
	assert.Equal(t, "5000", lines[0][4])
	assert.Equal(t, "10000", lines[0][5])
}

func TestCreateTicketIsIdempotent(t *testing.T) {
	mock := ledger.NewMock()
	svc := New(mock, nil)
	ctx := context.Background()

	cmd := newCreateCmd(uuid.NewString())

	firstID, err := svc.CreateTicket(ctx, cmd)
	require.NoError(t, err)

	secondID, err := svc.CreateTicket(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, firstID, secondID)
	assert.Len(t, mock.Rows[ledger.CollectionTickets], 1)
	assert.Len(t, mock.Rows[ledger.CollectionLineItems], 1)
}

func TestCreateTicketRecoversPartialWrite(t *testing.T) {
	mock := ledger.NewMock()
	failed := false
	mock.AppendErr = func(collection ledger.Collection, row ledger.Row) error {
		if collection == ledger.CollectionLineItems && !failed {
			failed = true
			return ledger.ErrUnavailable
		}
		return nil
	}
	svc := New(mock, nil)
	ctx := context.Background()

	cmd := newCreateCmd(uuid.NewString())

	_, err := svc.CreateTicket(ctx, cmd)
	require.ErrorIs(t, err, ledger.ErrUnavailable)
	require.Len(t, mock.Rows[ledger.CollectionTickets], 1)
	require.Empty(t, mock.Rows[ledger.CollectionLineItems])

	// The retried dispatch finds the reservation and repairs the missing
	// line instead of minting a second ticket.
	ticketID, err := svc.CreateTicket(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, mock.Rows[ledger.CollectionTickets][0][0], ticketID)
	assert.Len(t, mock.Rows[ledger.CollectionTickets], 1)
	assert.Len(t, mock.Rows[ledger.CollectionLineItems], 1)
}

func TestCreateTicketRejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entities.CreateTicket)
	}{
		{"no tables", func(cmd *entities.CreateTicket) { cmd.TableIDs = nil }},
		{"blank table id", func(cmd *entities.CreateTicket) { cmd.TableIDs = []string{" "} }},
		{"no main cast", func(cmd *entities.CreateTicket) { cmd.MainCastID = "" }},
		{"zero people", func(cmd *entities.CreateTicket) { cmd.PeopleCount = 0 }},
		{"negative base fee", func(cmd *entities.CreateTicket) { cmd.BaseFee = -1 }},
		{"missing token", func(cmd *entities.CreateTicket) { cmd.Header.IdempotencyKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := ledger.NewMock()
			svc := New(mock, nil)

			cmd := newCreateCmd(uuid.NewString())
			tt.mutate(&cmd)

			_, err := svc.CreateTicket(context.Background(), cmd)

			var invalid InvalidRequestError
			require.ErrorAs(t, err, &invalid)
			assert.True(t, IsPermanent(err))
			assert.Empty(t, mock.Rows, "nothing may reach the ledger on a rejected create")
		})
	}
}

func TestCheckoutComputesTotals(t *testing.T) {
	mock := ledger.NewMock()
	seedDefaultRates(mock)
	svc := New(mock, nil)
	ctx := context.Background()

	ticketID, err := svc.CreateTicket(ctx, newCreateCmd(uuid.NewString()))
	require.NoError(t, err)

	totals, err := svc.Checkout(ctx, entities.CheckoutTicket{
		Header:        entities.NewEventHeaderWithIdempotencyKey(ticketID),
		TicketID:      ticketID,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	// basic charge: 2 guests x 5000
	assert.Equal(t, int64(10000), totals.Subtotal)
	assert.Equal(t, int64(1000), totals.ServiceFee)
	assert.Equal(t, int64(1000), totals.Tax)
	assert.Equal(t, int64(12000), totals.Total)

	summaries := mock.Rows[ledger.CollectionSummaries]
	require.Len(t, summaries, 1)
	assert.Equal(t, ticketID, summaries[0][1])
	assert.Equal(t, "12000", summaries[0][5])
	assert.Equal(t, "cash", summaries[0][6])
	assert.Equal(t, "蘭", summaries[0][7])
	assert.Equal(t, "DONE", summaries[0][8])
}

func TestCheckoutFloorsFeeAndTaxIndependently(t *testing.T) {
	mock := ledger.NewMock()
	seedDefaultRates(mock)
	svc := New(mock, nil)
	ctx := context.Background()

	cmd := newCreateCmd(uuid.NewString())
	cmd.PeopleCount = 1
	cmd.BaseFee = 9999
	ticketID, err := svc.CreateTicket(ctx, cmd)
	require.NoError(t, err)

	totals, err := svc.Checkout(ctx, entities.CheckoutTicket{
		Header:   entities.NewEventHeaderWithIdempotencyKey(ticketID),
		TicketID: ticketID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(999), totals.ServiceFee)
	assert.Equal(t, int64(999), totals.Tax)
	assert.Equal(t, int64(11997), totals.Total)
}

func TestCheckoutClampsDiscount(t *testing.T) {
	mock := ledger.NewMock()
	seedDefaultRates(mock)
	svc := New(mock, nil)
	ctx := context.Background()

	cmd := newCreateCmd(uuid.NewString())
	cmd.PeopleCount = 1
	cmd.BaseFee = 3000
	ticketID, err := svc.CreateTicket(ctx, cmd)
	require.NoError(t, err)

	totals, err := svc.Checkout(ctx, entities.CheckoutTicket{
		Header:   entities.NewEventHeaderWithIdempotencyKey(ticketID),
		TicketID: ticketID,
		Discount: -5000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(0), totals.ServiceFee)
	assert.Equal(t, int64(0), totals.Tax)
	assert.Equal(t, int64(0), totals.Total)
}

func TestCheckoutDefaultsRatesWhenSettingsAbsent(t *testing.T) {
	mock := ledger.NewMock()
	svc := New(mock, nil)
	ctx := context.Background()

	ticketID, err := svc.CreateTicket(ctx, newCreateCmd(uuid.NewString()))
	require.NoError(t, err)

	totals, err := svc.Checkout(ctx, entities.CheckoutTicket{
		Header:   entities.NewEventHeaderWithIdempotencyKey(ticketID),
		TicketID: ticketID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), totals.ServiceFee)
	assert.Equal(t, int64(1000), totals.Tax)
}

func TestCheckoutIsIdempotent(t *testing.T) {
	mock := ledger.NewMock()
	seedDefaultRates(mock)
	svc := New(mock, nil)
	ctx := context.Background()

	ticketID, err := svc.CreateTicket(ctx, newCreateCmd(uuid.NewString()))
	require.NoError(t, err)

	first, err := svc.Checkout(ctx, entities.CheckoutTicket{
		Header:   entities.NewEventHeaderWithIdempotencyKey(ticketID),
		TicketID: ticketID,
		Discount: -1000,
	})
	require.NoError(t, err)

	// Re-delivery, even with a different discount, must not double-bill.
	second, err := svc.Checkout(ctx, entities.CheckoutTicket{
		Header:   entities.NewEventHeaderWithIdempotencyKey(ticketID),
		TicketID: ticketID,
		Discount: -9999,
	})
	require.NoError(t, err)

	assert.Equal(t, first.Subtotal, second.Subtotal)
	assert.Equal(t, first.Total, second.Total)
	assert.Len(t, mock.Rows[ledger.CollectionSummaries], 1)
}

func TestCheckoutUnknownTicket(t *testing.T) {
	mock := ledger.NewMock()
	svc := New(mock, nil)

	_, err := svc.Checkout(context.Background(), entities.CheckoutTicket{
		Header:   entities.NewEventHeader(),
		TicketID: uuid.NewString(),
	})

	var notFound TicketNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.True(t, IsPermanent(err))
}

// duplicateRowLedger simulates losing a conditional-append race: the
// winner's summary lands, the caller gets ErrDuplicateRow back.
type duplicateRowLedger struct {
	*ledger.Mock
}

func (d duplicateRowLedger) Append(ctx context.Context, collection ledger.Collection, row ledger.Row) error {
	if collection == ledger.CollectionSummaries {
		if err := d.Mock.Append(ctx, collection, row); err != nil {
			return err
		}
		return ledger.ErrDuplicateRow
	}
	return d.Mock.Append(ctx, collection, row)
}

func TestCheckoutResolvesDuplicateSummaryByReadBack(t *testing.T) {
	mock := ledger.NewMock()
	seedDefaultRates(mock)
	svc := New(duplicateRowLedger{mock}, nil)
	ctx := context.Background()

	ticketID, err := svc.CreateTicket(ctx, newCreateCmd(uuid.NewString()))
	require.NoError(t, err)

	totals, err := svc.Checkout(ctx, entities.CheckoutTicket{
		Header:   entities.NewEventHeaderWithIdempotencyKey(ticketID),
		TicketID: ticketID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12000), totals.Total)
	assert.Len(t, mock.Rows[ledger.CollectionSummaries], 1)
}

func TestAddLineItemRecomputesLineTotal(t *testing.T) {
	mock := ledger.NewMock()
	svc := New(mock, nil)
	ctx := context.Background()

	ticketID, err := svc.CreateTicket(ctx, newCreateCmd(uuid.NewString()))
	require.NoError(t, err)

	err = svc.AddLineItem(ctx, entities.AddLineItem{
		Header:      entities.NewEventHeader(),
		TicketID:    ticketID,
		ProductID:   "p-1",
		ProductName: "シャンパン",
		Quantity:    2,
		UnitPrice:   30000,
	})
	require.NoError(t, err)

	lines := mock.Rows[ledger.CollectionLineItems]
	require.Len(t, lines, 2)
	assert.Equal(t, "60000", lines[1][5])
}

func TestAddLineItemRejectedAfterCheckout(t *testing.T) {
	mock := ledger.NewMock()
	seedDefaultRates(mock)
	svc := New(mock, nil)
	ctx := context.Background()

	ticketID, err := svc.CreateTicket(ctx, newCreateCmd(uuid.NewString()))
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, entities.CheckoutTicket{
		Header:   entities.NewEventHeaderWithIdempotencyKey(ticketID),
		TicketID: ticketID,
	})
	require.NoError(t, err)

	err = svc.AddLineItem(ctx, entities.AddLineItem{
		Header:    entities.NewEventHeader(),
		TicketID:  ticketID,
		ProductID: "p-1",
		Quantity:  1,
		UnitPrice: 1000,
	})

	var invalid InvalidRequestError
	require.ErrorAs(t, err, &invalid)
}

func TestGetTicketDerivesStatusFromSummary(t *testing.T) {
	mock := ledger.NewMock()
	seedDefaultRates(mock)
	svc := New(mock, nil)
	ctx := context.Background()

	ticketID, err := svc.CreateTicket(ctx, newCreateCmd(uuid.NewString()))
	require.NoError(t, err)

	view, err := svc.GetTicket(ctx, ticketID)
	require.NoError(t, err)
	assert.Equal(t, entities.TicketStatusOpen, view.Ticket.Status)
	require.Len(t, view.LineItems, 1)

	_, err = svc.Checkout(ctx, entities.CheckoutTicket{
		Header:   entities.NewEventHeaderWithIdempotencyKey(ticketID),
		TicketID: ticketID,
	})
	require.NoError(t, err)

	view, err = svc.GetTicket(ctx, ticketID)
	require.NoError(t, err)
	assert.Equal(t, entities.TicketStatusDone, view.Ticket.Status)
	assert.Equal(t, int64(12000), view.Ticket.Totals.Total)
}
