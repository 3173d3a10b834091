package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lithammer/shortuuid/v3"
	"github.com/stretchr/testify/require"
)

type CreateTicketRequest struct {
	CustomerType string   `json:"customer_type"`
	PeopleCount  int      `json:"people_count"`
	TableIDs     []string `json:"table_ids"`
	TableNames   string   `json:"table_names"`
	MainCastID   string   `json:"main_cast_id"`
	MainCastName string   `json:"main_cast_name"`
	BaseFee      int64    `json:"base_fee"`
}

type AddLineItemRequest struct {
	TicketID    string `json:"ticket_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

type CheckoutRequest struct {
	TicketID      string `json:"ticket_id"`
	Discount      int64  `json:"discount"`
	PaymentMethod string `json:"payment_method"`
}

func sendCreateTicket(t *testing.T, idempotencyKey string, req CreateTicketRequest) {
	t.Helper()
	postAction(t, "http://localhost:8080/actions/create-ticket", idempotencyKey, req)
}

func sendAddLineItem(t *testing.T, idempotencyKey string, req AddLineItemRequest) {
	t.Helper()
	postAction(t, "http://localhost:8080/actions/add-line-item", idempotencyKey, req)
}

func sendCheckout(t *testing.T, req CheckoutRequest) {
	t.Helper()
	postAction(t, "http://localhost:8080/actions/checkout", "", req)
}

func postAction(t *testing.T, url string, idempotencyKey string, body any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	require.NoError(t, err)

	httpReq.Header.Set("Correlation-ID", shortuuid.New())
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusAccepted, resp.StatusCode)
}
