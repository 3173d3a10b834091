package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxpos/engine"
	"luxpos/entities"
	"luxpos/ledger"
)

type commandSenderMock struct {
	Sent []any
}

func (m *commandSenderMock) Send(ctx context.Context, cmd any) error {
	m.Sent = append(m.Sent, cmd)
	return nil
}

func newTestRouter(t *testing.T) (*commandSenderMock, *ledger.Mock, http.Handler) {
	t.Helper()

	commandBus := &commandSenderMock{}
	mock := ledger.NewMock()
	router := NewHttpRouter(commandBus, mock, engine.New(mock, nil))
	return commandBus, mock, router
}

func TestPostCreateTicketRequiresIdempotencyKey(t *testing.T) {
	commandBus, _, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/actions/create-ticket", strings.NewReader(
		`{"people_count": 2, "table_ids": ["t-1"], "main_cast_id": "s-1", "base_fee": 5000}`,
	))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, commandBus.Sent)
}

func TestPostCreateTicketDispatchesCommand(t *testing.T) {
	commandBus, _, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/actions/create-ticket", strings.NewReader(
		`{"customer_type": "new", "people_count": 3, "table_ids": ["t-1", "t-2"], "main_cast_id": "s-1", "base_fee": 5000}`,
	))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "token-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, commandBus.Sent, 1)

	cmd, ok := commandBus.Sent[0].(entities.CreateTicket)
	require.True(t, ok)
	assert.Equal(t, "token-1", cmd.Header.IdempotencyKey)
	assert.Equal(t, entities.CustomerTypeNew, cmd.CustomerType)
	assert.Equal(t, []string{"t-1", "t-2"}, cmd.TableIDs)
}

func TestPostCreateTicketRejectsEmptyTableSet(t *testing.T) {
	commandBus, _, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/actions/create-ticket", strings.NewReader(
		`{"people_count": 2, "table_ids": [], "main_cast_id": "s-1"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "token-2")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, commandBus.Sent)
}

func TestPostCheckoutRequiresTicketID(t *testing.T) {
	commandBus, _, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/actions/checkout", strings.NewReader(
		`{"discount": -1000, "payment_method": "card"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, commandBus.Sent)
}

func TestGetTicketNotFound(t *testing.T) {
	_, _, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/tickets/no-such-ticket", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMastersResolvesRawRecords(t *testing.T) {
	_, mock, router := newTestRouter(t)

	mock.Seed(ledger.CollectionTables,
		ledger.Row{"id", "名称", "有効"},
		ledger.Row{"t-1", "VIP1", "TRUE"},
		ledger.Row{"t-2", "旧席", "FALSE"},
	)

	req := httptest.NewRequest(http.MethodGet, "/masters/tables", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id": "t-1", "name": "VIP1"}]`, rec.Body.String())
}
