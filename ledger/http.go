package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPClient talks to the sheets gateway fronting the venue spreadsheet.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, apiKey string) *HTTPClient {
	if baseURL == "" {
		panic("ledger gateway address is required")
	}

	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type appendRowRequest struct {
	Columns []string `json:"columns"`
}

type queryRowsResponse struct {
	Rows [][]string `json:"rows"`
}

func (c *HTTPClient) Append(ctx context.Context, collection Collection, row Row) error {
	body, err := json.Marshal(appendRowRequest{Columns: row})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.collectionURL(collection)+"/rows",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("could not build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: append to %s: %v", ErrUnavailable, collection, err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp.StatusCode, collection)
}

func (c *HTTPClient) Query(ctx context.Context, collection Collection, match func(Row) bool) ([]Row, error) {
	rows, err := c.fetchRows(ctx, collection)
	if err != nil {
		return nil, err
	}

	if match == nil {
		return rows, nil
	}

	matched := make([]Row, 0, len(rows))
	for _, row := range rows {
		if match(row) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (c *HTTPClient) QueryRecords(ctx context.Context, collection Collection) ([]RawRecord, error) {
	rows, err := c.fetchRows(ctx, collection)
	if err != nil {
		return nil, err
	}
	return RecordsFromRows(rows), nil
}

// RecordsFromRows treats the first row as the header and keys every
// following row by it. Cells beyond the header width are dropped.
func RecordsFromRows(rows []Row) []RawRecord {
	if len(rows) < 2 {
		return nil
	}

	header := rows[0]
	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(RawRecord, len(header))
		for i, field := range header {
			if i < len(row) {
				record[field] = row[i]
			}
		}
		records = append(records, record)
	}
	return records
}

func (c *HTTPClient) fetchRows(ctx context.Context, collection Collection) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.collectionURL(collection)+"/rows", nil)
	if err != nil {
		return nil, fmt.Errorf("could not build query request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrUnavailable, collection, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp.StatusCode, collection); err != nil {
		return nil, err
	}

	var payload queryRowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding %s rows: %v", ErrMalformedRecord, collection, err)
	}

	rows := make([]Row, 0, len(payload.Rows))
	for _, row := range payload.Rows {
		rows = append(rows, Row(row))
	}
	return rows, nil
}

func (c *HTTPClient) collectionURL(collection Collection) string {
	return c.baseURL + "/collections/" + url.PathEscape(string(collection))
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *HTTPClient) checkStatus(statusCode int, collection Collection) error {
	switch {
	case statusCode == http.StatusOK || statusCode == http.StatusCreated || statusCode == http.StatusNoContent:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s: status %d", ErrUnauthorized, collection, statusCode)
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s: status %d", ErrMalformedRecord, collection, statusCode)
	case statusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrDuplicateRow, collection)
	default:
		return fmt.Errorf("%w: %s: unexpected status %d", ErrUnavailable, collection, statusCode)
	}
}
