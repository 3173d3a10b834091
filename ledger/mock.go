package ledger

import (
	"context"
	"sync"
)

// Mock keeps collections in memory. AppendErr, when set, is consulted before
// every append so tests can inject partial-write failures.
type Mock struct {
	lock sync.Mutex

	Rows map[Collection][]Row

	AppendErr func(collection Collection, row Row) error
}

func NewMock() *Mock {
	return &Mock{Rows: map[Collection][]Row{}}
}

func (m *Mock) Append(ctx context.Context, collection Collection, row Row) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.AppendErr != nil {
		if err := m.AppendErr(collection, row); err != nil {
			return err
		}
	}

	if m.Rows == nil {
		m.Rows = map[Collection][]Row{}
	}

	copied := make(Row, len(row))
	copy(copied, row)
	m.Rows[collection] = append(m.Rows[collection], copied)
	return nil
}

func (m *Mock) Query(ctx context.Context, collection Collection, match func(Row) bool) ([]Row, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	var matched []Row
	for _, row := range m.Rows[collection] {
		if match == nil || match(row) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (m *Mock) QueryRecords(ctx context.Context, collection Collection) ([]RawRecord, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	return RecordsFromRows(m.Rows[collection]), nil
}

// Seed replaces the collection's rows. Test helper.
func (m *Mock) Seed(collection Collection, rows ...Row) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.Rows == nil {
		m.Rows = map[Collection][]Row{}
	}
	m.Rows[collection] = rows
}
