// Package engine owns the ticket lifecycle: creation, line-item accrual and
// checkout. The ledger is the system of record; nothing here caches state
// across invocations, and every multi-row write is designed around the
// store's lack of transactions.
package engine

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"luxpos/ledger"
)

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type Service struct {
	ledger   ledger.Client
	eventBus EventPublisher
	location *time.Location
	now      func() time.Time
}

func New(ledgerClient ledger.Client, eventBus EventPublisher) *Service {
	if ledgerClient == nil {
		panic("ledger client is required")
	}

	return &Service{
		ledger:   ledgerClient,
		eventBus: eventBus,
		location: venueLocation(),
		now:      time.Now,
	}
}

// The venue operates in JST; timestamps in the ledger are venue-local.
func venueLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// publish emits a lifecycle event after the ledger write succeeded. A lost
// event must not fail an operation whose billing is already durable, so
// failures are logged and swallowed here.
func (s *Service) publish(ctx context.Context, event any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		log.FromContext(ctx).WithField("error", err.Error()).Error("Failed to publish lifecycle event")
	}
}
