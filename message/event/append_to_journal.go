package event

import (
	"context"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"luxpos/entities"
	"luxpos/ledger"
)

// The journal is an audit trail of lifecycle events, separate from the
// billing collections. Rows: [published_at, event, ticket_id, detail].

func (h Handler) JournalTicketCreated(ctx context.Context, event *entities.TicketCreated_v1) error {
	log.FromContext(ctx).Info("Journaling ticket creation")

	return h.journal.Append(ctx, ledger.CollectionJournal, ledger.Row{
		event.Header.PublishedAt.Format(time.RFC3339),
		"TICKET_CREATED",
		event.TicketID,
		strconv.Itoa(event.PeopleCount) + " guests",
	})
}

func (h Handler) JournalTicketCheckedOut(ctx context.Context, event *entities.TicketCheckedOut_v1) error {
	log.FromContext(ctx).Info("Journaling checkout")

	return h.journal.Append(ctx, ledger.CollectionJournal, ledger.Row{
		event.Header.PublishedAt.Format(time.RFC3339),
		"TICKET_CHECKED_OUT",
		event.TicketID,
		strconv.FormatInt(event.Totals.Total, 10),
	})
}
