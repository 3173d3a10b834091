package engine

import (
	"errors"
	"fmt"
)

// InvalidRequestError is terminal: the dispatch must not be retried.
type InvalidRequestError struct {
	Reason string
}

func (e InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

func (e InvalidRequestError) IsPermanent() bool {
	return true
}

type TicketNotFoundError struct {
	TicketID string
}

func (e TicketNotFoundError) Error() string {
	return fmt.Sprintf("ticket %s not found", e.TicketID)
}

func (e TicketNotFoundError) IsPermanent() bool {
	return true
}

type permanent interface {
	IsPermanent() bool
}

// IsPermanent reports whether retrying the operation can ever succeed.
// Transient ledger failures stay retryable; everything the engine rejects
// itself is not.
func IsPermanent(err error) bool {
	var p permanent
	return errors.As(err, &p) && p.IsPermanent()
}
