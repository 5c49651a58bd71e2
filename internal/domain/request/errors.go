package request

import (
	"errors"
	"fmt"
)

var (
	ErrRequestNotFound = errors.New("Request not found")

	// ErrNotRequestersManager rejects a manager decision from anyone but
	// the requester's assigned manager.
	ErrNotRequestersManager = errors.New("Decider is not the requester's manager")

	// ErrNotPendingManager / ErrNotPendingHR guard the two decision stages
	// against re-deciding a request that already moved on.
	ErrNotPendingManager = errors.New("Request is not awaiting manager decision")
	ErrNotPendingHR      = errors.New("Request is not awaiting HR decision")
)

// BalanceKind names which ledger balance a submission was checked against.
type BalanceKind string

const (
	BalanceLeave     BalanceKind = "leave"
	BalanceChangeOff BalanceKind = "change-off"
)

// InsufficientBalanceError reports a submission that asked for more days
// than the ledger holds, with both figures so the caller can display them.
type InsufficientBalanceError struct {
	Kind      BalanceKind
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: available %d days, requested %d", e.Kind, e.Available, e.Requested)
}
