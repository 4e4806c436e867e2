package services

import (
	"errors"
	"fmt"
)

// Operation-boundary errors. All of these are terminal at the handler:
// the operation aborts, state stays unchanged and the operator gets a
// message. None of them may crash the process.
var (
	ErrPoolSizeOutOfRange  = errors.New("pool size must be between 1 and 1000")
	ErrTicketOutOfRange    = errors.New("ticket number outside the current pool")
	ErrInvalidBuyerName    = errors.New("buyer name is invalid")
	ErrInvalidBuyerContact = errors.New("buyer contact is invalid")
	ErrNoSoldTickets       = errors.New("no sold tickets to draw from")
	ErrDrawInProgress      = errors.New("a draw is already in progress")
	ErrImportRejected      = errors.New("backup document rejected")
	ErrStateNotFound       = errors.New("no persisted state for key")

	// ErrConfirmationRequired matches any *ConfirmationError via errors.Is.
	ErrConfirmationRequired = errors.New("operation requires confirmation")
)

// ConfirmationError asks the operator to confirm a destructive operation.
// It carries a reason code and a single-use continuation token; echoing
// the token back lets the operation proceed.
type ConfirmationError struct {
	Reason string `json:"reason"`
	Token  string `json:"token"`
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("confirmation required: %s", e.Reason)
}

func (e *ConfirmationError) Is(target error) bool {
	return target == ErrConfirmationRequired
}
