package ledger

import "errors"

// Sentinel errors returned by the ledger facade. Handlers translate these to
// HTTP at the edge; nothing inside the ledger knows about status codes.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrAlreadyCompleted  = errors.New("already completed for this day")
	ErrInvalidState      = errors.New("invalid state for this transition")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrTransactionFailed = errors.New("transaction failed")
)
