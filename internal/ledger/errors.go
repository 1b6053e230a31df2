package ledger

import "errors"

// Sentinel errors for the ledger service layer.
var (
	ErrNotFound = errors.New("campaign not found")

	// ErrIllegalTransition means the requested status change is not an
	// edge of the campaign state machine, or a delivery was recorded
	// against a draft.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrCounterOverflow means a delivery would push sent past the
	// campaign's recipient count.
	ErrCounterOverflow = errors.New("sent would exceed recipients")

	ErrNegativeDelta = errors.New("delivery deltas must be non-negative")
)
