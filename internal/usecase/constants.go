package usecase

import (
	"errors"
	"time"
)

const (
	// DefaultOperationTimeout bounds a single message's store round-trips.
	DefaultOperationTimeout = 10 * time.Second

	// DefaultDedupTTL is how long delivered message IDs are remembered.
	DefaultDedupTTL = 24 * time.Hour
)

// Command outcomes reported to CommandObserver.
const (
	OutcomeOK        = "ok"
	OutcomePending   = "pending"
	OutcomeInvalid   = "invalid"
	OutcomeCancelled = "cancelled"
	OutcomeIgnored   = "ignored"
	OutcomeError     = "error"
)

// ErrDeliveryFailed wraps Sender failures returned by HandleMessage. The
// message has been fully processed when it is returned.
var ErrDeliveryFailed = errors.New("reply delivery failed")
