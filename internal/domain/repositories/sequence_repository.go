package repositories

import (
	"context"
	"time"
)

// SequenceRepository allocates unique human-readable identifiers. Each call
// increments a dedicated counter row under a row-level lock, so concurrent
// allocations never observe the same value (a COUNT-based generator would).
type SequenceRepository interface {
	// NextCustomerCode returns the next CUST-NNNNN code.
	NextCustomerCode(ctx context.Context) (string, error)
	// NextApplicationNumber returns the next GROW-APP-YYYYMMDD-NNNN number
	// for the given day; the per-day counter restarts at 1.
	NextApplicationNumber(ctx context.Context, day time.Time) (string, error)
	// NextLoanNumber returns the next LN-NNNNNN loan number.
	NextLoanNumber(ctx context.Context) (string, error)
}
