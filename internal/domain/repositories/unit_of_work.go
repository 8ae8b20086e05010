package repositories

import (
	"context"
)

// UnitOfWork runs a function inside a single storage transaction. Multi-write
// operations (lead conversion, application create) use it so partial
// application is impossible.
type UnitOfWork interface {
	// Do executes fn within a transaction scope; any error rolls back.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
