package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"growfin.backend/internal/domain/entities"
)

// LoanFilter narrows loan listings.
type LoanFilter struct {
	CustomerID *uuid.UUID
	Status     string
}

// LoanRepository defines loan data operations. Reads load the loan together
// with its ordered payment history so accounting projections are computable
// without further round trips.
type LoanRepository interface {
	Create(ctx context.Context, loan *entities.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error)
	List(ctx context.Context, filter LoanFilter) ([]*entities.Loan, error)
}

// PaymentRepository defines payment ledger operations. Payments are
// append-only; there is no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	ListByCollectionDate(ctx context.Context, day time.Time) ([]*entities.Payment, error)
}
