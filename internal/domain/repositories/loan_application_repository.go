package repositories

import (
	"context"

	"github.com/google/uuid"
	"growfin.backend/internal/domain/entities"
)

// LoanApplicationRepository defines loan application data operations
type LoanApplicationRepository interface {
	Create(ctx context.Context, app *entities.LoanApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanApplication, error)
	List(ctx context.Context, filter entities.ApplicationFilter) ([]*entities.LoanApplication, error)
	Update(ctx context.Context, app *entities.LoanApplication) error
	AddDocument(ctx context.Context, doc *entities.LoanApplicationDocument) error
	ListDocuments(ctx context.Context) ([]*entities.LoanApplicationDocument, error)
}
