package repositories

import (
	"context"

	"github.com/google/uuid"
	"growfin.backend/internal/domain/entities"
)

// CustomerRepository defines customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Customer, error)
	List(ctx context.Context, filter entities.CustomerFilter) ([]*entities.Customer, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, customer *entities.Customer) error
}
