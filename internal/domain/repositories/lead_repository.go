package repositories

import (
	"context"

	"github.com/google/uuid"
	"growfin.backend/internal/domain/entities"
)

// LeadRepository defines lead data operations
type LeadRepository interface {
	Create(ctx context.Context, lead *entities.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Lead, error)
	List(ctx context.Context, status string) ([]*entities.Lead, error)
	Update(ctx context.Context, lead *entities.Lead) error
}
