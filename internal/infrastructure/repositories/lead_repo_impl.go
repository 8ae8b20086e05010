package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/infrastructure/models"
)

// LeadRepository implements lead data operations
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create creates a new lead
func (r *LeadRepository) Create(ctx context.Context, lead *entities.Lead) error {
	m := r.toModel(lead)
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// GetByID gets a lead by ID
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Lead, error) {
	var m models.Lead
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NotFound("Lead not found")
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists leads newest first, optionally filtered by status
func (r *LeadRepository) List(ctx context.Context, status string) ([]*entities.Lead, error) {
	var ms []models.Lead
	db := GetDB(ctx, r.db).WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	leads := make([]*entities.Lead, 0, len(ms))
	for i := range ms {
		leads = append(leads, r.toEntity(&ms[i]))
	}
	return leads, nil
}

// Update updates a lead
func (r *LeadRepository) Update(ctx context.Context, lead *entities.Lead) error {
	m := r.toModel(lead)
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", lead.ID).Updates(map[string]interface{}{
		"name":               m.Name,
		"mobile":             m.Mobile,
		"loan_type_interest": m.LoanTypeInterest,
		"source":             m.Source,
		"status":             m.Status,
		"customer_id":        m.CustomerID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.NotFound("Lead not found")
	}
	return nil
}

func (r *LeadRepository) toModel(lead *entities.Lead) *models.Lead {
	return &models.Lead{
		ID:               lead.ID,
		Name:             lead.Name.Ptr(),
		Mobile:           lead.Mobile,
		LoanTypeInterest: lead.LoanTypeInterest.Ptr(),
		Source:           lead.Source.Ptr(),
		Status:           string(lead.Status),
		CustomerID:       lead.CustomerID,
		CreatedAt:        lead.CreatedAt,
	}
}

func (r *LeadRepository) toEntity(m *models.Lead) *entities.Lead {
	return &entities.Lead{
		ID:               m.ID,
		Name:             null.StringFromPtr(m.Name),
		Mobile:           m.Mobile,
		LoanTypeInterest: null.StringFromPtr(m.LoanTypeInterest),
		Source:           null.StringFromPtr(m.Source),
		Status:           entities.LeadStatus(m.Status),
		CustomerID:       m.CustomerID,
		CreatedAt:        m.CreatedAt,
	}
}
