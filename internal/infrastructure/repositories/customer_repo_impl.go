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

// CustomerRepository implements customer data operations
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	m := r.toModel(customer)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "customers.customer_code")
	}
	return nil
}

// GetByID gets a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NotFound("Customer not found")
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserID gets the customer profile bound to a login identity
func (r *CustomerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NotFound("Customer not found")
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists customers filtered by KYC and eligibility status
func (r *CustomerRepository) List(ctx context.Context, filter entities.CustomerFilter) ([]*entities.Customer, error) {
	var ms []models.Customer
	db := GetDB(ctx, r.db).WithContext(ctx)
	if filter.KYCStatus != "" {
		db = db.Where("kyc_status = ?", filter.KYCStatus)
	}
	if filter.EligibilityStatus != "" {
		db = db.Where("eligibility_status = ?", filter.EligibilityStatus)
	}
	if err := db.Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	customers := make([]*entities.Customer, 0, len(ms))
	for i := range ms {
		customers = append(customers, r.toEntity(&ms[i]))
	}
	return customers, nil
}

// Count counts all customers
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.Customer{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update updates a customer
func (r *CustomerRepository) Update(ctx context.Context, customer *entities.Customer) error {
	m := r.toModel(customer)
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(map[string]interface{}{
		"full_name":          m.FullName,
		"nic_number":         m.NICNumber,
		"mobile":             m.Mobile,
		"address":            m.Address,
		"business_type":      m.BusinessType,
		"status":             m.Status,
		"lead_status":        m.LeadStatus,
		"kyc_status":         m.KYCStatus,
		"eligibility_status": m.EligibilityStatus,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.NotFound("Customer not found")
	}
	return nil
}

func (r *CustomerRepository) toModel(customer *entities.Customer) *models.Customer {
	return &models.Customer{
		ID:                customer.ID,
		UserID:            customer.UserID,
		CustomerCode:      customer.CustomerCode,
		FullName:          customer.FullName,
		NICNumber:         customer.NICNumber.Ptr(),
		Mobile:            customer.Mobile.Ptr(),
		Address:           customer.Address.Ptr(),
		BusinessType:      customer.BusinessType.Ptr(),
		Status:            customer.Status,
		LeadStatus:        string(customer.LeadStatus),
		KYCStatus:         string(customer.KYCStatus),
		EligibilityStatus: string(customer.EligibilityStatus),
		CreatedAt:         customer.CreatedAt,
	}
}

func (r *CustomerRepository) toEntity(m *models.Customer) *entities.Customer {
	return &entities.Customer{
		ID:                m.ID,
		UserID:            m.UserID,
		CustomerCode:      m.CustomerCode,
		FullName:          m.FullName,
		NICNumber:         null.StringFromPtr(m.NICNumber),
		Mobile:            null.StringFromPtr(m.Mobile),
		Address:           null.StringFromPtr(m.Address),
		BusinessType:      null.StringFromPtr(m.BusinessType),
		Status:            m.Status,
		LeadStatus:        entities.LeadStatus(m.LeadStatus),
		KYCStatus:         entities.KYCStatus(m.KYCStatus),
		EligibilityStatus: entities.EligibilityStatus(m.EligibilityStatus),
		CreatedAt:         m.CreatedAt,
	}
}
