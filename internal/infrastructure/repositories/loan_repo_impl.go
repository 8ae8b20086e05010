package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	domainRepos "growfin.backend/internal/domain/repositories"
	"growfin.backend/internal/infrastructure/models"
)

// LoanRepository implements loan data operations
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create creates a new loan
func (r *LoanRepository) Create(ctx context.Context, loan *entities.Loan) error {
	m := &models.Loan{
		ID:               loan.ID,
		LoanNumber:       loan.LoanNumber,
		CustomerID:       loan.CustomerID,
		PrincipalAmount:  loan.PrincipalAmount,
		InterestRate:     loan.InterestRate,
		TotalDays:        loan.TotalDays,
		DailyInstallment: loan.DailyInstallment,
		TotalPayable:     loan.TotalPayable,
		StartDate:        loan.StartDate,
		EndDate:          loan.EndDate,
		Status:           string(loan.Status),
		CreatedByID:      loan.CreatedByID,
		CreatedAt:        loan.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "loans.loan_number")
	}
	return nil
}

// GetByID gets a loan by ID with its payment history
func (r *LoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error) {
	var m models.Loan
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("collection_date ASC, created_at ASC")
		}).
		Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NotFound("Loan not found")
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists loans matching the filter with payment histories
func (r *LoanRepository) List(ctx context.Context, filter domainRepos.LoanFilter) ([]*entities.Loan, error) {
	var ms []models.Loan
	db := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("collection_date ASC, created_at ASC")
		})
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if err := db.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	loans := make([]*entities.Loan, 0, len(ms))
	for i := range ms {
		loans = append(loans, r.toEntity(&ms[i]))
	}
	return loans, nil
}

func (r *LoanRepository) toEntity(m *models.Loan) *entities.Loan {
	loan := &entities.Loan{
		ID:               m.ID,
		LoanNumber:       m.LoanNumber,
		CustomerID:       m.CustomerID,
		PrincipalAmount:  m.PrincipalAmount,
		InterestRate:     m.InterestRate,
		TotalDays:        m.TotalDays,
		DailyInstallment: m.DailyInstallment,
		TotalPayable:     m.TotalPayable,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		Status:           entities.LoanStatus(m.Status),
		CreatedByID:      m.CreatedByID,
		CreatedAt:        m.CreatedAt,
	}
	for _, p := range m.Payments {
		loan.Payments = append(loan.Payments, paymentToEntity(&p))
	}
	return loan
}

// PaymentRepository implements payment ledger operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a payment to the ledger
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ID:              payment.ID,
		LoanID:          payment.LoanID,
		CollectionDate:  payment.CollectionDate,
		AmountCollected: payment.AmountCollected,
		CollectedByID:   payment.CollectedByID,
		PaymentMethod:   payment.PaymentMethod,
		Remarks:         payment.Remarks.Ptr(),
		CreatedAt:       payment.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// ListByCollectionDate lists payments collected on the given day
func (r *PaymentRepository) ListByCollectionDate(ctx context.Context, day time.Time) ([]*entities.Payment, error) {
	var ms []models.Payment
	db := GetDB(ctx, r.db)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)
	if err := db.WithContext(ctx).
		Where("collection_date >= ? AND collection_date < ?", dayStart, dayEnd).
		Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	payments := make([]*entities.Payment, 0, len(ms))
	for i := range ms {
		p := paymentToEntity(&ms[i])
		payments = append(payments, &p)
	}
	return payments, nil
}

func paymentToEntity(m *models.Payment) entities.Payment {
	return entities.Payment{
		ID:              m.ID,
		LoanID:          m.LoanID,
		CollectionDate:  m.CollectionDate,
		AmountCollected: m.AmountCollected,
		CollectedByID:   m.CollectedByID,
		PaymentMethod:   m.PaymentMethod,
		Remarks:         null.StringFromPtr(m.Remarks),
		CreatedAt:       m.CreatedAt,
	}
}
