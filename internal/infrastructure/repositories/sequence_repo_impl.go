package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"growfin.backend/internal/infrastructure/models"
)

// Counter names. Application numbers get one counter per calendar day.
const (
	counterCustomerCode = "customer_code"
	counterLoanNumber   = "loan_number"
)

// SequenceRepository allocates identifiers from locked counter rows. Inside a
// UnitOfWork the lock is held until the surrounding transaction commits, so
// an identifier is never observed by a second allocator before its row lands.
type SequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// NextCustomerCode returns the next CUST-NNNNN code.
func (r *SequenceRepository) NextCustomerCode(ctx context.Context) (string, error) {
	n, err := r.next(ctx, counterCustomerCode)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CUST-%05d", n), nil
}

// NextApplicationNumber returns the next GROW-APP-YYYYMMDD-NNNN number. The
// counter is scoped to the day, restarting at 1 each morning.
func (r *SequenceRepository) NextApplicationNumber(ctx context.Context, day time.Time) (string, error) {
	datePart := day.Format("20060102")
	n, err := r.next(ctx, "application_number_"+datePart)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("GROW-APP-%s-%04d", datePart, n), nil
}

// NextLoanNumber returns the next LN-NNNNNN loan number.
func (r *SequenceRepository) NextLoanNumber(ctx context.Context) (string, error) {
	n, err := r.next(ctx, counterLoanNumber)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LN-%06d", n), nil
}

// next increments the named counter under a row lock and returns the new
// value. A missing counter row starts from zero.
func (r *SequenceRepository) next(ctx context.Context, name string) (int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var counter models.Counter
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.Counter{Name: name, Value: 0}
		if err := db.Create(&counter).Error; err != nil {
			return 0, translateError(err, "counters.name")
		}
	} else if err != nil {
		return 0, err
	}

	counter.Value++
	if err := db.Model(&models.Counter{}).Where("name = ?", name).
		Update("value", counter.Value).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}
