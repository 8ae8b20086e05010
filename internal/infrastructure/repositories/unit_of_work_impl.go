package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	domainerrors "growfin.backend/internal/domain/errors"
	domainRepos "growfin.backend/internal/domain/repositories"
)

type contextKey string

const (
	txKey contextKey = "tx_db"
)

// UnitOfWorkImpl implements UnitOfWork using GORM
type UnitOfWorkImpl struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork
func NewUnitOfWork(db *gorm.DB) domainRepos.UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

// Do executes the given function within a transaction scope. The transaction
// handle rides in the context; repositories pick it up via GetDB.
func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := GetDB(ctx, u.db).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetDB extracts the transaction DB from context if present, otherwise
// returns the fallback. All repositories in this package route through it so
// writes inside a UnitOfWork share one transaction.
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// translateError maps driver-level uniqueness violations onto the domain
// IntegrityError so usecases can retry identifier generation.
func translateError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.NewIntegrityError(key, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domainerrors.NewIntegrityError(key, err)
	}
	return err
}
