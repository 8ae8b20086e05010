package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
)

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	createLeadTable(t, db)
	uow := NewUnitOfWork(db)
	repo := NewLeadRepository(db)
	ctx := context.Background()

	lead := &entities.Lead{ID: uuid.New(), Mobile: "+94771112222", Status: entities.LeadStatusNew, CreatedAt: time.Now().UTC()}
	err := uow.Do(ctx, func(txCtx context.Context) error {
		return repo.Create(txCtx, lead)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	require.Equal(t, lead.ID, got.ID)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	createLeadTable(t, db)
	uow := NewUnitOfWork(db)
	repo := NewLeadRepository(db)
	ctx := context.Background()

	lead := &entities.Lead{ID: uuid.New(), Mobile: "+94771112223", Status: entities.LeadStatusNew, CreatedAt: time.Now().UTC()}
	boom := errors.New("boom")
	err := uow.Do(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, lead); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// the write inside the failed transaction never landed
	_, err = repo.GetByID(ctx, lead.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGetDB_FallsBackWithoutTransaction(t *testing.T) {
	db := newTestDB(t)
	require.Same(t, db, GetDB(context.Background(), db))
}

func TestTranslateError(t *testing.T) {
	require.NoError(t, translateError(nil, "users.email"))

	plain := errors.New("disk full")
	require.Equal(t, plain, translateError(plain, "users.email"))

	dup := translateError(gorm.ErrDuplicatedKey, "customers.customer_code")
	require.True(t, domainerrors.IsIntegrityError(dup))

	pqDup := translateError(&pq.Error{Code: "23505"}, "loans.loan_number")
	require.True(t, domainerrors.IsIntegrityError(pqDup))
}
