package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	domainRepos "growfin.backend/internal/domain/repositories"
)

func seedLoan(number string, customerID uuid.UUID, created time.Time) *entities.Loan {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return &entities.Loan{
		ID:               uuid.New(),
		LoanNumber:       number,
		CustomerID:       customerID,
		PrincipalAmount:  decimal.NewFromInt(10000),
		InterestRate:     decimal.NewFromInt(10),
		TotalDays:        100,
		DailyInstallment: decimal.NewFromInt(110),
		TotalPayable:     decimal.NewFromInt(11000),
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, 99),
		Status:           entities.LoanStatusActive,
		CreatedByID:      uuid.New(),
		CreatedAt:        created,
	}
}

func TestLoanRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createLoanTables(t, db)
	loanRepo := NewLoanRepository(db)
	paymentRepo := NewPaymentRepository(db)
	ctx := context.Background()

	loan := seedLoan("LN-000123", uuid.New(), time.Now().UTC())
	require.NoError(t, loanRepo.Create(ctx, loan))

	collector := uuid.New()
	later := &entities.Payment{
		ID:              uuid.New(),
		LoanID:          loan.ID,
		CollectionDate:  time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		AmountCollected: decimal.NewFromInt(220),
		CollectedByID:   collector,
		PaymentMethod:   "Cash",
		CreatedAt:       time.Now().UTC(),
	}
	earlier := &entities.Payment{
		ID:              uuid.New(),
		LoanID:          loan.ID,
		CollectionDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		AmountCollected: decimal.NewFromInt(110),
		CollectedByID:   collector,
		PaymentMethod:   "BankTransfer",
		Remarks:         null.StringFrom("first installment"),
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, paymentRepo.Create(ctx, later))
	require.NoError(t, paymentRepo.Create(ctx, earlier))

	got, err := loanRepo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	require.Equal(t, "LN-000123", got.LoanNumber)
	require.True(t, got.PrincipalAmount.Equal(decimal.NewFromInt(10000)))
	require.True(t, got.DailyInstallment.Equal(decimal.NewFromInt(110)))

	// payments ride along ordered by collection date
	require.Len(t, got.Payments, 2)
	require.Equal(t, earlier.ID, got.Payments[0].ID)
	require.Equal(t, later.ID, got.Payments[1].ID)
	require.Equal(t, "first installment", got.Payments[0].Remarks.String)
	require.False(t, got.Payments[1].Remarks.Valid)
	require.True(t, got.TotalPaid().Equal(decimal.NewFromInt(330)))
}

func TestLoanRepository_List(t *testing.T) {
	db := newTestDB(t)
	createLoanTables(t, db)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	customerID := uuid.New()
	older := seedLoan("LN-000001", customerID, base)
	newer := seedLoan("LN-000002", customerID, base.Add(time.Hour))
	newer.Status = entities.LoanStatusClosed
	other := seedLoan("LN-000003", uuid.New(), base.Add(2*time.Hour))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, other))

	all, err := repo.List(ctx, domainRepos.LoanFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	require.Equal(t, other.ID, all[0].ID)

	mine, err := repo.List(ctx, domainRepos.LoanFilter{CustomerID: &customerID})
	require.NoError(t, err)
	require.Len(t, mine, 2)

	active, err := repo.List(ctx, domainRepos.LoanFilter{CustomerID: &customerID, Status: "Active"})
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, older.ID, active[0].ID)
}

func TestLoanRepository_DuplicateNumberIsIntegrityError(t *testing.T) {
	db := newTestDB(t)
	createLoanTables(t, db)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seedLoan("LN-000777", uuid.New(), time.Now().UTC())))

	err := repo.Create(ctx, seedLoan("LN-000777", uuid.New(), time.Now().UTC()))
	require.Error(t, err)
	require.True(t, domainerrors.IsIntegrityError(err))
}

func TestLoanRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	createLoanTables(t, db)
	repo := NewLoanRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPaymentRepository_ListByCollectionDate(t *testing.T) {
	db := newTestDB(t)
	createLoanTables(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	loanID := uuid.New()
	collector := uuid.New()
	pay := func(day time.Time, amount int64, created time.Time) *entities.Payment {
		p := &entities.Payment{
			ID:              uuid.New(),
			LoanID:          loanID,
			CollectionDate:  day,
			AmountCollected: decimal.NewFromInt(amount),
			CollectedByID:   collector,
			PaymentMethod:   "Cash",
			CreatedAt:       created,
		}
		require.NoError(t, repo.Create(ctx, p))
		return p
	}

	base := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	second := pay(base.Add(18*time.Hour), 220, base.Add(19*time.Hour))
	first := pay(base, 110, base.Add(9*time.Hour))
	pay(base.AddDate(0, 0, -1), 110, base.Add(-2*time.Hour)) // day before
	pay(base.AddDate(0, 0, 1), 110, base.Add(30*time.Hour))  // day after

	// any instant within the day selects the whole day
	got, err := repo.ListByCollectionDate(ctx, base.Add(11*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	// oldest entry first
	require.Equal(t, first.ID, got[0].ID)
	require.Equal(t, second.ID, got[1].ID)

	empty, err := repo.ListByCollectionDate(ctx, base.AddDate(0, 0, 10))
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestPaymentRepository_DBErrorBranches(t *testing.T) {
	db := newTestDB(t)
	// intentionally do not create the payments table
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &entities.Payment{ID: uuid.New(), LoanID: uuid.New(), CollectedByID: uuid.New(), PaymentMethod: "Cash"})
	require.Error(t, err)

	_, err = repo.ListByCollectionDate(ctx, time.Now().UTC())
	require.Error(t, err)
}
