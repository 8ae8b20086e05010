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
)

func seedApplication(number string, customerID uuid.UUID, created time.Time) *entities.LoanApplication {
	return &entities.LoanApplication{
		ID:                uuid.New(),
		ApplicationNumber: number,
		CustomerID:        customerID,
		LoanType:          entities.LoanTypeGrowPersonal,
		Status:            entities.ApplicationStatusDraft,
		AppliedAmount:     decimal.NewFromInt(50000),
		TenureMonths:      12,
		FullName:          null.StringFrom("Kamala Silva"),
		NICNumber:         null.StringFrom("912345678V"),
		ExtraData: map[string]interface{}{
			"employment_type": "self-employed",
		},
		CreatedByID: uuid.New(),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestLoanApplicationRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createApplicationTables(t, db)
	repo := NewLoanApplicationRepository(db)
	ctx := context.Background()

	app := seedApplication("GROW-APP-20260830-0001", uuid.New(), time.Now().UTC())
	require.NoError(t, repo.Create(ctx, app))

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, "GROW-APP-20260830-0001", got.ApplicationNumber)
	require.Equal(t, entities.LoanTypeGrowPersonal, got.LoanType)
	require.True(t, got.AppliedAmount.Equal(decimal.NewFromInt(50000)))
	require.Equal(t, "Kamala Silva", got.FullName.String)
	require.False(t, got.Email.Valid)

	// the type-specific payload survives the JSON column round trip
	require.Equal(t, "self-employed", got.ExtraData["employment_type"])
	require.Empty(t, got.Documents)
}

func TestLoanApplicationRepository_Update(t *testing.T) {
	db := newTestDB(t)
	createApplicationTables(t, db)
	repo := NewLoanApplicationRepository(db)
	ctx := context.Background()

	app := seedApplication("GROW-APP-20260830-0002", uuid.New(), time.Now().UTC())
	require.NoError(t, repo.Create(ctx, app))

	now := time.Now().UTC()
	approvedAmount := decimal.NewFromInt(40000)
	approvedTenure := 10
	staffID := uuid.New()
	app.Status = entities.ApplicationStatusStaffApproved
	app.ApprovedAmount = &approvedAmount
	app.ApprovedTenure = &approvedTenure
	app.ReviewNotes = null.StringFrom("income verified")
	app.SubmittedAt = &now
	app.StaffApprovedAt = &now
	app.StaffApprovedByID = &staffID
	app.ExtraData["net_monthly_salary"] = "85000"
	require.NoError(t, repo.Update(ctx, app))

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.Equal(t, entities.ApplicationStatusStaffApproved, got.Status)
	require.NotNil(t, got.ApprovedAmount)
	require.True(t, got.ApprovedAmount.Equal(approvedAmount))
	require.NotNil(t, got.ApprovedTenure)
	require.Equal(t, 10, *got.ApprovedTenure)
	require.Equal(t, "income verified", got.ReviewNotes.String)
	require.NotNil(t, got.StaffApprovedByID)
	require.Equal(t, staffID, *got.StaffApprovedByID)
	require.Equal(t, "85000", got.ExtraData["net_monthly_salary"])

	t.Run("missing row", func(t *testing.T) {
		ghost := seedApplication("GROW-APP-20260830-0099", uuid.New(), time.Now().UTC())
		require.ErrorIs(t, repo.Update(ctx, ghost), domainerrors.ErrNotFound)
	})
}

func TestLoanApplicationRepository_List(t *testing.T) {
	db := newTestDB(t)
	createApplicationTables(t, db)
	repo := NewLoanApplicationRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	customerID := uuid.New()
	older := seedApplication("GROW-APP-20260801-0001", customerID, base)
	newer := seedApplication("GROW-APP-20260801-0002", customerID, base.Add(time.Hour))
	newer.Status = entities.ApplicationStatusSubmitted
	other := seedApplication("GROW-APP-20260801-0003", uuid.New(), base.Add(2*time.Hour))
	other.LoanType = entities.LoanTypeGrowTeam
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, other))

	all, err := repo.List(ctx, entities.ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	require.Equal(t, other.ID, all[0].ID)
	require.Equal(t, older.ID, all[2].ID)

	mine, err := repo.List(ctx, entities.ApplicationFilter{CustomerID: &customerID})
	require.NoError(t, err)
	require.Len(t, mine, 2)

	submitted, err := repo.List(ctx, entities.ApplicationFilter{Status: "SUBMITTED"})
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	require.Equal(t, newer.ID, submitted[0].ID)

	team, err := repo.List(ctx, entities.ApplicationFilter{LoanType: "GROW_TEAM"})
	require.NoError(t, err)
	require.Len(t, team, 1)

	since := base.Add(30 * time.Minute)
	until := base.Add(90 * time.Minute)
	window, err := repo.List(ctx, entities.ApplicationFilter{Since: &since, Until: &until})
	require.NoError(t, err)
	require.Len(t, window, 1)
	require.Equal(t, newer.ID, window[0].ID)
}

func TestLoanApplicationRepository_Documents(t *testing.T) {
	db := newTestDB(t)
	createApplicationTables(t, db)
	repo := NewLoanApplicationRepository(db)
	ctx := context.Background()

	app := seedApplication("GROW-APP-20260830-0004", uuid.New(), time.Now().UTC())
	require.NoError(t, repo.Create(ctx, app))

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	nicFront := &entities.LoanApplicationDocument{
		ID:                uuid.New(),
		LoanApplicationID: app.ID,
		DocumentType:      "NIC_FRONT",
		FilePath:          app.ID.String() + "/NIC_FRONT_1.jpg",
		UploadedAt:        base,
	}
	selfie := &entities.LoanApplicationDocument{
		ID:                uuid.New(),
		LoanApplicationID: app.ID,
		DocumentType:      "SELFIE_NIC",
		FilePath:          app.ID.String() + "/SELFIE_NIC_1.jpg",
		UploadedAt:        base.Add(time.Minute),
	}
	require.NoError(t, repo.AddDocument(ctx, nicFront))
	require.NoError(t, repo.AddDocument(ctx, selfie))

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.Len(t, got.Documents, 2)

	docs, err := repo.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	// newest upload first
	require.Equal(t, selfie.ID, docs[0].ID)
	require.Equal(t, nicFront.ID, docs[1].ID)
}

func TestLoanApplicationRepository_DuplicateNumberIsIntegrityError(t *testing.T) {
	db := newTestDB(t)
	createApplicationTables(t, db)
	repo := NewLoanApplicationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seedApplication("GROW-APP-20260830-0042", uuid.New(), time.Now().UTC())))

	err := repo.Create(ctx, seedApplication("GROW-APP-20260830-0042", uuid.New(), time.Now().UTC()))
	require.Error(t, err)
	require.True(t, domainerrors.IsIntegrityError(err))
}

func TestLoanApplicationRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	createApplicationTables(t, db)
	repo := NewLoanApplicationRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestLoanApplicationRepository_NilExtraDataDefaultsToEmpty(t *testing.T) {
	db := newTestDB(t)
	createApplicationTables(t, db)
	repo := NewLoanApplicationRepository(db)
	ctx := context.Background()

	app := seedApplication("GROW-APP-20260830-0005", uuid.New(), time.Now().UTC())
	app.ExtraData = nil
	require.NoError(t, repo.Create(ctx, app))

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ExtraData)
	require.Empty(t, got.ExtraData)
}
