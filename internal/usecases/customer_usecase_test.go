package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/usecases"
)

func newCustomerUsecase() (*usecases.CustomerUsecase, *MockCustomerRepository, *MockUserRepository, *MockSequenceRepository, *MockUnitOfWork) {
	customerRepo := new(MockCustomerRepository)
	userRepo := new(MockUserRepository)
	seqRepo := new(MockSequenceRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewCustomerUsecase(customerRepo, userRepo, seqRepo, uow, fixedClock())
	return uc, customerRepo, userRepo, seqRepo, uow
}

func TestCustomerUsecase_List_NormalizesFilters(t *testing.T) {
	ctx := context.Background()

	uc, customerRepo, _, _, _ := newCustomerUsecase()
	customerRepo.On("List", ctx, entities.CustomerFilter{
		KYCStatus:         "APPROVED",
		EligibilityStatus: "ELIGIBLE",
	}).Return([]*entities.Customer{}, nil).Once()

	_, err := uc.List(ctx, entities.CustomerFilter{
		KYCStatus:         " approved ",
		EligibilityStatus: "eligible",
	})
	assert.NoError(t, err)
	customerRepo.AssertExpectations(t)
}

func TestCustomerUsecase_Me(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	actor := entities.Actor{UserID: userID, Role: entities.UserRoleCustomer}
	customer := &entities.Customer{ID: uuid.New(), UserID: userID, CustomerCode: "CUST-00001"}

	uc, customerRepo, _, _, _ := newCustomerUsecase()
	customerRepo.On("GetByUserID", ctx, userID).Return(customer, nil).Once()

	got, err := uc.Me(ctx, actor)
	assert.NoError(t, err)
	assert.Equal(t, customer, got)

	t.Run("no profile", func(t *testing.T) {
		uc, customerRepo, _, _, _ := newCustomerUsecase()
		customerRepo.On("GetByUserID", ctx, userID).Return(nil, domainerrors.ErrNotFound).Once()

		_, err := uc.Me(ctx, actor)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})
}

func TestCustomerUsecase_SetKYCStatus(t *testing.T) {
	ctx := context.Background()
	customer := &entities.Customer{ID: uuid.New(), CustomerCode: "CUST-00001", KYCStatus: entities.KYCStatusUploaded}

	uc, customerRepo, _, _, _ := newCustomerUsecase()
	customerRepo.On("GetByID", ctx, customer.ID).Return(customer, nil).Once()
	customerRepo.On("Update", ctx, customer).Return(nil).Once()

	updated, err := uc.SetKYCStatus(ctx, customer.ID, entities.KYCStatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, entities.KYCStatusApproved, updated.KYCStatus)

	t.Run("unknown status", func(t *testing.T) {
		uc, _, _, _, _ := newCustomerUsecase()

		_, err := uc.SetKYCStatus(ctx, customer.ID, entities.KYCStatus("MAYBE"))
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})
}

func TestCustomerUsecase_SetEligibility(t *testing.T) {
	ctx := context.Background()

	t.Run("eligible requires approved KYC", func(t *testing.T) {
		customer := &entities.Customer{ID: uuid.New(), KYCStatus: entities.KYCStatusUnderReview}

		uc, customerRepo, _, _, _ := newCustomerUsecase()
		customerRepo.On("GetByID", ctx, customer.ID).Return(customer, nil).Once()

		_, err := uc.SetEligibility(ctx, customer.ID, entities.EligibilityEligible)
		ve, ok := domainerrors.AsValidationError(err)
		assert.True(t, ok)
		assert.Contains(t, ve.Errors, "Customer KYC must be approved before eligibility")
		customerRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("eligible after KYC approval", func(t *testing.T) {
		customer := &entities.Customer{ID: uuid.New(), KYCStatus: entities.KYCStatusApproved}

		uc, customerRepo, _, _, _ := newCustomerUsecase()
		customerRepo.On("GetByID", ctx, customer.ID).Return(customer, nil).Once()
		customerRepo.On("Update", ctx, customer).Return(nil).Once()

		updated, err := uc.SetEligibility(ctx, customer.ID, entities.EligibilityEligible)
		assert.NoError(t, err)
		assert.Equal(t, entities.EligibilityEligible, updated.EligibilityStatus)
	})

	t.Run("not eligible is always allowed", func(t *testing.T) {
		customer := &entities.Customer{ID: uuid.New(), KYCStatus: entities.KYCStatusPending}

		uc, customerRepo, _, _, _ := newCustomerUsecase()
		customerRepo.On("GetByID", ctx, customer.ID).Return(customer, nil).Once()
		customerRepo.On("Update", ctx, customer).Return(nil).Once()

		updated, err := uc.SetEligibility(ctx, customer.ID, entities.EligibilityNotEligible)
		assert.NoError(t, err)
		assert.Equal(t, entities.EligibilityNotEligible, updated.EligibilityStatus)
	})

	t.Run("unknown is not a decision", func(t *testing.T) {
		uc, _, _, _, _ := newCustomerUsecase()

		_, err := uc.SetEligibility(ctx, uuid.New(), entities.EligibilityUnknown)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})
}

func TestCustomerUsecase_Create(t *testing.T) {
	ctx := context.Background()
	input := &entities.CreateCustomerInput{
		Email:    "sunil@example.com",
		Password: "s3cretpass",
		FullName: "Sunil Fernando",
		Mobile:   "0775556677",
	}

	uc, customerRepo, userRepo, seqRepo, uow := newCustomerUsecase()

	userRepo.On("GetByEmail", ctx, input.Email).Return(nil, domainerrors.ErrNotFound).Once()
	uow.On("Do", ctx, mock.AnythingOfType("func(context.Context) error")).Return(nil).Once()
	seqRepo.On("NextCustomerCode", ctx).Return("CUST-00011", nil).Once()
	userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil).Once()
	customerRepo.On("Create", ctx, mock.AnythingOfType("*entities.Customer")).Return(nil).Once()

	customer, err := uc.Create(ctx, input)
	assert.NoError(t, err)
	assert.Equal(t, "CUST-00011", customer.CustomerCode)
	assert.Equal(t, "ACTIVE", customer.Status)
	assert.Equal(t, entities.LeadStatusConverted, customer.LeadStatus)
	assert.Equal(t, entities.KYCStatusPending, customer.KYCStatus)
	assert.Equal(t, entities.EligibilityUnknown, customer.EligibilityStatus)
	userRepo.AssertExpectations(t)
	customerRepo.AssertExpectations(t)

	t.Run("email conflict", func(t *testing.T) {
		uc, _, userRepo, _, _ := newCustomerUsecase()
		userRepo.On("GetByEmail", ctx, input.Email).Return(&entities.User{ID: uuid.New(), Email: input.Email}, nil).Once()

		_, err := uc.Create(ctx, input)
		assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	})
}
