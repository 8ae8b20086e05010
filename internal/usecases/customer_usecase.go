package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/domain/repositories"
	"growfin.backend/pkg/clock"
	"growfin.backend/pkg/crypto"
	"growfin.backend/pkg/logger"
)

// CustomerUsecase handles customer onboarding, KYC review and the eligibility
// decision.
type CustomerUsecase struct {
	customerRepo repositories.CustomerRepository
	userRepo     repositories.UserRepository
	seqRepo      repositories.SequenceRepository
	uow          repositories.UnitOfWork
	clk          clock.Clock
}

// NewCustomerUsecase creates a new customer usecase
func NewCustomerUsecase(
	customerRepo repositories.CustomerRepository,
	userRepo repositories.UserRepository,
	seqRepo repositories.SequenceRepository,
	uow repositories.UnitOfWork,
	clk clock.Clock,
) *CustomerUsecase {
	return &CustomerUsecase{
		customerRepo: customerRepo,
		userRepo:     userRepo,
		seqRepo:      seqRepo,
		uow:          uow,
		clk:          clk,
	}
}

// List returns customers filtered by KYC and eligibility status. Filter
// values are normalized to upper case before matching.
func (u *CustomerUsecase) List(ctx context.Context, filter entities.CustomerFilter) ([]*entities.Customer, error) {
	filter.KYCStatus = strings.ToUpper(strings.TrimSpace(filter.KYCStatus))
	filter.EligibilityStatus = strings.ToUpper(strings.TrimSpace(filter.EligibilityStatus))
	return u.customerRepo.List(ctx, filter)
}

// Get returns one customer by id.
func (u *CustomerUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	return u.customerRepo.GetByID(ctx, id)
}

// Me returns the customer profile bound to the acting user.
func (u *CustomerUsecase) Me(ctx context.Context, actor entities.Actor) (*entities.Customer, error) {
	customer, err := u.customerRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, domainerrors.NotFound("No customer profile found for this user")
	}
	return customer, nil
}

// SetKYCStatus moves a customer's KYC to the given status. The review flow
// does not enforce ordering between stages; the eligibility gate below is
// what makes KYC approval binding.
func (u *CustomerUsecase) SetKYCStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus) (*entities.Customer, error) {
	switch status {
	case entities.KYCStatusPending, entities.KYCStatusUploaded, entities.KYCStatusUnderReview,
		entities.KYCStatusApproved, entities.KYCStatusRejected, entities.KYCStatusSubmitted:
	default:
		return nil, domainerrors.BadRequest("Invalid KYC status")
	}

	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.KYCStatus = status
	if err := u.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	logger.Info(ctx, "customer KYC status updated",
		zap.String("customer_code", customer.CustomerCode),
		zap.String("kyc_status", string(status)))
	return customer, nil
}

// SetEligibility records the eligibility decision. Marking a customer
// ELIGIBLE requires approved KYC; marking NOT_ELIGIBLE is always allowed.
func (u *CustomerUsecase) SetEligibility(ctx context.Context, id uuid.UUID, status entities.EligibilityStatus) (*entities.Customer, error) {
	if status != entities.EligibilityEligible && status != entities.EligibilityNotEligible {
		return nil, domainerrors.BadRequest("Invalid eligibility status")
	}

	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == entities.EligibilityEligible &&
		!strings.EqualFold(string(customer.KYCStatus), string(entities.KYCStatusApproved)) {
		return nil, domainerrors.NewValidationError("Customer KYC must be approved before eligibility")
	}

	customer.EligibilityStatus = status
	if err := u.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Create onboards a customer directly with real login credentials, bypassing
// the lead pipeline. The user and customer rows commit together.
func (u *CustomerUsecase) Create(ctx context.Context, input *entities.CreateCustomerInput) (*entities.Customer, error) {
	if existing, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domainerrors.Conflict("Email already registered")
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := u.clk.Now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.FullName,
		Role:         entities.UserRoleCustomer,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var customer *entities.Customer
	for attempt := 0; ; attempt++ {
		err = u.uow.Do(ctx, func(txCtx context.Context) error {
			code, seqErr := u.seqRepo.NextCustomerCode(txCtx)
			if seqErr != nil {
				return seqErr
			}
			if err := u.userRepo.Create(txCtx, user); err != nil {
				return err
			}
			customer = &entities.Customer{
				ID:                uuid.New(),
				UserID:            user.ID,
				CustomerCode:      code,
				FullName:          input.FullName,
				NICNumber:         null.NewString(input.NICNumber, input.NICNumber != ""),
				Mobile:            null.NewString(input.Mobile, input.Mobile != ""),
				Address:           null.NewString(input.Address, input.Address != ""),
				BusinessType:      null.NewString(input.BusinessType, input.BusinessType != ""),
				Status:            "ACTIVE",
				LeadStatus:        entities.LeadStatusConverted,
				KYCStatus:         entities.KYCStatusPending,
				EligibilityStatus: entities.EligibilityUnknown,
				CreatedAt:         now,
			}
			return u.customerRepo.Create(txCtx, customer)
		})
		if err == nil {
			return customer, nil
		}
		if !domainerrors.IsIntegrityError(err) || attempt+1 >= maxNumberRetries {
			return nil, err
		}
		logger.Warn(ctx, "customer code collision, retrying", zap.Int("attempt", attempt+1))
	}
}
