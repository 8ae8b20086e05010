package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/domain/repositories"
	"growfin.backend/pkg/clock"
	"growfin.backend/pkg/crypto"
	"growfin.backend/pkg/logger"
	"growfin.backend/pkg/metrics"

	"github.com/volatiletech/null/v8"
)

// LeadUsecase handles lead intake and conversion into customers.
type LeadUsecase struct {
	leadRepo     repositories.LeadRepository
	customerRepo repositories.CustomerRepository
	userRepo     repositories.UserRepository
	seqRepo      repositories.SequenceRepository
	uow          repositories.UnitOfWork
	clk          clock.Clock
}

// NewLeadUsecase creates a new lead usecase
func NewLeadUsecase(
	leadRepo repositories.LeadRepository,
	customerRepo repositories.CustomerRepository,
	userRepo repositories.UserRepository,
	seqRepo repositories.SequenceRepository,
	uow repositories.UnitOfWork,
	clk clock.Clock,
) *LeadUsecase {
	return &LeadUsecase{
		leadRepo:     leadRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		seqRepo:      seqRepo,
		uow:          uow,
		clk:          clk,
	}
}

// Create captures a new lead. Mobile is the only mandatory field; intake is
// deliberately low-friction.
func (u *LeadUsecase) Create(ctx context.Context, input *entities.CreateLeadInput) (*entities.Lead, error) {
	if strings.TrimSpace(input.Mobile) == "" {
		return nil, domainerrors.NewValidationError("Mobile is required")
	}

	lead := &entities.Lead{
		ID:               uuid.New(),
		Name:             null.NewString(input.Name, input.Name != ""),
		Mobile:           strings.TrimSpace(input.Mobile),
		LoanTypeInterest: null.NewString(input.LoanTypeInterest, input.LoanTypeInterest != ""),
		Source:           null.NewString(input.Source, input.Source != ""),
		Status:           entities.LeadStatusNew,
		CreatedAt:        u.clk.Now(),
	}

	if err := u.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	metrics.LeadsCreated.Inc()
	return lead, nil
}

// List returns leads, newest first, optionally filtered by status.
func (u *LeadUsecase) List(ctx context.Context, status string) ([]*entities.Lead, error) {
	if status != "" && !entities.ValidLeadStatus(status) {
		return nil, domainerrors.BadRequest("Invalid status value")
	}
	return u.leadRepo.List(ctx, status)
}

// UpdateStatus moves a lead along the pipeline. Converted leads are frozen;
// conversion is the only operation that sets CONVERTED.
func (u *LeadUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entities.Lead, error) {
	if !entities.ValidLeadStatus(status) || status == string(entities.LeadStatusConverted) {
		return nil, domainerrors.BadRequest("Invalid status value")
	}
	lead, err := u.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.Status == entities.LeadStatusConverted {
		return nil, domainerrors.NewStateTransitionError("update-status", string(lead.Status))
	}
	lead.Status = entities.LeadStatus(status)
	if err := u.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// ConvertToCustomer turns a lead into an onboarded customer. The operation is
// idempotent: converting an already-converted lead returns the existing
// customer without creating anything. The new customer gets a placeholder
// login identity with a random credential; real credentials arrive later
// through account setup.
func (u *LeadUsecase) ConvertToCustomer(ctx context.Context, leadID uuid.UUID) (*entities.ConvertLeadResult, error) {
	lead, err := u.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if lead.Status == entities.LeadStatusConverted && lead.CustomerID != nil {
		customer, err := u.customerRepo.GetByID(ctx, *lead.CustomerID)
		if err != nil {
			return nil, err
		}
		return &entities.ConvertLeadResult{
			Customer:         customer,
			Lead:             lead,
			AlreadyConverted: true,
		}, nil
	}

	customerName := lead.Name.String
	if customerName == "" {
		customerName = lead.Mobile
	}

	var customer *entities.Customer
	for attempt := 0; ; attempt++ {
		customer, err = u.convertOnce(ctx, lead, customerName)
		if err == nil {
			break
		}
		if !domainerrors.IsIntegrityError(err) || attempt+1 >= maxNumberRetries {
			return nil, err
		}
		logger.Warn(ctx, "lead conversion collision, retrying",
			zap.String("lead_id", lead.ID.String()), zap.Int("attempt", attempt+1))
	}

	metrics.LeadsConverted.Inc()
	logger.Info(ctx, "lead converted to customer",
		zap.String("lead_id", lead.ID.String()),
		zap.String("customer_code", customer.CustomerCode))

	return &entities.ConvertLeadResult{Customer: customer, Lead: lead}, nil
}

// convertOnce performs one conversion attempt inside a single transaction:
// placeholder user, customer with a fresh code, and the lead marked CONVERTED
// all commit together or not at all.
func (u *LeadUsecase) convertOnce(ctx context.Context, lead *entities.Lead, customerName string) (*entities.Customer, error) {
	email, err := placeholderEmail(lead.Mobile)
	if err != nil {
		return nil, err
	}
	password, err := crypto.GenerateRandomToken(12)
	if err != nil {
		return nil, err
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := u.clk.Now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         customerName,
		Role:         entities.UserRoleCustomer,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	prevStatus := lead.Status

	var customer *entities.Customer
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
			FullName:          customerName,
			Mobile:            null.StringFrom(lead.Mobile),
			Status:            "ACTIVE",
			LeadStatus:        entities.LeadStatusConverted,
			KYCStatus:         entities.KYCStatusPending,
			EligibilityStatus: entities.EligibilityUnknown,
			CreatedAt:         now,
		}
		if err := u.customerRepo.Create(txCtx, customer); err != nil {
			return err
		}

		lead.Status = entities.LeadStatusConverted
		lead.CustomerID = &customer.ID
		return u.leadRepo.Update(txCtx, lead)
	})
	if err != nil {
		// roll the in-memory lead back so a retry starts clean
		lead.Status = prevStatus
		lead.CustomerID = nil
		return nil, err
	}
	return customer, nil
}

// placeholderEmail builds a unique synthetic login email from the lead's
// mobile number. The @leads.local domain marks it as non-routable.
func placeholderEmail(mobile string) (string, error) {
	local := strings.ReplaceAll(mobile, " ", "")
	if local == "" {
		local = "lead"
	}
	suffix, err := crypto.GenerateRandomToken(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s@leads.local", local, suffix), nil
}
