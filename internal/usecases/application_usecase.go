package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/domain/repositories"
	"growfin.backend/pkg/clock"
	"growfin.backend/pkg/logger"
	"growfin.backend/pkg/metrics"
)

// maxNumberRetries bounds the regenerate-and-retry loop on sequence
// collisions before the integrity error is surfaced as fatal.
const maxNumberRetries = 3

// ApplicationUsecase drives a loan application from draft through the
// two-step approval pipeline.
type ApplicationUsecase struct {
	appRepo      repositories.LoanApplicationRepository
	customerRepo repositories.CustomerRepository
	seqRepo      repositories.SequenceRepository
	docStore     repositories.DocumentStore
	uow          repositories.UnitOfWork
	clk          clock.Clock
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo repositories.LoanApplicationRepository,
	customerRepo repositories.CustomerRepository,
	seqRepo repositories.SequenceRepository,
	docStore repositories.DocumentStore,
	uow repositories.UnitOfWork,
	clk clock.Clock,
) *ApplicationUsecase {
	return &ApplicationUsecase{
		appRepo:      appRepo,
		customerRepo: customerRepo,
		seqRepo:      seqRepo,
		docStore:     docStore,
		uow:          uow,
		clk:          clk,
	}
}

// resolveCustomerID determines which customer an operation targets. Customer
// actors always act on their own profile; staff and admin supply an explicit
// customer id.
func (u *ApplicationUsecase) resolveCustomerID(ctx context.Context, actor entities.Actor, explicit *uuid.UUID) (uuid.UUID, error) {
	if actor.Role == entities.UserRoleCustomer {
		customer, err := u.customerRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			logger.Warn(ctx, "customer profile missing for application actor",
				zap.String("user_id", actor.UserID.String()))
			return uuid.Nil, domainerrors.BadRequest("No customer profile found for this user")
		}
		return customer.ID, nil
	}
	if explicit == nil {
		return uuid.Nil, domainerrors.BadRequest("customer_id is required")
	}
	if _, err := u.customerRepo.GetByID(ctx, *explicit); err != nil {
		return uuid.Nil, err
	}
	return *explicit, nil
}

// checkAccess enforces that customer actors only touch applications owned by
// their own profile. The ownership check is separate from the state machine:
// a mismatch is a forbidden, not a state error, and reveals nothing further.
func (u *ApplicationUsecase) checkAccess(ctx context.Context, actor entities.Actor, app *entities.LoanApplication) error {
	if actor.Role != entities.UserRoleCustomer {
		return nil
	}
	customer, err := u.customerRepo.GetByUserID(ctx, actor.UserID)
	if err != nil || customer.ID != app.CustomerID {
		return domainerrors.Forbidden("Access forbidden")
	}
	return nil
}

// Create validates the payload and opens a DRAFT application.
func (u *ApplicationUsecase) Create(ctx context.Context, actor entities.Actor, explicitCustomerID *uuid.UUID, payload entities.ApplicationPayload) (*entities.LoanApplication, error) {
	customerID, err := u.resolveCustomerID(ctx, actor, explicitCustomerID)
	if err != nil {
		return nil, err
	}

	loanType := entities.LoanType(payloadString(payload, "loan_type"))
	typeData := CollectTypeData(loanType, payload)

	if errs := ValidatePayload(payload, loanType); len(errs) > 0 {
		logger.Warn(ctx, "loan application validation failed",
			zap.String("customer_id", customerID.String()),
			zap.Strings("errors", errs))
		return nil, domainerrors.NewValidationError(errs...)
	}

	app := &entities.LoanApplication{
		ID:          uuid.New(),
		CustomerID:  customerID,
		LoanType:    loanType,
		Status:      entities.ApplicationStatusDraft,
		ExtraData:   typeData,
		CreatedByID: actor.UserID,
		CreatedAt:   u.clk.Now(),
		UpdatedAt:   u.clk.Now(),
	}
	u.applyPayload(app, payload)

	for attempt := 0; ; attempt++ {
		err = u.uow.Do(ctx, func(txCtx context.Context) error {
			number, seqErr := u.seqRepo.NextApplicationNumber(txCtx, u.clk.Today())
			if seqErr != nil {
				return seqErr
			}
			app.ApplicationNumber = number
			return u.appRepo.Create(txCtx, app)
		})
		if err == nil {
			return app, nil
		}
		if !domainerrors.IsIntegrityError(err) || attempt+1 >= maxNumberRetries {
			return nil, err
		}
		logger.Warn(ctx, "application number collision, retrying",
			zap.String("number", app.ApplicationNumber), zap.Int("attempt", attempt+1))
	}
}

// Get returns one application, enforcing ownership for customer actors.
func (u *ApplicationUsecase) Get(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.LoanApplication, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.checkAccess(ctx, actor, app); err != nil {
		return nil, err
	}
	return app, nil
}

// List returns applications visible under the given scope. ScopeOwn resolves
// the actor's customer profile; an actor without one sees an empty list.
func (u *ApplicationUsecase) List(ctx context.Context, actor entities.Actor, scope entities.AccessScope, filter entities.ApplicationFilter) ([]*entities.LoanApplication, error) {
	if scope == entities.ScopeOwn {
		customer, err := u.customerRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return []*entities.LoanApplication{}, nil
		}
		filter.CustomerID = &customer.ID
	}
	return u.appRepo.List(ctx, filter)
}

// Update edits a DRAFT or SUBMITTED application. The incoming payload is
// merged over the stored fields before re-validation so partial saves keep
// earlier data.
func (u *ApplicationUsecase) Update(ctx context.Context, actor entities.Actor, id uuid.UUID, payload entities.ApplicationPayload) (*entities.LoanApplication, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.checkAccess(ctx, actor, app); err != nil {
		return nil, err
	}
	if app.Status != entities.ApplicationStatusDraft && app.Status != entities.ApplicationStatusSubmitted {
		return nil, domainerrors.NewStateTransitionError("update", string(app.Status))
	}

	loanType := app.LoanType
	if lt := payloadString(payload, "loan_type"); lt != "" {
		loanType = entities.LoanType(lt)
	}
	typeData := CollectTypeData(loanType, payload)

	merged := u.mergedPayload(app, payload, typeData, loanType)
	if errs := ValidatePayload(merged, loanType); len(errs) > 0 {
		return nil, domainerrors.NewValidationError(errs...)
	}

	app.LoanType = loanType
	u.applyPayload(app, payload)
	app.ExtraData = mergeExtraData(app.ExtraData, typeData)
	app.UpdatedAt = u.clk.Now()

	if err := u.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Submit moves an application to SUBMITTED after full payload and document
// validation. Re-submitting a SUBMITTED or STAFF_APPROVED application is
// allowed and re-stamps submitted_at, supporting correction loops.
func (u *ApplicationUsecase) Submit(ctx context.Context, actor entities.Actor, id uuid.UUID, payload entities.ApplicationPayload) (*entities.LoanApplication, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.checkAccess(ctx, actor, app); err != nil {
		return nil, err
	}
	switch app.Status {
	case entities.ApplicationStatusDraft, entities.ApplicationStatusSubmitted, entities.ApplicationStatusStaffApproved:
	default:
		return nil, domainerrors.NewStateTransitionError("submit", string(app.Status))
	}

	typeData := CollectTypeData(app.LoanType, payload)
	merged := u.mergedPayload(app, payload, typeData, app.LoanType)

	errs := ValidatePayload(merged, app.LoanType)
	errs = append(errs, ValidateRequiredDocuments(app)...)
	if len(errs) > 0 {
		return nil, domainerrors.NewValidationError(errs...)
	}

	now := u.clk.Now()
	app.Status = entities.ApplicationStatusSubmitted
	app.SubmittedAt = &now
	app.ExtraData = mergeExtraData(app.ExtraData, typeData)
	app.UpdatedAt = now

	if err := u.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	metrics.ApplicationsSubmitted.Inc()
	return app, nil
}

// StaffApprove records the first-tier review. Only a SUBMITTED application
// can be staff-approved.
func (u *ApplicationUsecase) StaffApprove(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.StaffReviewInput) (*entities.LoanApplication, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != entities.ApplicationStatusSubmitted {
		return nil, domainerrors.NewStateTransitionError("staff-approve", string(app.Status))
	}

	now := u.clk.Now()
	app.Status = entities.ApplicationStatusStaffApproved
	app.StaffApprovedAt = &now
	app.StaffApprovedByID = &actor.UserID
	if input != nil && input.ReviewNotes != "" {
		app.ReviewNotes = null.StringFrom(input.ReviewNotes)
	}
	app.UpdatedAt = now

	if err := u.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Approve finalizes the decision with the sanctioned amount and tenure.
func (u *ApplicationUsecase) Approve(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.ApproveApplicationInput) (*entities.LoanApplication, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != entities.ApplicationStatusSubmitted && app.Status != entities.ApplicationStatusStaffApproved {
		return nil, domainerrors.NewStateTransitionError("approve", string(app.Status))
	}

	var errs []string
	var amount decimal.Decimal
	var tenure int
	var ok bool
	if amount, ok = parsePayloadDecimal(input.ApprovedAmount); !ok {
		errs = append(errs, "approved_amount is required and must be a number")
	}
	if tenure, ok = parsePayloadInt(input.ApprovedTenure); !ok {
		errs = append(errs, "approved_tenure is required and must be a number")
	}
	if len(errs) > 0 {
		return nil, domainerrors.NewValidationError(errs...)
	}

	now := u.clk.Now()
	app.Status = entities.ApplicationStatusApproved
	app.ApprovedAmount = &amount
	app.ApprovedTenure = &tenure
	if input.ReviewNotes != "" {
		app.ReviewNotes = null.StringFrom(input.ReviewNotes)
	}
	app.ApprovedAt = &now
	app.UpdatedAt = now

	if err := u.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	logger.Info(ctx, "loan application approved",
		zap.String("application_number", app.ApplicationNumber),
		zap.String("approved_by", actor.UserID.String()))
	return app, nil
}

// Reject closes the application with a mandatory reason.
func (u *ApplicationUsecase) Reject(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.RejectApplicationInput) (*entities.LoanApplication, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != entities.ApplicationStatusSubmitted && app.Status != entities.ApplicationStatusStaffApproved {
		return nil, domainerrors.NewStateTransitionError("reject", string(app.Status))
	}
	if input == nil || input.RejectReason == "" {
		return nil, domainerrors.NewValidationError("reject_reason is required")
	}

	app.Status = entities.ApplicationStatusRejected
	app.RejectReason = null.StringFrom(input.RejectReason)
	app.UpdatedAt = u.clk.Now()

	if err := u.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// UploadDocument stores the bytes and attaches the locator.
func (u *ApplicationUsecase) UploadDocument(ctx context.Context, actor entities.Actor, id uuid.UUID, documentType, filename, contentType string, content []byte) (*entities.LoanApplicationDocument, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.checkAccess(ctx, actor, app); err != nil {
		return nil, err
	}
	if documentType == "" || len(content) == 0 {
		return nil, domainerrors.NewValidationError("document_type and file are required")
	}

	locator, err := u.docStore.Save(ctx, app.ID.String(), documentType, filename, contentType, content)
	if err != nil {
		return nil, err
	}

	doc := &entities.LoanApplicationDocument{
		ID:                uuid.New(),
		LoanApplicationID: app.ID,
		DocumentType:      documentType,
		FilePath:          locator,
		UploadedAt:        u.clk.Now(),
	}
	if err := u.appRepo.AddDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListAllDocuments returns the whole document repository, newest first.
func (u *ApplicationUsecase) ListAllDocuments(ctx context.Context) ([]*entities.LoanApplicationDocument, error) {
	return u.appRepo.ListDocuments(ctx)
}

// mergedPayload overlays the incoming payload and collected type data on the
// application's stored fields, producing the view the validator sees.
func (u *ApplicationUsecase) mergedPayload(app *entities.LoanApplication, payload entities.ApplicationPayload, typeData map[string]interface{}, loanType entities.LoanType) entities.ApplicationPayload {
	merged := applicationToPayload(app)
	for k, v := range app.ExtraData {
		merged[k] = v
	}
	for k, v := range payload {
		merged[k] = v
	}
	for k, v := range typeData {
		merged[k] = v
	}
	merged["loan_type"] = string(loanType)
	return merged
}

// applyPayload copies recognized first-class fields from the payload onto the
// application. Only keys present in the payload are touched.
func (u *ApplicationUsecase) applyPayload(app *entities.LoanApplication, payload entities.ApplicationPayload) {
	setString := func(key string, dst *null.String) {
		if _, present := payload[key]; present {
			*dst = null.StringFrom(payloadString(payload, key))
		}
	}
	setString("full_name", &app.FullName)
	setString("nic_number", &app.NICNumber)
	setString("mobile_number", &app.MobileNumber)
	setString("email", &app.Email)
	setString("address_line1", &app.AddressLine1)
	setString("address_line2", &app.AddressLine2)
	setString("city", &app.City)
	setString("district", &app.District)
	setString("province", &app.Province)
	setString("existing_loan_details", &app.ExistingLoanInfo)

	if v, present := payload["applied_amount"]; present {
		if d, ok := parsePayloadDecimal(v); ok {
			app.AppliedAmount = d
		}
	}
	if v, present := payload["interest_rate"]; present {
		if d, ok := parsePayloadDecimal(v); ok {
			app.InterestRate = &d
		}
	}
	if v, present := payload["monthly_income"]; present {
		if d, ok := parsePayloadDecimal(v); ok {
			app.MonthlyIncome = &d
		}
	}
	if v, present := payload["monthly_expenses"]; present {
		if d, ok := parsePayloadDecimal(v); ok {
			app.MonthlyExpenses = &d
		}
	}
	if v, present := payload["tenure_months"]; present {
		if n, ok := parsePayloadInt(v); ok {
			app.TenureMonths = n
		}
	}
	if v, present := payload["has_existing_loans"]; present {
		if b, ok := v.(bool); ok {
			app.HasExistingLoans = b
		}
	}
	if s := payloadString(payload, "date_of_birth"); s != "" {
		if dob, err := time.Parse("2006-01-02", s); err == nil {
			app.DateOfBirth = &dob
		}
	}
}

// applicationToPayload renders stored first-class fields back into payload
// form so merged re-validation sees them.
func applicationToPayload(app *entities.LoanApplication) entities.ApplicationPayload {
	p := entities.ApplicationPayload{
		"loan_type":     string(app.LoanType),
		"tenure_months": app.TenureMonths,
	}
	if !app.AppliedAmount.IsZero() {
		p["applied_amount"] = app.AppliedAmount.String()
	}
	setIf := func(key string, v null.String) {
		if v.Valid && v.String != "" {
			p[key] = v.String
		}
	}
	setIf("full_name", app.FullName)
	setIf("nic_number", app.NICNumber)
	setIf("mobile_number", app.MobileNumber)
	setIf("email", app.Email)
	setIf("address_line1", app.AddressLine1)
	setIf("address_line2", app.AddressLine2)
	setIf("city", app.City)
	setIf("district", app.District)
	setIf("province", app.Province)
	setIf("existing_loan_details", app.ExistingLoanInfo)
	if app.MonthlyIncome != nil {
		p["monthly_income"] = app.MonthlyIncome.String()
	}
	if app.MonthlyExpenses != nil {
		p["monthly_expenses"] = app.MonthlyExpenses.String()
	}
	if app.InterestRate != nil {
		p["interest_rate"] = app.InterestRate.String()
	}
	return p
}

// mergeExtraData overlays newData on existing: new keys overwrite, absent
// keys persist.
func mergeExtraData(existing, newData map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(existing)+len(newData))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range newData {
		merged[k] = v
	}
	return merged
}
