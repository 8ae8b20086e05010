package usecases

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
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
	"growfin.backend/pkg/money"
)

const dateLayout = "2006-01-02"

// LoanUsecase handles loan disbursement, collection and the derived
// accounting views.
type LoanUsecase struct {
	loanRepo     repositories.LoanRepository
	paymentRepo  repositories.PaymentRepository
	customerRepo repositories.CustomerRepository
	seqRepo      repositories.SequenceRepository
	uow          repositories.UnitOfWork
	clk          clock.Clock
	validate     *validator.Validate
}

// NewLoanUsecase creates a new loan usecase
func NewLoanUsecase(
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.PaymentRepository,
	customerRepo repositories.CustomerRepository,
	seqRepo repositories.SequenceRepository,
	uow repositories.UnitOfWork,
	clk clock.Clock,
) *LoanUsecase {
	return &LoanUsecase{
		loanRepo:     loanRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		seqRepo:      seqRepo,
		uow:          uow,
		clk:          clk,
		validate:     validator.New(),
	}
}

// Create disburses a loan with fixed terms. The payable total and the daily
// installment are computed once here and never recomputed from payments.
func (u *LoanUsecase) Create(ctx context.Context, actor entities.Actor, input *entities.CreateLoanInput) (*entities.Loan, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid customer_id")
	}
	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer.EligibilityStatus != entities.EligibilityEligible {
		return nil, domainerrors.NewAppError(400, "Customer is not eligible for a loan", domainerrors.ErrNotEligible)
	}

	principal, err := money.Parse(input.PrincipalAmount)
	if err != nil || !principal.IsPositive() {
		return nil, domainerrors.NewValidationError("principal_amount must be a positive number")
	}
	rate, err := money.Parse(input.InterestRate)
	if err != nil || rate.IsNegative() {
		return nil, domainerrors.NewValidationError("interest_rate must be a non-negative number")
	}
	if input.TotalDays <= 0 {
		return nil, domainerrors.NewValidationError("total_days must be greater than zero")
	}
	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, domainerrors.NewValidationError("start_date must be YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return nil, domainerrors.NewValidationError("end_date must be YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, domainerrors.NewValidationError("end_date must not be before start_date")
	}

	totalPayable := money.TotalPayable(principal, rate)
	dailyInstallment := money.DailyInstallment(totalPayable, input.TotalDays)

	loan := &entities.Loan{
		ID:               uuid.New(),
		CustomerID:       customerID,
		PrincipalAmount:  principal,
		InterestRate:     rate,
		TotalDays:        input.TotalDays,
		DailyInstallment: dailyInstallment,
		TotalPayable:     totalPayable,
		StartDate:        startDate,
		EndDate:          endDate,
		Status:           entities.LoanStatusActive,
		CreatedByID:      actor.UserID,
		CreatedAt:        u.clk.Now(),
	}

	for attempt := 0; ; attempt++ {
		err = u.uow.Do(ctx, func(txCtx context.Context) error {
			number := input.LoanNumber
			if number == "" {
				var seqErr error
				number, seqErr = u.seqRepo.NextLoanNumber(txCtx)
				if seqErr != nil {
					return seqErr
				}
			}
			loan.LoanNumber = number
			return u.loanRepo.Create(txCtx, loan)
		})
		if err == nil {
			break
		}
		// caller-supplied numbers are not regenerated; the collision is theirs
		if input.LoanNumber != "" || !domainerrors.IsIntegrityError(err) || attempt+1 >= maxNumberRetries {
			return nil, err
		}
		logger.Warn(ctx, "loan number collision, retrying",
			zap.String("number", loan.LoanNumber), zap.Int("attempt", attempt+1))
	}

	metrics.LoansCreated.Inc()
	logger.Info(ctx, "loan created",
		zap.String("loan_number", loan.LoanNumber),
		zap.String("customer_code", customer.CustomerCode),
		zap.String("total_payable", totalPayable.String()))
	return loan, nil
}

// List returns loans matching the filter, each with derived figures.
func (u *LoanUsecase) List(ctx context.Context, filter repositories.LoanFilter) ([]*entities.LoanView, error) {
	loans, err := u.loanRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]*entities.LoanView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, u.view(loan))
	}
	return views, nil
}

// Get returns one loan with its derived figures, enforcing ownership for
// customer actors.
func (u *LoanUsecase) Get(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.LoanView, error) {
	loan, err := u.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == entities.UserRoleCustomer {
		customer, err := u.customerRepo.GetByUserID(ctx, actor.UserID)
		if err != nil || customer.ID != loan.CustomerID {
			return nil, domainerrors.NotFound("Loan not found")
		}
	}
	return u.view(loan), nil
}

// RecordPayment appends a collection event to the ledger. Overpayment is
// accepted and surfaces as negative outstanding; the ledger never blocks a
// collection that actually happened.
func (u *LoanUsecase) RecordPayment(ctx context.Context, actor entities.Actor, input *entities.RecordPaymentInput) (*entities.Payment, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	loanID, err := uuid.Parse(input.LoanID)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid loan_id")
	}
	loan, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.IsActive() {
		return nil, domainerrors.NewValidationError("Loan is not active (status: " + string(loan.Status) + ")")
	}

	amount, err := money.Parse(input.AmountCollected)
	if err != nil || !amount.IsPositive() {
		return nil, domainerrors.NewValidationError("amount_collected must be a positive number")
	}

	collectionDate := u.clk.Today()
	if input.CollectionDate != "" {
		collectionDate, err = time.Parse(dateLayout, input.CollectionDate)
		if err != nil {
			return nil, domainerrors.NewValidationError("collection_date must be YYYY-MM-DD")
		}
	}

	method := input.PaymentMethod
	if method == "" {
		method = "Cash"
	}

	payment := &entities.Payment{
		ID:              uuid.New(),
		LoanID:          loan.ID,
		CollectionDate:  collectionDate,
		AmountCollected: amount,
		CollectedByID:   actor.UserID,
		PaymentMethod:   method,
		Remarks:         null.NewString(input.Remarks, input.Remarks != ""),
		CreatedAt:       u.clk.Now(),
	}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.Inc()
	logger.Info(ctx, "payment recorded",
		zap.String("loan_number", loan.LoanNumber),
		zap.String("amount", amount.String()),
		zap.String("collected_by", actor.UserID.String()))
	return payment, nil
}

// TodayCollections lists every payment collected today.
func (u *LoanUsecase) TodayCollections(ctx context.Context) ([]*entities.Payment, error) {
	return u.paymentRepo.ListByCollectionDate(ctx, u.clk.Today())
}

// LoansInArrears scans the loan book and reports every loan behind schedule.
func (u *LoanUsecase) LoansInArrears(ctx context.Context) ([]*entities.ArrearsEntry, error) {
	loans, err := u.loanRepo.List(ctx, repositories.LoanFilter{})
	if err != nil {
		return nil, err
	}
	today := u.clk.Today()
	entries := []*entities.ArrearsEntry{}
	for _, loan := range loans {
		arrears := loan.Arrears(today)
		if arrears.IsPositive() {
			entries = append(entries, &entities.ArrearsEntry{
				LoanID:      loan.ID,
				LoanNumber:  loan.LoanNumber,
				CustomerID:  loan.CustomerID,
				Arrears:     arrears,
				Outstanding: loan.Outstanding(),
			})
		}
	}
	return entries, nil
}

// MyLoans returns the acting customer's loan book with a summary.
func (u *LoanUsecase) MyLoans(ctx context.Context, actor entities.Actor) (*entities.LoanSummary, []*entities.LoanView, error) {
	customer, err := u.customerRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, nil, domainerrors.NotFound("No customer profile found for this user")
	}

	loans, err := u.loanRepo.List(ctx, repositories.LoanFilter{CustomerID: &customer.ID})
	if err != nil {
		return nil, nil, err
	}

	summary := &entities.LoanSummary{
		TotalLoans:       len(loans),
		TotalOutstanding: decimal.Zero,
		TotalArrears:     decimal.Zero,
	}
	views := make([]*entities.LoanView, 0, len(loans))
	for _, loan := range loans {
		v := u.view(loan)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(v.Outstanding)
		summary.TotalArrears = summary.TotalArrears.Add(v.Arrears)
		views = append(views, v)
	}
	return summary, views, nil
}

// MyLoanPayments returns the payment history of one of the acting customer's
// loans. A loan belonging to someone else reads as not found.
func (u *LoanUsecase) MyLoanPayments(ctx context.Context, actor entities.Actor, loanID uuid.UUID) (*entities.LoanView, []entities.Payment, error) {
	customer, err := u.customerRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, nil, domainerrors.NotFound("No customer profile found for this user")
	}
	loan, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	if loan.CustomerID != customer.ID {
		return nil, nil, domainerrors.NotFound("Loan not found")
	}
	return u.view(loan), loan.Payments, nil
}

// Dashboard computes the back-office overview projections.
func (u *LoanUsecase) Dashboard(ctx context.Context) (*entities.DashboardStats, error) {
	totalCustomers, err := u.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeLoans, err := u.loanRepo.List(ctx, repositories.LoanFilter{Status: string(entities.LoanStatusActive)})
	if err != nil {
		return nil, err
	}
	totalOutstanding := decimal.Zero
	for _, loan := range activeLoans {
		totalOutstanding = totalOutstanding.Add(loan.Outstanding())
	}

	todaysPayments, err := u.paymentRepo.ListByCollectionDate(ctx, u.clk.Today())
	if err != nil {
		return nil, err
	}
	todaysCollection := decimal.Zero
	for _, p := range todaysPayments {
		todaysCollection = todaysCollection.Add(p.AmountCollected)
	}

	return &entities.DashboardStats{
		TotalCustomers:   totalCustomers,
		TotalActiveLoans: len(activeLoans),
		TotalOutstanding: totalOutstanding,
		TodaysCollection: todaysCollection,
	}, nil
}

func (u *LoanUsecase) view(loan *entities.Loan) *entities.LoanView {
	today := u.clk.Today()
	return &entities.LoanView{
		Loan:           loan,
		TotalPaid:      loan.TotalPaid(),
		Outstanding:    loan.Outstanding(),
		ExpectedToDate: loan.ExpectedToDate(today),
		Arrears:        loan.Arrears(today),
	}
}
