package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"growfin.backend/pkg/money"
)

// LoanStatus represents a disbursed loan's lifecycle state
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "Active"
	LoanStatusClosed    LoanStatus = "Closed"
	LoanStatusDefaulted LoanStatus = "Defaulted"
)

// Loan represents a disbursed daily-installment loan. Terms are fixed at
// creation; paid/outstanding/arrears are derived from the payment history.
type Loan struct {
	ID               uuid.UUID       `json:"id"`
	LoanNumber       string          `json:"loanNumber"`
	CustomerID       uuid.UUID       `json:"customerId"`
	PrincipalAmount  decimal.Decimal `json:"principalAmount"`
	InterestRate     decimal.Decimal `json:"interestRate"`
	TotalDays        int             `json:"totalDays"`
	DailyInstallment decimal.Decimal `json:"dailyInstallment"`
	TotalPayable     decimal.Decimal `json:"totalPayable"`
	StartDate        time.Time       `json:"startDate"`
	EndDate          time.Time       `json:"endDate"`
	Status           LoanStatus      `json:"status"`
	CreatedByID      uuid.UUID       `json:"createdById"`
	CreatedAt        time.Time       `json:"createdAt"`

	Payments []Payment `json:"payments,omitempty"`
}

// IsActive reports whether payments may be recorded against the loan. Legacy
// rows carry mixed-case status strings, so the compare is case-insensitive.
func (l *Loan) IsActive() bool {
	return strings.EqualFold(string(l.Status), string(LoanStatusActive))
}

// TotalPaid sums collected amounts over all payments; zero when none.
func (l *Loan) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range l.Payments {
		total = total.Add(p.AmountCollected)
	}
	return total
}

// Outstanding returns total payable minus total paid. Overpaid loans yield a
// negative value; it is surfaced as-is and the caller decides policy.
func (l *Loan) Outstanding() decimal.Decimal {
	return l.TotalPayable.Sub(l.TotalPaid())
}

// ExpectedToDate returns the amount the borrower should have paid by today.
func (l *Loan) ExpectedToDate(today time.Time) decimal.Decimal {
	return money.ExpectedToDate(l.DailyInstallment, l.StartDate, today, l.TotalDays)
}

// Arrears returns how far behind schedule the loan is as of today. Never
// negative.
func (l *Loan) Arrears(today time.Time) decimal.Decimal {
	diff := l.ExpectedToDate(today).Sub(l.TotalPaid())
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}

// Payment represents one collection event against a loan. Immutable once
// created.
type Payment struct {
	ID              uuid.UUID       `json:"id"`
	LoanID          uuid.UUID       `json:"loanId"`
	CollectionDate  time.Time       `json:"collectionDate"`
	AmountCollected decimal.Decimal `json:"amountCollected"`
	CollectedByID   uuid.UUID       `json:"collectedById"`
	PaymentMethod   string          `json:"paymentMethod"`
	Remarks         null.String     `json:"remarks,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CreateLoanInput represents input for loan creation
type CreateLoanInput struct {
	CustomerID      string `json:"customerId" validate:"required"`
	LoanNumber      string `json:"loanNumber"`
	PrincipalAmount string `json:"principalAmount" validate:"required"`
	InterestRate    string `json:"interestRate" validate:"required"`
	TotalDays       int    `json:"totalDays" validate:"required,gt=0"`
	StartDate       string `json:"startDate" validate:"required"`
	EndDate         string `json:"endDate" validate:"required"`
}

// RecordPaymentInput represents input for payment collection
type RecordPaymentInput struct {
	LoanID          string `json:"loanId" validate:"required"`
	AmountCollected string `json:"amountCollected" validate:"required"`
	CollectionDate  string `json:"collectionDate"`
	PaymentMethod   string `json:"paymentMethod"`
	Remarks         string `json:"remarks"`
}

// LoanView is a loan with its derived accounting figures, for read surfaces.
type LoanView struct {
	Loan           *Loan           `json:"loan"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	ExpectedToDate decimal.Decimal `json:"expectedToDate"`
	Arrears        decimal.Decimal `json:"arrears"`
}

// LoanSummary aggregates a customer's loan book.
type LoanSummary struct {
	TotalLoans       int             `json:"totalLoans"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalArrears     decimal.Decimal `json:"totalArrears"`
}

// ArrearsEntry is one row of the loans-in-arrears report.
type ArrearsEntry struct {
	LoanID      uuid.UUID       `json:"loanId"`
	LoanNumber  string          `json:"loanNumber"`
	CustomerID  uuid.UUID       `json:"customerId"`
	Arrears     decimal.Decimal `json:"arrears"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// DashboardStats holds the admin dashboard projections.
type DashboardStats struct {
	TotalCustomers   int64           `json:"totalCustomers"`
	TotalActiveLoans int             `json:"totalActiveLoans"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TodaysCollection decimal.Decimal `json:"todaysCollection"`
}
