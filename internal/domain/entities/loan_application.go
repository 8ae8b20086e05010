package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// LoanType represents a loan product
type LoanType string

const (
	LoanTypeGrowOnlineBusiness LoanType = "GROW_ONLINE_BUSINESS"
	LoanTypeGrowBusiness       LoanType = "GROW_BUSINESS"
	LoanTypeGrowPersonal       LoanType = "GROW_PERSONAL"
	LoanTypeGrowTeam           LoanType = "GROW_TEAM"
)

// AllLoanTypes lists every supported loan product.
var AllLoanTypes = []LoanType{
	LoanTypeGrowOnlineBusiness,
	LoanTypeGrowBusiness,
	LoanTypeGrowPersonal,
	LoanTypeGrowTeam,
}

// ApplicationStatus represents a loan application's position in the approval
// pipeline
type ApplicationStatus string

const (
	ApplicationStatusDraft         ApplicationStatus = "DRAFT"
	ApplicationStatusSubmitted     ApplicationStatus = "SUBMITTED"
	ApplicationStatusStaffApproved ApplicationStatus = "STAFF_APPROVED"
	ApplicationStatusApproved      ApplicationStatus = "APPROVED"
	ApplicationStatusRejected      ApplicationStatus = "REJECTED"
	ApplicationStatusDisbursed     ApplicationStatus = "DISBURSED"
)

// Terminal reports whether no further edits or transitions are allowed from s
// other than external disbursement after approval.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected || s == ApplicationStatusDisbursed
}

// DocumentType constants for application attachments
const (
	DocumentNICFront        = "NIC_FRONT"
	DocumentNICBack         = "NIC_BACK"
	DocumentSelfieNIC       = "SELFIE_NIC"
	DocumentStoreScreenshot = "STORE_SCREENSHOT"
	DocumentSalarySlip      = "SALARY_SLIP"
	DocumentMemberList      = "MEMBER_LIST"
	DocumentGroupPhoto      = "GROUP_PHOTO"
)

// LoanApplicationDocument represents one uploaded attachment. The core keeps
// only the storage locator; bytes live in the document store.
type LoanApplicationDocument struct {
	ID                uuid.UUID `json:"id"`
	LoanApplicationID uuid.UUID `json:"loanApplicationId"`
	DocumentType      string    `json:"documentType"`
	FilePath          string    `json:"filePath"`
	UploadedAt        time.Time `json:"uploadedAt"`
}

// LoanApplication represents one submission attempt for a loan product.
// Type-specific fields not promoted to columns live in ExtraData, which is
// merged (never replaced) across partial saves.
type LoanApplication struct {
	ID                uuid.UUID              `json:"id"`
	ApplicationNumber string                 `json:"applicationNumber"`
	CustomerID        uuid.UUID              `json:"customerId"`
	LoanType          LoanType               `json:"loanType"`
	Status            ApplicationStatus      `json:"status"`
	AppliedAmount     decimal.Decimal        `json:"appliedAmount"`
	TenureMonths      int                    `json:"tenureMonths"`
	InterestRate      *decimal.Decimal       `json:"interestRate,omitempty"`
	ApprovedAmount    *decimal.Decimal       `json:"approvedAmount,omitempty"`
	ApprovedTenure    *int                   `json:"approvedTenure,omitempty"`
	ReviewNotes       null.String            `json:"reviewNotes,omitempty"`
	RejectReason      null.String            `json:"rejectReason,omitempty"`
	FullName          null.String            `json:"fullName,omitempty"`
	NICNumber         null.String            `json:"nicNumber,omitempty"`
	MobileNumber      null.String            `json:"mobileNumber,omitempty"`
	Email             null.String            `json:"email,omitempty"`
	AddressLine1      null.String            `json:"addressLine1,omitempty"`
	AddressLine2      null.String            `json:"addressLine2,omitempty"`
	City              null.String            `json:"city,omitempty"`
	District          null.String            `json:"district,omitempty"`
	Province          null.String            `json:"province,omitempty"`
	DateOfBirth       *time.Time             `json:"dateOfBirth,omitempty"`
	MonthlyIncome     *decimal.Decimal       `json:"monthlyIncome,omitempty"`
	MonthlyExpenses   *decimal.Decimal       `json:"monthlyExpenses,omitempty"`
	HasExistingLoans  bool                   `json:"hasExistingLoans"`
	ExistingLoanInfo  null.String            `json:"existingLoanDetails,omitempty"`
	ExtraData         map[string]interface{} `json:"extraData"`
	SubmittedAt       *time.Time             `json:"submittedAt,omitempty"`
	StaffApprovedAt   *time.Time             `json:"staffApprovedAt,omitempty"`
	StaffApprovedByID *uuid.UUID             `json:"staffApprovedById,omitempty"`
	ApprovedAt        *time.Time             `json:"approvedAt,omitempty"`
	CreatedByID       uuid.UUID              `json:"createdById"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`

	Documents []LoanApplicationDocument `json:"documents"`
}

// DocumentTypes returns the set of document types already attached.
func (a *LoanApplication) DocumentTypes() map[string]bool {
	types := make(map[string]bool, len(a.Documents))
	for _, d := range a.Documents {
		types[d.DocumentType] = true
	}
	return types
}

// ApplicationPayload is the raw field map submitted by a client. Keys beyond
// the recognized set for the loan type are discarded, not stored.
type ApplicationPayload map[string]interface{}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	CustomerID *uuid.UUID
	Status     string
	LoanType   string
	Since      *time.Time
	Until      *time.Time
}

// ApproveApplicationInput represents the admin approval decision
type ApproveApplicationInput struct {
	ApprovedAmount interface{} `json:"approvedAmount"`
	ApprovedTenure interface{} `json:"approvedTenure"`
	ReviewNotes    string      `json:"reviewNotes"`
}

// RejectApplicationInput represents the rejection decision
type RejectApplicationInput struct {
	RejectReason string `json:"rejectReason"`
}

// StaffReviewInput represents the first-tier staff review decision
type StaffReviewInput struct {
	ReviewNotes string `json:"reviewNotes"`
}
