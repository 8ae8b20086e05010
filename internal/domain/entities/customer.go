package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// KYCStatus represents a customer's identity verification stage
type KYCStatus string

const (
	KYCStatusPending     KYCStatus = "PENDING"
	KYCStatusUploaded    KYCStatus = "UPLOADED"
	KYCStatusUnderReview KYCStatus = "UNDER_REVIEW"
	KYCStatusApproved    KYCStatus = "APPROVED"
	KYCStatusRejected    KYCStatus = "REJECTED"
	KYCStatusSubmitted   KYCStatus = "SUBMITTED"
)

// EligibilityStatus represents a customer's loan eligibility decision
type EligibilityStatus string

const (
	EligibilityUnknown     EligibilityStatus = "UNKNOWN"
	EligibilityEligible    EligibilityStatus = "ELIGIBLE"
	EligibilityNotEligible EligibilityStatus = "NOT_ELIGIBLE"
)

// Customer represents an onboarded borrower profile linked to a login
// identity. Customers are never deleted; lifecycle is carried by statuses.
type Customer struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"userId"`
	CustomerCode      string            `json:"customerCode"`
	FullName          string            `json:"fullName"`
	NICNumber         null.String       `json:"nicNumber,omitempty"`
	Mobile            null.String       `json:"mobile,omitempty"`
	Address           null.String       `json:"address,omitempty"`
	BusinessType      null.String       `json:"businessType,omitempty"`
	Status            string            `json:"status"`
	LeadStatus        LeadStatus        `json:"leadStatus"`
	KYCStatus         KYCStatus         `json:"kycStatus"`
	EligibilityStatus EligibilityStatus `json:"eligibilityStatus"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// CustomerFilter narrows customer listings.
type CustomerFilter struct {
	KYCStatus         string
	EligibilityStatus string
}

// CreateCustomerInput represents input for direct admin customer creation
type CreateCustomerInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"fullName" binding:"required"`
	NICNumber    string `json:"nicNumber"`
	Mobile       string `json:"mobile"`
	Address      string `json:"address"`
	BusinessType string `json:"businessType"`
}
