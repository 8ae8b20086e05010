package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// LeadStatus represents a sales lead's pipeline status
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "NEW"
	LeadStatusContacted  LeadStatus = "CONTACTED"
	LeadStatusInProgress LeadStatus = "IN_PROGRESS"
	LeadStatusConverted  LeadStatus = "CONVERTED"
	LeadStatusLost       LeadStatus = "LOST"
)

// ValidLeadStatus reports whether s is a known lead status.
func ValidLeadStatus(s string) bool {
	switch LeadStatus(s) {
	case LeadStatusNew, LeadStatusContacted, LeadStatusInProgress, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Lead represents a prospective customer prior to onboarding. A lead converts
// at most once into exactly one customer.
type Lead struct {
	ID               uuid.UUID   `json:"id"`
	Name             null.String `json:"name,omitempty"`
	Mobile           string      `json:"mobile"`
	LoanTypeInterest null.String `json:"loanTypeInterest,omitempty"`
	Source           null.String `json:"source,omitempty"`
	Status           LeadStatus  `json:"status"`
	CustomerID       *uuid.UUID  `json:"customerId,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// CreateLeadInput represents input for lead intake
type CreateLeadInput struct {
	Name             string `json:"name"`
	Mobile           string `json:"mobile" binding:"required"`
	LoanTypeInterest string `json:"loanTypeInterest"`
	Source           string `json:"source"`
}

// ConvertLeadResult bundles the customer a lead resolved to and the updated
// lead record.
type ConvertLeadResult struct {
	Customer         *Customer `json:"customer"`
	Lead             *Lead     `json:"lead"`
	AlreadyConverted bool      `json:"alreadyConverted"`
}
