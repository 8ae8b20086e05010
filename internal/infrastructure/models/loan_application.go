package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoanApplication struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ApplicationNumber string           `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	LoanType          string           `gorm:"type:varchar(30);not null;index"`
	Status            string           `gorm:"type:varchar(20);not null;index"`
	AppliedAmount     decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	TenureMonths      int              `gorm:"not null"`
	InterestRate      *decimal.Decimal `gorm:"type:numeric(6,2)"`
	ApprovedAmount    *decimal.Decimal `gorm:"type:numeric(14,2)"`
	ApprovedTenure    *int
	ReviewNotes       *string `gorm:"type:text"`
	RejectReason      *string `gorm:"type:text"`
	FullName          *string `gorm:"type:varchar(255)"`
	NICNumber         *string `gorm:"type:varchar(20)"`
	MobileNumber      *string `gorm:"type:varchar(50)"`
	Email             *string `gorm:"type:varchar(255)"`
	AddressLine1      *string `gorm:"type:varchar(255)"`
	AddressLine2      *string `gorm:"type:varchar(255)"`
	City              *string `gorm:"type:varchar(100)"`
	District          *string `gorm:"type:varchar(100)"`
	Province          *string `gorm:"type:varchar(100)"`
	DateOfBirth       *time.Time
	MonthlyIncome     *decimal.Decimal `gorm:"type:numeric(14,2)"`
	MonthlyExpenses   *decimal.Decimal `gorm:"type:numeric(14,2)"`
	HasExistingLoans  bool             `gorm:"not null;default:false"`
	ExistingLoanInfo  *string          `gorm:"type:text"`
	ExtraData         string           `gorm:"type:jsonb;default:'{}'"`
	SubmittedAt       *time.Time
	StaffApprovedAt   *time.Time
	StaffApprovedByID *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt        *time.Time
	CreatedByID       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Customer  Customer                  `gorm:"foreignKey:CustomerID"`
	Documents []LoanApplicationDocument `gorm:"foreignKey:LoanApplicationID"`
}

type LoanApplicationDocument struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoanApplicationID uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentType      string    `gorm:"type:varchar(30);not null"`
	FilePath          string    `gorm:"type:varchar(512);not null"`
	UploadedAt        time.Time
}
