package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Loan struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LoanNumber       string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	PrincipalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	InterestRate     decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	TotalDays        int             `gorm:"not null"`
	DailyInstallment decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPayable     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	StartDate        time.Time       `gorm:"type:date;not null"`
	EndDate          time.Time       `gorm:"type:date;not null"`
	Status           string          `gorm:"type:varchar(20);not null;index"`
	CreatedByID      uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt        time.Time

	Customer Customer  `gorm:"foreignKey:CustomerID"`
	Payments []Payment `gorm:"foreignKey:LoanID"`
}

type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LoanID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CollectionDate  time.Time       `gorm:"type:date;not null;index"`
	AmountCollected decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CollectedByID   uuid.UUID       `gorm:"type:uuid;not null"`
	PaymentMethod   string          `gorm:"type:varchar(30);not null"`
	Remarks         *string         `gorm:"type:text"`
	CreatedAt       time.Time
}
