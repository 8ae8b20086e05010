package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerCode      string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	FullName          string    `gorm:"type:varchar(255);not null"`
	NICNumber         *string   `gorm:"type:varchar(20)"`
	Mobile            *string   `gorm:"type:varchar(50)"`
	Address           *string   `gorm:"type:text"`
	BusinessType      *string   `gorm:"type:varchar(100)"`
	Status            string    `gorm:"type:varchar(20);not null"`
	LeadStatus        string    `gorm:"type:varchar(20);not null"`
	KYCStatus         string    `gorm:"type:varchar(20);not null;index"`
	EligibilityStatus string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt         time.Time

	User User `gorm:"foreignKey:UserID"`
}
