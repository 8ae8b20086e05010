package models

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name             *string    `gorm:"type:varchar(255)"`
	Mobile           string     `gorm:"type:varchar(50);not null;index"`
	LoanTypeInterest *string    `gorm:"type:varchar(50)"`
	Source           *string    `gorm:"type:varchar(100)"`
	Status           string     `gorm:"type:varchar(20);not null;index"`
	CustomerID       *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt        time.Time
}
