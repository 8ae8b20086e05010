package models

// Counter backs sequence allocation. Each named counter holds the last value
// handed out; rows are read under a row-level lock so two allocations never
// see the same value.
type Counter struct {
	Name  string `gorm:"type:varchar(50);primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}
