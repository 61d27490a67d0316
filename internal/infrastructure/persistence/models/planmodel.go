package models

import (
	"time"

	"gorm.io/datatypes"
)

// PlanModel represents the database persistence model for subscription plans
// This is the anti-corruption layer between domain and database
type PlanModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"uniqueIndex;not null;size:100"`
	Price        uint64 `gorm:"not null;comment:price in smallest currency unit"`
	DurationDays int    `gorm:"not null;default:30"`
	Features     datatypes.JSON
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}
