package models

import "time"

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database.
//
// ActiveUserID mirrors UserID while the row is active and is NULL otherwise.
// The unique index on it enforces at most one active subscription per user at
// the database level; MySQL permits any number of NULLs in a unique index, so
// terminal rows never collide.
type SubscriptionModel struct {
	ID           uint      `gorm:"primarykey"`
	UserID       uint      `gorm:"not null;index:idx_user_subscription"`
	PlanID       uint      `gorm:"not null;index:idx_plan_subscription"`
	Status       string    `gorm:"not null;size:20;index:idx_status"`
	ActiveUserID *uint     `gorm:"uniqueIndex:idx_active_user"`
	StartDate    time.Time `gorm:"not null"`
	EndDate      time.Time `gorm:"not null;index:idx_end_date"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
