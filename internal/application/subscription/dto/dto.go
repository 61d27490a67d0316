package dto

import "time"

type SubscriptionDTO struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	PlanID    uint      `json:"plan_id"`
	Plan      *PlanDTO  `json:"plan,omitempty"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlanDTO struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Price        uint64   `json:"price"` // Smallest currency unit (cents)
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
}
