// Package subscription provides a Go SDK for the Subtrack subscription API.
package subscription

import "time"

// Subscription represents a user's subscription as returned by the API.
type Subscription struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	PlanID    uint      `json:"plan_id"`
	Plan      *Plan     `json:"plan,omitempty"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Plan represents a purchasable subscription tier.
type Plan struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Price        uint64   `json:"price"` // smallest currency unit
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
}

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
