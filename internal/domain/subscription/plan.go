package subscription

import (
	"fmt"
	"time"
)

// Plan is immutable reference data describing a purchasable subscription
// tier. The engine only ever reads plans; catalog management lives elsewhere.
type Plan struct {
	id           uint
	name         string
	price        uint64 // minor currency units
	durationDays int
	features     []string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPlan creates a plan.
func NewPlan(name string, price uint64, durationDays int, features []string) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("plan duration must be a positive number of days")
	}

	now := time.Now().UTC()
	return &Plan{
		name:         name,
		price:        price,
		durationDays: durationDays,
		features:     features,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence.
func ReconstructPlan(
	id uint,
	name string,
	price uint64,
	durationDays int,
	features []string,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("plan duration must be a positive number of days")
	}

	return &Plan{
		id:           id,
		name:         name,
		price:        price,
		durationDays: durationDays,
		features:     features,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// ID returns the plan ID
func (p *Plan) ID() uint {
	return p.id
}

// Name returns the plan name
func (p *Plan) Name() string {
	return p.name
}

// Price returns the plan price in minor currency units
func (p *Plan) Price() uint64 {
	return p.price
}

// DurationDays returns the plan duration in whole days
func (p *Plan) DurationDays() int {
	return p.durationDays
}

// Features returns the plan feature list
func (p *Plan) Features() []string {
	return p.features
}

// CreatedAt returns when the plan was created
func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the plan was last updated
func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the plan ID (only for persistence layer use)
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

// ExpiryFrom computes the end date of a subscription to this plan starting at
// the given time: start plus the plan duration in calendar days.
func (p *Plan) ExpiryFrom(start time.Time) time.Time {
	return start.AddDate(0, 0, p.durationDays)
}
