package subscription

import (
	"fmt"
	"time"

	vo "subtrack/internal/domain/subscription/valueobjects"
)

// Subscription represents the subscription aggregate root.
// Invariant: a user holds at most one active subscription at a time; the
// application layer checks this inside the creating transaction and the
// persistence layer backs it with a unique constraint.
type Subscription struct {
	id        uint
	userID    uint
	planID    uint
	status    vo.SubscriptionStatus
	startDate time.Time
	endDate   time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewSubscription creates a new active subscription covering [startDate, endDate).
func NewSubscription(userID, planID uint, startDate, endDate time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	now := time.Now().UTC()
	return &Subscription{
		userID:    userID,
		planID:    planID,
		status:    vo.StatusActive,
		startDate: startDate,
		endDate:   endDate,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence.
func ReconstructSubscription(
	id, userID, planID uint,
	status vo.SubscriptionStatus,
	startDate, endDate time.Time,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	return &Subscription{
		id:        id,
		userID:    userID,
		planID:    planID,
		status:    status,
		startDate: startDate,
		endDate:   endDate,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the subscription ID
func (s *Subscription) ID() uint {
	return s.id
}

// UserID returns the owning user ID
func (s *Subscription) UserID() uint {
	return s.userID
}

// PlanID returns the plan ID
func (s *Subscription) PlanID() uint {
	return s.planID
}

// Status returns the subscription status
func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

// StartDate returns the subscription start date
func (s *Subscription) StartDate() time.Time {
	return s.startDate
}

// EndDate returns the subscription end date
func (s *Subscription) EndDate() time.Time {
	return s.endDate
}

// CreatedAt returns when the subscription was created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the subscription was last updated
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// IsActive reports whether the subscription is in the active state.
func (s *Subscription) IsActive() bool {
	return s.status == vo.StatusActive
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// ChangePlan re-plans an active subscription. The end date is recomputed by
// the caller from the original start date, never from the change time.
func (s *Subscription) ChangePlan(planID uint, endDate time.Time) error {
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	if s.status != vo.StatusActive {
		return fmt.Errorf("cannot change plan of subscription with status %s: %w", s.status, ErrInvalidStatusTransition)
	}
	if !endDate.After(s.startDate) {
		return fmt.Errorf("end date must be after start date")
	}

	s.planID = planID
	s.endDate = endDate
	s.updatedAt = time.Now().UTC()
	return nil
}

// Cancel terminates an active subscription.
func (s *Subscription) Cancel() error {
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return ErrInvalidTransition(s.status.String(), vo.StatusCancelled.String())
	}

	s.status = vo.StatusCancelled
	s.updatedAt = time.Now().UTC()
	return nil
}

// MarkAsExpired transitions an active subscription to expired. Invoked only
// by the expiration sweep.
func (s *Subscription) MarkAsExpired() error {
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return ErrInvalidTransition(s.status.String(), vo.StatusExpired.String())
	}

	s.status = vo.StatusExpired
	s.updatedAt = time.Now().UTC()
	return nil
}
