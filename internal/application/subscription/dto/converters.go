package dto

import "subtrack/internal/domain/subscription"

// ToPlanDTO converts a Plan aggregate to its presentation form.
func ToPlanDTO(plan *subscription.Plan) *PlanDTO {
	if plan == nil {
		return nil
	}

	return &PlanDTO{
		ID:           plan.ID(),
		Name:         plan.Name(),
		Price:        plan.Price(),
		DurationDays: plan.DurationDays(),
		Features:     plan.Features(),
	}
}

// ToPlanDTOList batch converts plans, skipping nil entries.
func ToPlanDTOList(plans []*subscription.Plan) []*PlanDTO {
	dtos := make([]*PlanDTO, 0, len(plans))
	for _, plan := range plans {
		if plan != nil {
			dtos = append(dtos, ToPlanDTO(plan))
		}
	}
	return dtos
}

// ToSubscriptionDTO converts a Subscription aggregate, optionally embedding
// its plan when the caller has it loaded.
func ToSubscriptionDTO(sub *subscription.Subscription, plan *subscription.Plan) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	return &SubscriptionDTO{
		ID:        sub.ID(),
		UserID:    sub.UserID(),
		PlanID:    sub.PlanID(),
		Plan:      ToPlanDTO(plan),
		Status:    sub.Status().String(),
		StartDate: sub.StartDate(),
		EndDate:   sub.EndDate(),
		IsActive:  sub.IsActive(),
		CreatedAt: sub.CreatedAt(),
		UpdatedAt: sub.UpdatedAt(),
	}
}
