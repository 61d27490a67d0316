package mappers

import (
	"subtrack/internal/domain/subscription"
	vo "subtrack/internal/domain/subscription/valueobjects"
	"subtrack/internal/infrastructure/persistence/models"
)

// SubscriptionMapper handles the conversion between domain entities and persistence models
type SubscriptionMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type subscriptionMapper struct{}

// NewSubscriptionMapper creates a new subscription mapper
func NewSubscriptionMapper() SubscriptionMapper {
	return &subscriptionMapper{}
}

// ToEntity converts a persistence model to a domain entity
func (m *subscriptionMapper) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	return subscription.ReconstructSubscription(
		model.ID,
		model.UserID,
		model.PlanID,
		vo.SubscriptionStatus(model.Status),
		model.StartDate.UTC(),
		model.EndDate.UTC(),
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// ToModel converts a domain entity to a persistence model. The active-user
// mirror column is populated only for active rows so the unique index holds
// the one-active-per-user invariant.
func (m *subscriptionMapper) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.SubscriptionModel{
		ID:        entity.ID(),
		UserID:    entity.UserID(),
		PlanID:    entity.PlanID(),
		Status:    entity.Status().String(),
		StartDate: entity.StartDate().UTC(),
		EndDate:   entity.EndDate().UTC(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}

	if entity.IsActive() {
		userID := entity.UserID()
		model.ActiveUserID = &userID
	}

	return model, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *subscriptionMapper) ToEntities(subscriptionModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subscriptionModels))
	for _, model := range subscriptionModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
