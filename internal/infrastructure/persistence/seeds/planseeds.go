package seeds

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"subtrack/internal/infrastructure/persistence/models"
)

// SeedPlans seeds the plans table with the default catalog. Existing plans
// are matched by name and left untouched, so re-running is safe.
func SeedPlans(db *gorm.DB) error {
	plans := []models.PlanModel{
		{
			Name:         "Basic",
			Price:        999,
			DurationDays: 30,
			Features:     datatypes.JSON(`["Email support", "Single project", "Community access"]`),
		},
		{
			Name:         "Professional",
			Price:        1999,
			DurationDays: 30,
			Features:     datatypes.JSON(`["Priority support", "Unlimited projects", "Advanced analytics"]`),
		},
		{
			Name:         "Enterprise",
			Price:        4999,
			DurationDays: 30,
			Features:     datatypes.JSON(`["Dedicated support", "Unlimited projects", "Advanced analytics", "Custom integrations", "SLA guarantee"]`),
		},
	}

	for _, plan := range plans {
		if err := db.Where("name = ?", plan.Name).FirstOrCreate(&plan).Error; err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", plan.Name, err)
		}
	}

	return nil
}
