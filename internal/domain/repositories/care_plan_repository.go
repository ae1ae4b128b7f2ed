package repositories

import (
	"context"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// CarePlanRepository defines the interface for care plan data operations
type CarePlanRepository interface {
	// Create stores a new care plan
	Create(ctx context.Context, plan *entities.CarePlan) error

	// GetByID retrieves a care plan by ID. A missing plan is a NotFound error.
	GetByID(ctx context.Context, id string) (*entities.CarePlan, error)

	// List retrieves all care plans ordered by name
	List(ctx context.Context) ([]*entities.CarePlan, error)
}
