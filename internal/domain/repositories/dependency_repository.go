package repositories

import (
	"context"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// DependencyRepository defines the interface for dependency edge data operations
type DependencyRepository interface {
	// Create stores a new dependency
	Create(ctx context.Context, dep *entities.Dependency) error

	// ListByCarePlan retrieves every dependency of a plan
	ListByCarePlan(ctx context.Context, carePlanID string) ([]*entities.Dependency, error)

	// ListByStep retrieves the dependencies whose source or target is the step
	ListByStep(ctx context.Context, stepID string) ([]*entities.Dependency, error)
}
