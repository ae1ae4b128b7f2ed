package repositories

import (
	"context"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// CareStepRepository defines the interface for care step data operations
type CareStepRepository interface {
	// Create stores a new care step
	Create(ctx context.Context, step *entities.CareStep) error

	// GetByID retrieves a care step by ID. A missing step is a NotFound error.
	GetByID(ctx context.Context, id string) (*entities.CareStep, error)

	// GetByIDs retrieves the steps that exist among ids, in no particular order
	GetByIDs(ctx context.Context, ids []string) ([]*entities.CareStep, error)

	// ListByCarePlan retrieves a plan's steps ordered by start day
	ListByCarePlan(ctx context.Context, carePlanID string) ([]*entities.CareStep, error)
}
