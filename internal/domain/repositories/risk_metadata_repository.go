package repositories

import (
	"context"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// RiskMetadataRepository defines the interface for risk metadata data operations
type RiskMetadataRepository interface {
	// Create stores risk metadata for a step
	Create(ctx context.Context, meta *entities.RiskMetadata) error

	// GetByStepID retrieves a step's risk metadata. Returns nil, nil when the
	// step has none.
	GetByStepID(ctx context.Context, stepID string) (*entities.RiskMetadata, error)

	// ListByStepIDs retrieves the risk metadata present for the given steps
	ListByStepIDs(ctx context.Context, stepIDs []string) ([]*entities.RiskMetadata, error)
}
