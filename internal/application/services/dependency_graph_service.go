package services

import (
	"context"

	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
)

// DependencyGraphService renders a care plan's dependencies for display
type DependencyGraphService struct {
	loader planLoader
}

// NewDependencyGraphService creates a new dependency graph service
func NewDependencyGraphService(
	planRepo repositories.CarePlanRepository,
	stepRepo repositories.CareStepRepository,
	depRepo repositories.DependencyRepository,
) *DependencyGraphService {
	return &DependencyGraphService{
		loader: planLoader{plans: planRepo, steps: stepRepo, deps: depRepo},
	}
}

// BuildGraph returns the plan's nodes and its edges drawn prerequisite to dependent
func (s *DependencyGraphService) BuildGraph(ctx context.Context, planID string) (*entities.DependencyGraph, error) {
	rec, err := s.loader.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	return analysis.BuildDisplayGraph(rec.plan.ID, rec.steps, rec.deps), nil
}
