package fixtures

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
)

// Target is the set of repositories a bundle is written into
type Target struct {
	Plans        repositories.CarePlanRepository
	Steps        repositories.CareStepRepository
	Dependencies repositories.DependencyRepository
	RiskMetadata repositories.RiskMetadataRepository
}

// SeedSummary counts the records written by Seed
type SeedSummary struct {
	CarePlans    int `json:"carePlans"`
	CareSteps    int `json:"careSteps"`
	Dependencies int `json:"dependencies"`
	RiskMetadata int `json:"riskMetadata"`
}

// Seed validates the bundle and writes it parents first, so foreign keys
// hold at every insert. Risk metadata without an id gets a generated one.
func Seed(ctx context.Context, bundle *Bundle, target Target) (*SeedSummary, error) {
	for _, m := range bundle.RiskMetadata {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bundle: %w", err)
	}

	summary := &SeedSummary{}
	for _, p := range bundle.CarePlans {
		if err := target.Plans.Create(ctx, p); err != nil {
			return summary, fmt.Errorf("create care plan %s: %w", p.ID, err)
		}
		summary.CarePlans++
	}
	for _, s := range bundle.Steps {
		if err := target.Steps.Create(ctx, s); err != nil {
			return summary, fmt.Errorf("create care step %s: %w", s.ID, err)
		}
		summary.CareSteps++
	}
	for _, d := range bundle.Dependencies {
		if err := target.Dependencies.Create(ctx, d); err != nil {
			return summary, fmt.Errorf("create dependency %s: %w", d.ID, err)
		}
		summary.Dependencies++
	}
	for _, m := range bundle.RiskMetadata {
		if err := target.RiskMetadata.Create(ctx, m); err != nil {
			return summary, fmt.Errorf("create risk metadata for step %s: %w", m.StepID, err)
		}
		summary.RiskMetadata++
	}
	return summary, nil
}
