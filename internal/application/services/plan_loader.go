package services

import (
	"context"
	"errors"

	"github.com/sourcegraph/conc/pool"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

// planRecords is everything the analyzers need for one care plan
type planRecords struct {
	plan  *entities.CarePlan
	steps []*entities.CareStep
	deps  []*entities.Dependency
}

// planLoader fetches a plan's collections concurrently and validates them
type planLoader struct {
	plans repositories.CarePlanRepository
	steps repositories.CareStepRepository
	deps  repositories.DependencyRepository
}

func (l planLoader) load(ctx context.Context, planID string) (*planRecords, error) {
	if planID == "" {
		return nil, apperrors.NewValidationError("care plan ID is required")
	}

	var rec planRecords
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		plan, err := l.plans.GetByID(ctx, planID)
		rec.plan = plan
		return err
	})
	p.Go(func(ctx context.Context) error {
		steps, err := l.steps.ListByCarePlan(ctx, planID)
		rec.steps = steps
		return err
	})
	p.Go(func(ctx context.Context) error {
		deps, err := l.deps.ListByCarePlan(ctx, planID)
		rec.deps = deps
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	if err := rec.validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// validate rejects malformed records before any analyzer sees them
func (r *planRecords) validate() error {
	if r.plan == nil {
		return apperrors.NewNotFoundError("care plan not found")
	}
	var errs []error
	if err := r.plan.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, s := range r.steps {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.plan.CheckStepRange(s); err != nil {
			errs = append(errs, err)
		}
	}
	for _, d := range r.deps {
		if err := d.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return apperrors.NewValidationError(errors.Join(errs...).Error())
	}
	return nil
}

func stepIDs(steps []*entities.CareStep) []string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return ids
}
