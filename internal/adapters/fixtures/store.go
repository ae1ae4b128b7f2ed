package fixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

// Store is an in-memory record store backed by a bundle
type Store struct {
	mu    sync.RWMutex
	plans map[string]*entities.CarePlan
	steps map[string]*entities.CareStep
	deps  []*entities.Dependency
	risk  map[string]*entities.RiskMetadata
}

// NewStore validates the bundle and indexes it
func NewStore(bundle *Bundle) (*Store, error) {
	if err := bundle.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	s := &Store{
		plans: make(map[string]*entities.CarePlan, len(bundle.CarePlans)),
		steps: make(map[string]*entities.CareStep, len(bundle.Steps)),
		deps:  append([]*entities.Dependency(nil), bundle.Dependencies...),
		risk:  make(map[string]*entities.RiskMetadata, len(bundle.RiskMetadata)),
	}
	for _, p := range bundle.CarePlans {
		s.plans[p.ID] = p
	}
	for _, st := range bundle.Steps {
		s.steps[st.ID] = st
	}
	for _, m := range bundle.RiskMetadata {
		s.risk[m.StepID] = m
	}
	return s, nil
}

// CarePlans returns the store's CarePlanRepository
func (s *Store) CarePlans() repositories.CarePlanRepository { return (*carePlanStore)(s) }

// CareSteps returns the store's CareStepRepository
func (s *Store) CareSteps() repositories.CareStepRepository { return (*careStepStore)(s) }

// Dependencies returns the store's DependencyRepository
func (s *Store) Dependencies() repositories.DependencyRepository { return (*dependencyStore)(s) }

// RiskMetadata returns the store's RiskMetadataRepository
func (s *Store) RiskMetadata() repositories.RiskMetadataRepository { return (*riskStore)(s) }

type carePlanStore Store

func (r *carePlanStore) Create(_ context.Context, plan *entities.CarePlan) error {
	if err := plan.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = plan
	return nil
}

func (r *carePlanStore) GetByID(_ context.Context, id string) (*entities.CarePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.plans[id]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("care plan %s not found", id))
}

func (r *carePlanStore) List(_ context.Context) ([]*entities.CarePlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plans := make([]*entities.CarePlan, 0, len(r.plans))
	for _, p := range r.plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Name < plans[j].Name })
	return plans, nil
}

type careStepStore Store

func (r *careStepStore) Create(_ context.Context, step *entities.CareStep) error {
	if err := step.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[step.ID] = step
	return nil
}

func (r *careStepStore) GetByID(_ context.Context, id string) (*entities.CareStep, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if st, ok := r.steps[id]; ok {
		return st, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("care step %s not found", id))
}

func (r *careStepStore) GetByIDs(_ context.Context, ids []string) ([]*entities.CareStep, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	steps := make([]*entities.CareStep, 0, len(ids))
	for _, id := range ids {
		if st, ok := r.steps[id]; ok {
			steps = append(steps, st)
		}
	}
	return steps, nil
}

func (r *careStepStore) ListByCarePlan(_ context.Context, carePlanID string) ([]*entities.CareStep, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	steps := make([]*entities.CareStep, 0)
	for _, st := range r.steps {
		if st.CarePlanID == carePlanID {
			steps = append(steps, st)
		}
	}
	sort.Slice(steps, func(i, j int) bool {
		if steps[i].Timing.StartDay != steps[j].Timing.StartDay {
			return steps[i].Timing.StartDay < steps[j].Timing.StartDay
		}
		return steps[i].ID < steps[j].ID
	})
	return steps, nil
}

type dependencyStore Store

func (r *dependencyStore) Create(_ context.Context, dep *entities.Dependency) error {
	if err := dep.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deps = append(r.deps, dep)
	return nil
}

func (r *dependencyStore) ListByCarePlan(_ context.Context, carePlanID string) ([]*entities.Dependency, error) {
	return r.filter(func(d *entities.Dependency) bool { return d.CarePlanID == carePlanID }), nil
}

func (r *dependencyStore) ListByStep(_ context.Context, stepID string) ([]*entities.Dependency, error) {
	return r.filter(func(d *entities.Dependency) bool {
		return d.SourceStepID == stepID || d.TargetStepID == stepID
	}), nil
}

func (r *dependencyStore) filter(keep func(*entities.Dependency) bool) []*entities.Dependency {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Dependency, 0)
	for _, d := range r.deps {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

type riskStore Store

func (r *riskStore) Create(_ context.Context, meta *entities.RiskMetadata) error {
	if err := meta.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.risk[meta.StepID] = meta
	return nil
}

func (r *riskStore) GetByStepID(_ context.Context, stepID string) (*entities.RiskMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.risk[stepID], nil
}

func (r *riskStore) ListByStepIDs(_ context.Context, stepIDs []string) ([]*entities.RiskMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.RiskMetadata, 0, len(stepIDs))
	for _, id := range stepIDs {
		if m, ok := r.risk[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
