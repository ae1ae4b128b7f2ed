package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

type MockCarePlanRepository struct {
	mock.Mock
}

func (m *MockCarePlanRepository) Create(ctx context.Context, plan *entities.CarePlan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockCarePlanRepository) GetByID(ctx context.Context, id string) (*entities.CarePlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CarePlan), args.Error(1)
}

func (m *MockCarePlanRepository) List(ctx context.Context) ([]*entities.CarePlan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.CarePlan), args.Error(1)
}

type MockCareStepRepository struct {
	mock.Mock
}

func (m *MockCareStepRepository) Create(ctx context.Context, step *entities.CareStep) error {
	return m.Called(ctx, step).Error(0)
}

func (m *MockCareStepRepository) GetByID(ctx context.Context, id string) (*entities.CareStep, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CareStep), args.Error(1)
}

func (m *MockCareStepRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.CareStep, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CareStep), args.Error(1)
}

func (m *MockCareStepRepository) ListByCarePlan(ctx context.Context, carePlanID string) ([]*entities.CareStep, error) {
	args := m.Called(ctx, carePlanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CareStep), args.Error(1)
}

type MockDependencyRepository struct {
	mock.Mock
}

func (m *MockDependencyRepository) Create(ctx context.Context, dep *entities.Dependency) error {
	return m.Called(ctx, dep).Error(0)
}

func (m *MockDependencyRepository) ListByCarePlan(ctx context.Context, carePlanID string) ([]*entities.Dependency, error) {
	args := m.Called(ctx, carePlanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Dependency), args.Error(1)
}

func (m *MockDependencyRepository) ListByStep(ctx context.Context, stepID string) ([]*entities.Dependency, error) {
	args := m.Called(ctx, stepID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Dependency), args.Error(1)
}

type MockRiskMetadataRepository struct {
	mock.Mock
}

func (m *MockRiskMetadataRepository) Create(ctx context.Context, meta *entities.RiskMetadata) error {
	return m.Called(ctx, meta).Error(0)
}

func (m *MockRiskMetadataRepository) GetByStepID(ctx context.Context, stepID string) (*entities.RiskMetadata, error) {
	args := m.Called(ctx, stepID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RiskMetadata), args.Error(1)
}

func (m *MockRiskMetadataRepository) ListByStepIDs(ctx context.Context, stepIDs []string) ([]*entities.RiskMetadata, error) {
	args := m.Called(ctx, stepIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RiskMetadata), args.Error(1)
}

type MockTextGenerationProvider struct {
	mock.Mock
}

func (m *MockTextGenerationProvider) Explain(ctx context.Context, stepDescription, medicalContext, literacyLevel string) (string, error) {
	args := m.Called(ctx, stepDescription, medicalContext, literacyLevel)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerationProvider) Simplify(ctx context.Context, text, literacyLevel string) (string, error) {
	args := m.Called(ctx, text, literacyLevel)
	return args.String(0), args.Error(1)
}

// Fixtures

func kneePlan() *entities.CarePlan {
	return &entities.CarePlan{ID: "plan-knee", Name: "Knee Recovery", DurationDays: 5}
}

func careStep(id string, start, end int) *entities.CareStep {
	return &entities.CareStep{
		ID:          id,
		CarePlanID:  "plan-knee",
		Description: "step " + id,
		Category:    entities.CategoryExercise,
		RiskLevel:   entities.RiskLow,
		Timing: entities.StepTiming{
			Frequency: "once daily",
			StartDay:  start,
			EndDay:    end,
		},
	}
}

func dependsOn(id, source, target string) *entities.Dependency {
	return &entities.Dependency{
		ID:           id,
		CarePlanID:   "plan-knee",
		SourceStepID: source,
		TargetStepID: target,
		Type:         entities.DependencyPrerequisite,
		Criticality:  entities.CriticalityRequired,
	}
}
