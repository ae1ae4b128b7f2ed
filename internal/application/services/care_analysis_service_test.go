package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/application/services"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

type analysisMocks struct {
	plans *MockCarePlanRepository
	steps *MockCareStepRepository
	deps  *MockDependencyRepository
	risk  *MockRiskMetadataRepository
}

func newAnalysisService(weights analysis.Weights) (*services.CareAnalysisService, analysisMocks) {
	m := analysisMocks{
		plans: new(MockCarePlanRepository),
		steps: new(MockCareStepRepository),
		deps:  new(MockDependencyRepository),
		risk:  new(MockRiskMetadataRepository),
	}
	svc := services.NewCareAnalysisService(m.plans, m.steps, m.deps, m.risk, analysis.NewScorer(weights), 90, nil)
	return svc, m
}

// threeStepPlan: a on days 1-3, b on 2-5, c on day 4; a depends on b depends on c
func (m analysisMocks) expectThreeStepPlan() {
	m.plans.On("GetByID", mock.Anything, "plan-knee").Return(kneePlan(), nil)
	m.steps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.CareStep{
		careStep("a", 1, 3), careStep("b", 2, 5), careStep("c", 4, 4),
	}, nil)
	m.deps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.Dependency{
		dependsOn("d1", "a", "b"), dependsOn("d2", "b", "c"),
	}, nil)
}

func TestCareAnalysisService_GetComplexity(t *testing.T) {
	t.Run("scores the loaded plan", func(t *testing.T) {
		svc, m := newAnalysisService(analysis.FourFactorWeights)
		m.expectThreeStepPlan()

		result, err := svc.GetComplexity(context.Background(), "plan-knee")

		require.NoError(t, err)
		// 3/20*25 + 2/5*30 + 2/10*25 + 0
		assert.Equal(t, 21, result.OverallScore)
		assert.Equal(t, entities.ComplexityLow, result.Level)
		assert.Equal(t, 3, result.Factors.StepCount)
		assert.Equal(t, 2, result.Factors.DependencyDepth)
		assert.Equal(t, 2, result.Factors.ConcurrentActivities)
		assert.Equal(t, "four_factor", svc.Weighting())
	})

	t.Run("plan not found", func(t *testing.T) {
		svc, m := newAnalysisService(analysis.FourFactorWeights)
		m.plans.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("care plan missing not found"))
		m.steps.On("ListByCarePlan", mock.Anything, "missing").Return([]*entities.CareStep{}, nil).Maybe()
		m.deps.On("ListByCarePlan", mock.Anything, "missing").Return([]*entities.Dependency{}, nil).Maybe()

		_, err := svc.GetComplexity(context.Background(), "missing")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("store failure is surfaced", func(t *testing.T) {
		svc, m := newAnalysisService(analysis.FourFactorWeights)
		m.plans.On("GetByID", mock.Anything, "plan-knee").Return(kneePlan(), nil).Maybe()
		m.steps.On("ListByCarePlan", mock.Anything, "plan-knee").
			Return(nil, apperrors.NewExternalError("failed to list care steps", errors.New("connection refused")))
		m.deps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.Dependency{}, nil).Maybe()

		_, err := svc.GetComplexity(context.Background(), "plan-knee")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	})

	t.Run("invalid step timing is rejected before analysis", func(t *testing.T) {
		svc, m := newAnalysisService(analysis.FourFactorWeights)
		m.plans.On("GetByID", mock.Anything, "plan-knee").Return(kneePlan(), nil)
		m.steps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.CareStep{careStep("bad", 5, 2)}, nil)
		m.deps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.Dependency{}, nil)

		_, err := svc.GetComplexity(context.Background(), "plan-knee")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "endDay 2 is before startDay 5")
	})

	t.Run("step scheduled past the plan end is rejected", func(t *testing.T) {
		svc, m := newAnalysisService(analysis.FourFactorWeights)
		m.plans.On("GetByID", mock.Anything, "plan-knee").Return(kneePlan(), nil)
		m.steps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.CareStep{careStep("long", 1, 6)}, nil)
		m.deps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.Dependency{}, nil)

		_, err := svc.GetComplexity(context.Background(), "plan-knee")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Contains(t, err.Error(), "endDay 6 is after the plan's last day 5")
	})

	t.Run("empty plan id", func(t *testing.T) {
		svc, _ := newAnalysisService(analysis.FourFactorWeights)

		_, err := svc.GetComplexity(context.Background(), "")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("zero steps is not an error", func(t *testing.T) {
		svc, m := newAnalysisService(analysis.ThreeFactorWeights)
		m.plans.On("GetByID", mock.Anything, "plan-knee").Return(kneePlan(), nil)
		m.steps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.CareStep{}, nil)
		m.deps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.Dependency{}, nil)

		result, err := svc.GetComplexity(context.Background(), "plan-knee")

		require.NoError(t, err)
		assert.Equal(t, 0, result.OverallScore)
		assert.Equal(t, entities.ComplexityLow, result.Level)
		assert.Len(t, result.Recommendations, 1)
	})
}

func TestCareAnalysisService_GetTimeline(t *testing.T) {
	svc, m := newAnalysisService(analysis.FourFactorWeights)
	m.expectThreeStepPlan()

	timeline, err := svc.GetTimeline(context.Background(), "plan-knee")

	require.NoError(t, err)
	require.Len(t, timeline, 5)
	counts := make([]int, len(timeline))
	for i, day := range timeline {
		assert.Equal(t, i+1, day.Day)
		counts[i] = day.StepCount
	}
	assert.Equal(t, []int{1, 2, 2, 2, 1}, counts)
}

func TestCareAnalysisService_GetJourney(t *testing.T) {
	svc, m := newAnalysisService(analysis.FourFactorWeights)
	m.expectThreeStepPlan()
	m.risk.On("ListByStepIDs", mock.Anything, []string{"a", "b", "c"}).Return([]*entities.RiskMetadata{
		{ID: "r1", StepID: "a", RiskType: "safety_concern", ImpactFactors: entities.ImpactFactors{AdherenceImportance: 8}},
	}, nil)

	journey, err := svc.GetJourney(context.Background(), "plan-knee")

	require.NoError(t, err)
	assert.Equal(t, "plan-knee", journey.CarePlan.ID)
	assert.Len(t, journey.Steps, 3)
	assert.Len(t, journey.Dependencies, 2)
	assert.Len(t, journey.RiskData, 1)
	assert.Len(t, journey.Timeline, 5)
	require.NotNil(t, journey.ComplexityAnalysis)
	assert.Equal(t, 21, journey.ComplexityAnalysis.OverallScore)
	assert.Equal(t, entities.JourneyMetadata{TotalSteps: 3, TotalDependencies: 2}, journey.Metadata)
}

func TestCareAnalysisService_GetJourney_NoStepsSkipsRiskLookup(t *testing.T) {
	svc, m := newAnalysisService(analysis.FourFactorWeights)
	m.plans.On("GetByID", mock.Anything, "plan-knee").Return(kneePlan(), nil)
	m.steps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.CareStep{}, nil)
	m.deps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.Dependency{}, nil)

	journey, err := svc.GetJourney(context.Background(), "plan-knee")

	require.NoError(t, err)
	assert.NotNil(t, journey.RiskData)
	assert.Empty(t, journey.RiskData)
	assert.Equal(t, 0, journey.Metadata.AverageComplexity)
	m.risk.AssertNotCalled(t, "ListByStepIDs", mock.Anything, mock.Anything)
}

func TestDependencyGraphService_BuildGraph(t *testing.T) {
	plans, steps, deps := new(MockCarePlanRepository), new(MockCareStepRepository), new(MockDependencyRepository)
	plans.On("GetByID", mock.Anything, "plan-knee").Return(kneePlan(), nil)
	steps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.CareStep{careStep("a", 1, 2), careStep("b", 1, 2)}, nil)
	deps.On("ListByCarePlan", mock.Anything, "plan-knee").Return([]*entities.Dependency{dependsOn("d1", "a", "b")}, nil)

	graph, err := services.NewDependencyGraphService(plans, steps, deps).BuildGraph(context.Background(), "plan-knee")

	require.NoError(t, err)
	assert.Equal(t, "plan-knee", graph.CarePlanID)
	assert.Len(t, graph.Nodes, 2)
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, "b", graph.Edges[0].Source)
	assert.Equal(t, "a", graph.Edges[0].Target)
}
