package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/application/loaders"
	"github.com/zatekoja/careplannavigator/internal/application/services"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

func TestRiskService_GetStepRisk(t *testing.T) {
	t.Run("assesses the step and describes related steps", func(t *testing.T) {
		steps, deps, risk := new(MockCareStepRepository), new(MockDependencyRepository), new(MockRiskMetadataRepository)

		med := careStep("med", 1, 14)
		med.Category = entities.CategoryMedication
		med.RiskLevel = entities.RiskHigh
		med.Timing.TimeOfDay = []string{"morning", "evening"}

		steps.On("GetByID", mock.Anything, "med").Return(med, nil)
		deps.On("ListByStep", mock.Anything, "med").Return([]*entities.Dependency{
			dependsOn("d1", "med", "meal"),
			dependsOn("d2", "med", "ghost"),
		}, nil)
		risk.On("GetByStepID", mock.Anything, "med").Return(nil, nil)
		steps.On("GetByIDs", mock.Anything, []string{"meal", "ghost"}).Return([]*entities.CareStep{
			{ID: "meal", Description: "Eat breakfast"},
		}, nil)

		svc := services.NewRiskService(steps, deps, risk, nil)
		report, err := svc.GetStepRisk(context.Background(), "med")

		require.NoError(t, err)
		assert.Equal(t, "med", report.StepID)
		assert.Equal(t, 90, report.RiskAssessment.ImpactScore)
		assert.Equal(t, 9, report.RiskAssessment.AdherenceImportance)
		assert.Equal(t, analysis.RiskDisclaimer, report.RiskAssessment.Disclaimer)
		require.Len(t, report.RiskAssessment.RelatedSteps, 2)
		assert.Equal(t, "Eat breakfast", report.RiskAssessment.RelatedSteps[0].Description)
		assert.Empty(t, report.RiskAssessment.RelatedSteps[1].Description)
	})

	t.Run("uses request-scoped loaders when present", func(t *testing.T) {
		steps, deps, risk := new(MockCareStepRepository), new(MockDependencyRepository), new(MockRiskMetadataRepository)
		requestSteps := new(MockCareStepRepository)

		steps.On("GetByID", mock.Anything, "walk").Return(careStep("walk", 1, 5), nil)
		deps.On("ListByStep", mock.Anything, "walk").Return([]*entities.Dependency{dependsOn("d1", "stretch", "walk")}, nil)
		risk.On("GetByStepID", mock.Anything, "walk").Return(&entities.RiskMetadata{
			ID: "r1", StepID: "walk", RiskType: "mobility", ImpactFactors: entities.ImpactFactors{AdherenceImportance: 4},
		}, nil)
		requestSteps.On("GetByIDs", mock.Anything, []string{"stretch"}).Return([]*entities.CareStep{
			{ID: "stretch", Description: "Stretch calves"},
		}, nil)

		ctx := loaders.WithLoaders(context.Background(), loaders.NewLoaders(requestSteps))
		report, err := services.NewRiskService(steps, deps, risk, nil).GetStepRisk(ctx, "walk")

		require.NoError(t, err)
		assert.Equal(t, "mobility", report.RiskAssessment.RiskType)
		assert.Equal(t, 4, report.RiskAssessment.AdherenceImportance)
		require.Len(t, report.RiskAssessment.RelatedSteps, 1)
		assert.Equal(t, entities.RelationshipPrerequisite, report.RiskAssessment.RelatedSteps[0].Relationship)
		assert.Equal(t, "Stretch calves", report.RiskAssessment.RelatedSteps[0].Description)
		steps.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
	})

	t.Run("step not found", func(t *testing.T) {
		steps, deps, risk := new(MockCareStepRepository), new(MockDependencyRepository), new(MockRiskMetadataRepository)
		steps.On("GetByID", mock.Anything, "nope").Return(nil, apperrors.NewNotFoundError("care step nope not found"))
		deps.On("ListByStep", mock.Anything, "nope").Return([]*entities.Dependency{}, nil).Maybe()
		risk.On("GetByStepID", mock.Anything, "nope").Return(nil, nil).Maybe()

		_, err := services.NewRiskService(steps, deps, risk, nil).GetStepRisk(context.Background(), "nope")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("empty step id", func(t *testing.T) {
		svc := services.NewRiskService(new(MockCareStepRepository), new(MockDependencyRepository), new(MockRiskMetadataRepository), nil)

		_, err := svc.GetStepRisk(context.Background(), "")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("no dependencies skips enrichment", func(t *testing.T) {
		steps, deps, risk := new(MockCareStepRepository), new(MockDependencyRepository), new(MockRiskMetadataRepository)
		steps.On("GetByID", mock.Anything, "solo").Return(careStep("solo", 1, 1), nil)
		deps.On("ListByStep", mock.Anything, "solo").Return([]*entities.Dependency{}, nil)
		risk.On("GetByStepID", mock.Anything, "solo").Return(nil, nil)

		report, err := services.NewRiskService(steps, deps, risk, nil).GetStepRisk(context.Background(), "solo")

		require.NoError(t, err)
		assert.Equal(t, 20, report.RiskAssessment.ImpactScore)
		assert.Empty(t, report.RiskAssessment.RelatedSteps)
		steps.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
	})
}
