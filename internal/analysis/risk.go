package analysis

import (
	"strings"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// RiskDisclaimer is attached verbatim to every risk assessment.
const RiskDisclaimer = "This is educational information about the importance of care adherence. " +
	"It is not a medical assessment. Always consult your healthcare provider about your specific care plan and any concerns."

const (
	defaultRiskType = "general"

	genericConsequence = "Missing this care step may affect your recovery progress. " +
		"Please follow your healthcare provider's instructions."
	genericMitigation = "Set reminders and maintain consistent adherence to your care plan."
)

// Impact score points.
const (
	maxImpactScore     = 100
	pointsPerDependent = 10
	maxDependentPoints = 30
	timingBonus        = 10
)

var riskBasePoints = map[entities.RiskLevel]int{
	entities.RiskHigh:   40,
	entities.RiskMedium: 25,
	entities.RiskLow:    10,
}

var categoryBonus = map[entities.StepCategory]int{
	entities.CategoryMedication: 20,
	entities.CategoryMonitoring: 15,
}

const defaultCategoryBonus = 10

var adherenceByRisk = map[entities.RiskLevel]int{
	entities.RiskHigh:   9,
	entities.RiskMedium: 6,
	entities.RiskLow:    3,
}

var consequenceByCategory = map[entities.StepCategory]string{
	entities.CategoryMedication:  "Skipping or changing the timing of this medication can make your treatment less effective.",
	entities.CategoryExercise:    "Skipping this activity can slow the return of strength and mobility.",
	entities.CategoryMonitoring:  "Missed readings leave gaps that make changes in your condition harder to notice.",
	entities.CategoryAppointment: "A missed appointment delays the check-ins your care team uses to adjust your plan.",
	entities.CategoryLifestyle:   "Lifestyle changes work gradually, so gaps reduce their benefit over time.",
}

var mitigationByCategory = map[entities.StepCategory]string{
	entities.CategoryMedication:  "Keep your medication where you will see it at the scheduled times.",
	entities.CategoryExercise:    "Plan a regular time of day for this activity.",
	entities.CategoryMonitoring:  "Record each reading in the same place so trends are easy to review.",
	entities.CategoryAppointment: "Add the appointment to your calendar and arrange transport in advance.",
	entities.CategoryLifestyle:   "Start with small, steady changes that fit your routine.",
}

// ImpactScore estimates the consequence of not adhering to a step, 0-100.
// dependentCount is the number of dependencies sourced from the step.
func ImpactScore(step *entities.CareStep, dependentCount int) int {
	score := riskBasePoints[step.RiskLevel]

	dependents := dependentCount * pointsPerDependent
	if dependents > maxDependentPoints {
		dependents = maxDependentPoints
	}
	score += dependents

	if bonus, ok := categoryBonus[step.Category]; ok {
		score += bonus
	} else {
		score += defaultCategoryBonus
	}

	if len(step.Timing.TimeOfDay) > 0 {
		score += timingBonus
	}

	if score > maxImpactScore {
		return maxImpactScore
	}
	return score
}

// AssessRisk builds the risk assessment of one step. meta may be nil; deps
// may contain dependencies that do not touch the step, they are ignored.
func AssessRisk(step *entities.CareStep, meta *entities.RiskMetadata, deps []*entities.Dependency) entities.RiskAssessment {
	// Dependents are listed before prerequisites. A step that depends on
	// itself shows up on both sides.
	related := make([]entities.RelatedStep, 0)
	dependents := 0
	for _, d := range deps {
		if d.SourceStepID == step.ID {
			dependents++
			related = append(related, entities.RelatedStep{
				OtherStepID:  d.TargetStepID,
				Relationship: entities.RelationshipDependsOnThis,
				Criticality:  d.Criticality,
			})
		}
	}
	prerequisites := 0
	for _, d := range deps {
		if d.TargetStepID == step.ID {
			prerequisites++
			related = append(related, entities.RelatedStep{
				OtherStepID:  d.SourceStepID,
				Relationship: entities.RelationshipPrerequisite,
				Criticality:  d.Criticality,
			})
		}
	}

	assessment := entities.RiskAssessment{
		RiskLevel:              step.RiskLevel,
		RiskType:               defaultRiskType,
		ImpactScore:            ImpactScore(step, dependents),
		ConsequenceDescription: fallbackConsequence(step.Category),
		MitigationGuidance:     fallbackMitigation(step.Category),
		Context: entities.RiskContext{
			HasPrerequisites:   prerequisites > 0,
			PrerequisiteCount:  prerequisites,
			AffectsOtherSteps:  dependents > 0,
			DependentStepCount: dependents,
			TimingCritical:     timingCritical(step),
			Category:           step.Category,
		},
		RelatedSteps:        related,
		AdherenceImportance: adherenceByRisk[step.RiskLevel],
		Disclaimer:          RiskDisclaimer,
	}

	if meta == nil {
		return assessment
	}

	if meta.RiskType != "" {
		assessment.RiskType = meta.RiskType
	}
	if meta.ConsequenceDescription != "" {
		assessment.ConsequenceDescription = meta.ConsequenceDescription
	}
	if meta.MitigationGuidance != "" {
		assessment.MitigationGuidance = meta.MitigationGuidance
	}
	if meta.ImpactFactors.AdherenceImportance > 0 {
		assessment.AdherenceImportance = meta.ImpactFactors.AdherenceImportance
	}
	return assessment
}

// NewStepRiskReport wraps an assessment with the step it describes
func NewStepRiskReport(step *entities.CareStep, assessment entities.RiskAssessment) *entities.StepRiskReport {
	return &entities.StepRiskReport{
		StepID:          step.ID,
		StepDescription: step.Description,
		RiskAssessment:  assessment,
	}
}

func timingCritical(step *entities.CareStep) bool {
	return strings.Contains(strings.ToLower(step.Timing.Frequency), "specific") ||
		len(step.Timing.TimeOfDay) > 0
}

func fallbackConsequence(category entities.StepCategory) string {
	if text, ok := consequenceByCategory[category]; ok {
		return text + " " + genericConsequence
	}
	return genericConsequence
}

func fallbackMitigation(category entities.StepCategory) string {
	if text, ok := mitigationByCategory[category]; ok {
		return text + " " + genericMitigation
	}
	return genericMitigation
}
