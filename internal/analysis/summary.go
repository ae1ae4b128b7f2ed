package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// SummaryDisclaimer is attached verbatim to every care summary.
const SummaryDisclaimer = "This is an educational tool using synthetic data. " +
	"All information should be verified with qualified healthcare providers."

const (
	defaultStepMinutes   = 15
	maxKeyDependencies   = 5
	defaultRiskReasoning = "High priority for adherence"
)

var audienceRecommendations = map[entities.SummaryAudience][]string{
	entities.AudienceDoctor: {
		"Review high-risk activities with patient during consultation",
		"Ensure patient understands critical dependencies between care steps",
		"Consider complexity level when discussing adherence strategies",
		"Schedule follow-up based on care plan complexity and duration",
	},
	entities.AudienceCaregiver: {
		"Set up daily reminders for all care activities",
		"Pay special attention to high-risk and time-sensitive activities",
		"Help maintain a care journal to track progress",
		"Communicate regularly with healthcare providers about any concerns",
	},
	entities.AudiencePatient: {
		"Follow the care plan sequence carefully",
		"Set reminders for activities with specific timing requirements",
		"Track your progress and note any concerns",
		"Contact your healthcare provider if you have questions or difficulties",
	},
}

var audienceNotes = map[entities.SummaryAudience]string{
	entities.AudienceDoctor:    "This summary is generated from synthetic educational data for demonstration purposes.",
	entities.AudienceCaregiver: "This summary provides an overview of the care journey. Always follow your healthcare provider's specific instructions.",
	entities.AudiencePatient:   "This summary provides an overview of the care journey. Always follow your healthcare provider's specific instructions.",
}

// DailyOccurrences is the time estimate's count of daily repetitions. It
// reads count words literally ("twice daily" is 2), and the largest count
// named wins. Unlike OccurrencesPerDay it is not used for scoring.
func DailyOccurrences(frequency string) int {
	f := strings.ToLower(frequency)
	switch {
	case strings.Contains(f, "four"):
		return 4
	case strings.Contains(f, "three"):
		return 3
	case strings.Contains(f, "twice"):
		return 2
	}
	return 1
}

// EstimatedDailyMinutes adds up every step's estimated time times its
// daily repetitions. Steps without an estimate count 15 minutes.
func EstimatedDailyMinutes(steps []*entities.CareStep) int {
	total := 0
	for _, s := range steps {
		minutes := s.Metadata.EstimatedTime
		if minutes <= 0 {
			minutes = defaultStepMinutes
		}
		total += minutes * DailyOccurrences(s.Timing.Frequency)
	}
	return total
}

// FormatDailyTime renders minutes as "2 hours 5 minutes" or "45 minutes"
func FormatDailyTime(minutes int) string {
	hours, rest := minutes/60, minutes%60
	switch {
	case hours > 1:
		return fmt.Sprintf("%d hours %d minutes", hours, rest)
	case hours == 1:
		return fmt.Sprintf("1 hour %d minutes", rest)
	}
	return fmt.Sprintf("%d minutes", rest)
}

// BuildCareSummary aggregates a plan's records into an audience-specific
// summary. complexity is the live analysis of the plan; when nil the
// plan's declared complexity metrics are used instead. An unknown
// audience gets the patient recommendations.
func BuildCareSummary(
	plan *entities.CarePlan,
	steps []*entities.CareStep,
	deps []*entities.Dependency,
	riskData []*entities.RiskMetadata,
	complexity *entities.ComplexityAnalysis,
	audience entities.SummaryAudience,
) entities.CareSummary {
	if !audience.IsValid() {
		audience = entities.AudiencePatient
	}

	byID := make(map[string]*entities.CareStep, len(steps))
	for _, s := range steps {
		byID[s.ID] = s
	}
	riskByStep := make(map[string]*entities.RiskMetadata, len(riskData))
	for _, m := range riskData {
		riskByStep[m.StepID] = m
	}

	highRisk := make([]entities.SummaryRiskStep, 0)
	for _, s := range steps {
		if s.RiskLevel != entities.RiskHigh {
			continue
		}
		item := entities.SummaryRiskStep{
			StepID:      s.ID,
			Description: s.Description,
			Category:    s.Category,
			RiskType:    defaultRiskType,
			Reasoning:   defaultRiskReasoning,
		}
		if m, ok := riskByStep[s.ID]; ok {
			if m.RiskType != "" {
				item.RiskType = m.RiskType
			}
			if m.ConsequenceDescription != "" {
				item.Reasoning = m.ConsequenceDescription
			}
		}
		highRisk = append(highRisk, item)
	}

	critical := 0
	keyDeps := make([]entities.SummaryDependency, 0, maxKeyDependencies)
	for _, d := range deps {
		if d.Criticality != entities.CriticalityRequired {
			continue
		}
		critical++
		if len(keyDeps) < maxKeyDependencies {
			keyDeps = append(keyDeps, entities.SummaryDependency{
				From:        describeStep(byID, d.SourceStepID),
				To:          describeStep(byID, d.TargetStepID),
				Type:        d.Type,
				Explanation: d.Explanation,
			})
		}
	}

	score, depth, concurrent := plan.ComplexityMetrics.OverallScore,
		int(math.Round(plan.ComplexityMetrics.AvgDependencyDepth)),
		plan.ComplexityMetrics.ConcurrentActivities
	if complexity != nil {
		score = complexity.OverallScore
		depth = complexity.Factors.DependencyDepth
		concurrent = complexity.Factors.ConcurrentActivities
	}

	minutes := EstimatedDailyMinutes(steps)
	recommendations := append([]string(nil), audienceRecommendations[audience]...)

	return entities.CareSummary{
		Overview: entities.SummaryOverview{
			Scenario:    plan.Name,
			Description: plan.Description,
			Duration:    fmt.Sprintf("%d days", plan.DurationDays),
			Complexity:  LevelFor(score),
			TotalSteps:  len(steps),
		},
		KeyStatistics: entities.SummaryStatistics{
			TotalCareSteps:               len(steps),
			HighRiskActivities:           len(highRisk),
			CriticalDependencies:         critical,
			EstimatedDailyMinutes:        minutes,
			EstimatedDailyTimeCommitment: FormatDailyTime(minutes),
			CategoryBreakdown:            CountCategories(steps),
		},
		CriticalAreas: entities.SummaryCriticalAreas{
			HighRiskSteps:   highRisk,
			KeyDependencies: keyDeps,
		},
		ComplexityFactors: entities.SummaryComplexity{
			OverallScore: score,
			MainFactors: []entities.SummaryFactor{
				{Factor: "Number of Steps", Value: len(steps)},
				{Factor: "Dependency Depth", Value: depth},
				{Factor: "Concurrent Activities", Value: concurrent},
			},
		},
		Recommendations: recommendations,
		EducationalNote: audienceNotes[audience],
		Disclaimer:      SummaryDisclaimer,
	}
}

func describeStep(byID map[string]*entities.CareStep, id string) string {
	if s, ok := byID[id]; ok && s.Description != "" {
		return s.Description
	}
	return id
}

// SummaryText renders a summary as the plain text download
func SummaryText(summary *entities.CareSummary) string {
	var b strings.Builder
	rule := strings.Repeat("=", 50)

	b.WriteString("CARE PLAN SUMMARY\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("OVERVIEW\n")
	fmt.Fprintf(&b, "Scenario: %s\n", summary.Overview.Scenario)
	fmt.Fprintf(&b, "Duration: %s\n", summary.Overview.Duration)
	fmt.Fprintf(&b, "Complexity: %s\n", summary.Overview.Complexity)
	fmt.Fprintf(&b, "Total Steps: %d\n\n", summary.Overview.TotalSteps)

	b.WriteString("KEY STATISTICS\n")
	fmt.Fprintf(&b, "High Risk Activities: %d\n", summary.KeyStatistics.HighRiskActivities)
	fmt.Fprintf(&b, "Critical Dependencies: %d\n", summary.KeyStatistics.CriticalDependencies)
	fmt.Fprintf(&b, "Daily Time Commitment: %s\n\n", summary.KeyStatistics.EstimatedDailyTimeCommitment)

	b.WriteString("CRITICAL AREAS\n")
	for i, step := range summary.CriticalAreas.HighRiskSteps {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, step.Description, step.Category)
	}
	b.WriteString("\n")

	b.WriteString(summary.Disclaimer + "\n")
	return b.String()
}
