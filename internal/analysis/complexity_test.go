package analysis_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// moderatePlan has 4 steps over days 1-7, two twice a day and two once
// daily, and a dependency chain of depth 2.
func moderatePlan() ([]*entities.CareStep, []*entities.Dependency) {
	steps := []*entities.CareStep{step("s1", 1, 7), step("s2", 1, 7), step("s3", 1, 7), step("s4", 1, 7)}
	steps[0].Timing.Frequency = "twice a day"
	steps[1].Timing.Frequency = "Twice a day"
	deps := edges([2]string{"s1", "s2"}, [2]string{"s2", "s3"})
	return steps, deps
}

func TestWeightsScore_SaturatedThreeFactor(t *testing.T) {
	score, subs := analysis.ThreeFactorWeights.Score(20, 5, 10, 0)

	assert.Equal(t, 100, score)
	assert.InDelta(t, 30, subs.Steps, 1e-9)
	assert.InDelta(t, 35, subs.Depth, 1e-9)
	assert.InDelta(t, 35, subs.Concurrency, 1e-9)
	assert.Equal(t, "three_factor", analysis.ThreeFactorWeights.Name)
	assert.Equal(t, entities.ComplexityHigh, analysis.LevelFor(score))
}

func TestWeightsScore_CapsEachFactor(t *testing.T) {
	score, subs := analysis.FourFactorWeights.Score(200, 50, 100, 10)

	assert.Equal(t, 100, score)
	assert.InDelta(t, 25, subs.Steps, 1e-9)
	assert.InDelta(t, 30, subs.Depth, 1e-9)
	assert.InDelta(t, 25, subs.Concurrency, 1e-9)
	assert.InDelta(t, 20, subs.FrequencyVariance, 1e-9)
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  entities.ComplexityLevel
	}{
		{0, entities.ComplexityLow},
		{32, entities.ComplexityLow},
		{33, entities.ComplexityModerate},
		{65, entities.ComplexityModerate},
		{66, entities.ComplexityHigh},
		{100, entities.ComplexityHigh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %d", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.LevelFor(tt.score))
		})
	}
}

func TestWeightsByName(t *testing.T) {
	w, err := analysis.WeightsByName("four_factor")
	require.NoError(t, err)
	assert.True(t, w.UsesFrequencyVariance())

	w, err = analysis.WeightsByName("three_factor")
	require.NoError(t, err)
	assert.False(t, w.UsesFrequencyVariance())

	_, err = analysis.WeightsByName("five_factor")
	assert.Error(t, err)
}

func TestAnalyze_ZeroSteps(t *testing.T) {
	for _, w := range []analysis.Weights{analysis.FourFactorWeights, analysis.ThreeFactorWeights} {
		t.Run(w.Name, func(t *testing.T) {
			result := analysis.NewScorer(w).Analyze(nil, edges([2]string{"a", "b"}))

			assert.Equal(t, 0, result.OverallScore)
			assert.Equal(t, entities.ComplexityLow, result.Level)
			assert.Len(t, result.Recommendations, 1)
			assert.NotNil(t, result.Breakdown)
			assert.Empty(t, result.Breakdown)
			assert.Equal(t, 0, result.Factors.StepCount)
			assert.Equal(t, 0, result.Factors.DependencyDepth)
		})
	}
}

func TestAnalyze_FourFactor(t *testing.T) {
	steps, deps := moderatePlan()

	result := analysis.NewScorer(analysis.FourFactorWeights).Analyze(steps, deps)

	// 4/20*25 + 2/5*30 + 4/10*25 + 0.5*20
	assert.Equal(t, 37, result.OverallScore)
	assert.Equal(t, entities.ComplexityModerate, result.Level)
	assert.Equal(t, 4, result.Factors.StepCount)
	assert.Equal(t, 2, result.Factors.DependencyDepth)
	assert.Equal(t, 4, result.Factors.ConcurrentActivities)
	if assert.NotNil(t, result.Factors.FrequencyVariance) {
		assert.InDelta(t, 0.5, *result.Factors.FrequencyVariance, 1e-9)
	}

	require.Len(t, result.Breakdown, 4)
	assert.Equal(t, entities.ComplexityBreakdown{Category: "Step Count", Score: 5, Description: "4 total care steps"}, result.Breakdown[0])
	assert.Equal(t, entities.ComplexityBreakdown{Category: "Dependencies", Score: 12, Description: "Maximum dependency depth: 2"}, result.Breakdown[1])
	assert.Equal(t, entities.ComplexityBreakdown{Category: "Concurrency", Score: 10, Description: "Up to 4 concurrent activities"}, result.Breakdown[2])
	assert.Equal(t, "Frequency Variance", result.Breakdown[3].Category)
	assert.Equal(t, 10, result.Breakdown[3].Score)

	assert.Equal(t, 4, result.CategoryDistribution.Exercise)
	assert.Empty(t, result.Recommendations)
	assert.Empty(t, result.HighComplexityAreas)
}

func TestAnalyze_FourFactorDailyCountWordsAddNoVariance(t *testing.T) {
	steps := []*entities.CareStep{step("a", 1, 1), step("b", 1, 1), step("c", 1, 1)}
	steps[0].Timing.Frequency = "Twice daily"
	steps[1].Timing.Frequency = "Once daily"
	steps[2].Timing.Frequency = "Three times daily"

	result := analysis.NewScorer(analysis.FourFactorWeights).Analyze(steps, nil)

	// 3/20*25 + 0 + 3/10*25 + 0
	assert.Equal(t, 11, result.OverallScore)
	if assert.NotNil(t, result.Factors.FrequencyVariance) {
		assert.InDelta(t, 0, *result.Factors.FrequencyVariance, 1e-9)
	}
}

func TestAnalyze_ThreeFactorOmitsVariance(t *testing.T) {
	steps, deps := moderatePlan()

	result := analysis.NewScorer(analysis.ThreeFactorWeights).Analyze(steps, deps)

	// 4/20*30 + 2/5*35 + 4/10*35
	assert.Equal(t, 34, result.OverallScore)
	assert.Equal(t, entities.ComplexityModerate, result.Level)
	assert.Nil(t, result.Factors.FrequencyVariance)
	assert.Len(t, result.Breakdown, 3)
}

func TestAnalyze_RescoreReproducesScore(t *testing.T) {
	steps, deps := moderatePlan()
	busy, busyDeps := busyPlan()

	for _, w := range []analysis.Weights{analysis.FourFactorWeights, analysis.ThreeFactorWeights} {
		scorer := analysis.NewScorer(w)
		for _, plan := range []struct {
			steps []*entities.CareStep
			deps  []*entities.Dependency
		}{{steps, deps}, {busy, busyDeps}, {nil, nil}} {
			result := scorer.Analyze(plan.steps, plan.deps)
			assert.Equal(t, result.OverallScore, scorer.Rescore(result.Factors), w.Name)
		}
	}
}

// busyPlan has 20 steps active on days 1-10, four of them high risk, with
// a dependency chain of depth 5.
func busyPlan() ([]*entities.CareStep, []*entities.Dependency) {
	steps := make([]*entities.CareStep, 0, 20)
	for i := 0; i < 20; i++ {
		s := step(fmt.Sprintf("s%d", i), 1, 10)
		if i < 4 {
			s.RiskLevel = entities.RiskHigh
		}
		steps = append(steps, s)
	}
	deps := edges(
		[2]string{"s0", "s1"}, [2]string{"s1", "s2"}, [2]string{"s2", "s3"},
		[2]string{"s3", "s4"}, [2]string{"s4", "s5"},
	)
	return steps, deps
}

func TestAnalyze_RecommendationsForBusyPlan(t *testing.T) {
	steps, deps := busyPlan()

	result := analysis.NewScorer(analysis.ThreeFactorWeights).Analyze(steps, deps)

	assert.Equal(t, 100, result.OverallScore)
	assert.Equal(t, entities.ComplexityHigh, result.Level)
	assert.Equal(t, []string{
		"Consider breaking down complex steps into smaller, manageable tasks",
		"Use the plain language feature to simplify instructions",
		"Review the dependency graph to understand step relationships",
		"Pay special attention to high-risk activities",
		"Set up reminders for critical care steps",
		"Some days have many activities - plan ahead and prioritize",
	}, result.Recommendations)
}

func TestAnalyze_SequenceAdviceWhenDependenciesOutnumberSteps(t *testing.T) {
	steps := []*entities.CareStep{step("a", 1, 1), step("b", 1, 1)}
	deps := edges([2]string{"a", "b"}, [2]string{"b", "a"}, [2]string{"a", "c"})

	result := analysis.NewScorer(analysis.FourFactorWeights).Analyze(steps, deps)

	assert.Contains(t, result.Recommendations, "Many steps depend on others - follow the recommended sequence")
}

func TestAnalyze_HighComplexityAreas(t *testing.T) {
	hard := step("hard", 1, 3)
	hard.ComplexityScore = 80
	hard.RiskLevel = entities.RiskHigh
	hard.Dependencies = []string{"b", "c", "d"}
	hard.Timing.TimeOfDay = []string{"08:00", "14:00", "20:00"}
	hard.Metadata.WarningFlags = []string{"May cause dizziness"}

	borderline := step("borderline", 1, 3)
	borderline.ComplexityScore = 70

	steps := []*entities.CareStep{hard, borderline, step("b", 1, 1), step("c", 1, 1), step("d", 1, 1)}
	deps := edges([2]string{"hard", "b"}, [2]string{"hard", "c"}, [2]string{"hard", "d"}, [2]string{"borderline", "hard"})

	result := analysis.NewScorer(analysis.FourFactorWeights).Analyze(steps, deps)

	require.Len(t, result.HighComplexityAreas, 1)
	area := result.HighComplexityAreas[0]
	assert.Equal(t, "hard", area.StepID)
	assert.Equal(t, 80, area.ComplexityScore)
	assert.Equal(t, []string{
		"Multiple prerequisites",
		"Multiple daily occurrences",
		"Safety warnings present",
		"High risk activity",
		"Highly interconnected",
	}, area.ContributingFactors)
}

func TestSummarizeJourney(t *testing.T) {
	assert.Equal(t, entities.JourneyMetadata{}, analysis.SummarizeJourney(nil, nil))

	a, b := step("a", 1, 1), step("b", 1, 1)
	a.ComplexityScore, b.ComplexityScore = 40, 51
	a.RiskLevel = entities.RiskHigh

	meta := analysis.SummarizeJourney([]*entities.CareStep{a, b}, edges([2]string{"a", "b"}))

	assert.Equal(t, 2, meta.TotalSteps)
	assert.Equal(t, 1, meta.TotalDependencies)
	assert.Equal(t, 1, meta.HighRiskSteps)
	assert.Equal(t, 46, meta.AverageComplexity)
}
