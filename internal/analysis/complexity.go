package analysis

import (
	"fmt"
	"math"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// Tier boundaries are inclusive lower bounds.
const (
	moderateThreshold = 33
	highThreshold     = 66
)

// Thresholds for recommendations and high-complexity flags.
const (
	highRiskStepLimit        = 3
	concurrentActivityLimit  = 5
	highStepComplexity       = 70
	manyPrerequisites        = 2
	manyDailyOccurrences     = 2
	interconnectedEdgesLimit = 3
)

const addStepsRecommendation = "Add care steps to this plan to generate a complexity analysis"

// SubScores are the capped, weighted contribution of each factor
type SubScores struct {
	Steps             float64
	Depth             float64
	Concurrency       float64
	FrequencyVariance float64
}

// Total is the unrounded sum of the sub-scores
func (s SubScores) Total() float64 {
	return s.Steps + s.Depth + s.Concurrency + s.FrequencyVariance
}

// Score combines the factors into the overall 0-100 score. Each factor is
// capped at its weight before summing.
func (w Weights) Score(stepCount, depth, concurrent int, frequencyStdDev float64) (int, SubScores) {
	subs := SubScores{
		Steps:       math.Min(float64(stepCount)/stepSaturation*w.Steps, w.Steps),
		Depth:       math.Min(float64(depth)/depthSaturation*w.Depth, w.Depth),
		Concurrency: math.Min(float64(concurrent)/concurrencySaturation*w.Concurrency, w.Concurrency),
	}
	if w.UsesFrequencyVariance() {
		subs.FrequencyVariance = math.Min(frequencyStdDev*w.FrequencyVariance, w.FrequencyVariance)
	}
	return int(math.Round(subs.Total())), subs
}

// LevelFor maps a score onto its tier: [0,33) low, [33,66) moderate, [66,100] high.
func LevelFor(score int) entities.ComplexityLevel {
	switch {
	case score >= highThreshold:
		return entities.ComplexityHigh
	case score >= moderateThreshold:
		return entities.ComplexityModerate
	default:
		return entities.ComplexityLow
	}
}

// Scorer produces complexity analyses with one fixed weighting
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer for the given weighting preset
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Weights returns the scorer's weighting
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Rescore recomputes the overall score from previously reported factors.
func (s *Scorer) Rescore(f entities.ComplexityFactors) int {
	variance := 0.0
	if f.FrequencyVariance != nil {
		variance = *f.FrequencyVariance
	}
	score, _ := s.weights.Score(f.StepCount, f.DependencyDepth, f.ConcurrentActivities, variance)
	return score
}

// Analyze scores a plan's steps and dependencies.
func (s *Scorer) Analyze(steps []*entities.CareStep, deps []*entities.Dependency) *entities.ComplexityAnalysis {
	if len(steps) == 0 {
		return &entities.ComplexityAnalysis{
			OverallScore:        0,
			Level:               entities.ComplexityLow,
			Factors:             s.zeroFactors(),
			Breakdown:           []entities.ComplexityBreakdown{},
			HighComplexityAreas: []entities.HighComplexityArea{},
			Recommendations:     []string{addStepsRecommendation},
		}
	}

	stepCount := len(steps)
	depth := MaxDependencyDepth(deps)
	concurrent := MaxConcurrentSteps(steps)
	stdDev := FrequencyStdDev(steps)

	score, subs := s.weights.Score(stepCount, depth, concurrent, stdDev)

	factors := entities.ComplexityFactors{
		StepCount:            stepCount,
		DependencyDepth:      depth,
		ConcurrentActivities: concurrent,
	}

	breakdown := []entities.ComplexityBreakdown{
		{Category: "Step Count", Score: roundInt(subs.Steps), Description: fmt.Sprintf("%d total care steps", stepCount)},
		{Category: "Dependencies", Score: roundInt(subs.Depth), Description: fmt.Sprintf("Maximum dependency depth: %d", depth)},
		{Category: "Concurrency", Score: roundInt(subs.Concurrency), Description: fmt.Sprintf("Up to %d concurrent activities", concurrent)},
	}

	if s.weights.UsesFrequencyVariance() {
		reported := math.Round(stdDev*100) / 100
		factors.FrequencyVariance = &reported
		breakdown = append(breakdown, entities.ComplexityBreakdown{
			Category:    "Frequency Variance",
			Score:       roundInt(subs.FrequencyVariance),
			Description: fmt.Sprintf("Timing variation across steps: %.2f", reported),
		})
	}

	return &entities.ComplexityAnalysis{
		OverallScore:         score,
		Level:                LevelFor(score),
		Factors:              factors,
		Breakdown:            breakdown,
		CategoryDistribution: CountCategories(steps),
		HighComplexityAreas:  highComplexityAreas(steps, deps),
		Recommendations:      recommendations(score, steps, deps, concurrent),
	}
}

func (s *Scorer) zeroFactors() entities.ComplexityFactors {
	f := entities.ComplexityFactors{}
	if s.weights.UsesFrequencyVariance() {
		zero := 0.0
		f.FrequencyVariance = &zero
	}
	return f
}

// CountCategories tallies steps per category
func CountCategories(steps []*entities.CareStep) entities.CategoryDistribution {
	var dist entities.CategoryDistribution
	for _, step := range steps {
		switch step.Category {
		case entities.CategoryMedication:
			dist.Medication++
		case entities.CategoryExercise:
			dist.Exercise++
		case entities.CategoryMonitoring:
			dist.Monitoring++
		case entities.CategoryAppointment:
			dist.Appointment++
		case entities.CategoryLifestyle:
			dist.Lifestyle++
		}
	}
	return dist
}

func highComplexityAreas(steps []*entities.CareStep, deps []*entities.Dependency) []entities.HighComplexityArea {
	areas := make([]entities.HighComplexityArea, 0)
	for _, step := range steps {
		if step.ComplexityScore <= highStepComplexity {
			continue
		}
		areas = append(areas, entities.HighComplexityArea{
			StepID:              step.ID,
			Description:         step.Description,
			ComplexityScore:     step.ComplexityScore,
			ContributingFactors: complexityFactors(step, deps),
		})
	}
	return areas
}

func complexityFactors(step *entities.CareStep, deps []*entities.Dependency) []string {
	factors := make([]string, 0)

	if len(step.Dependencies) > manyPrerequisites {
		factors = append(factors, "Multiple prerequisites")
	}
	if len(step.Timing.TimeOfDay) > manyDailyOccurrences {
		factors = append(factors, "Multiple daily occurrences")
	}
	if len(step.Metadata.WarningFlags) > 0 {
		factors = append(factors, "Safety warnings present")
	}
	if step.RiskLevel == entities.RiskHigh {
		factors = append(factors, "High risk activity")
	}

	touching := 0
	for _, d := range deps {
		if d.SourceStepID == step.ID || d.TargetStepID == step.ID {
			touching++
		}
	}
	if touching > interconnectedEdgesLimit {
		factors = append(factors, "Highly interconnected")
	}

	return factors
}

func recommendations(score int, steps []*entities.CareStep, deps []*entities.Dependency, maxConcurrent int) []string {
	recs := make([]string, 0)

	if score >= highThreshold {
		recs = append(recs,
			"Consider breaking down complex steps into smaller, manageable tasks",
			"Use the plain language feature to simplify instructions",
			"Review the dependency graph to understand step relationships",
		)
	}

	highRisk := 0
	for _, step := range steps {
		if step.RiskLevel == entities.RiskHigh {
			highRisk++
		}
	}
	if highRisk > highRiskStepLimit {
		recs = append(recs,
			"Pay special attention to high-risk activities",
			"Set up reminders for critical care steps",
		)
	}

	if maxConcurrent > concurrentActivityLimit {
		recs = append(recs, "Some days have many activities - plan ahead and prioritize")
	}

	if len(deps) > len(steps) {
		recs = append(recs, "Many steps depend on others - follow the recommended sequence")
	}

	return recs
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
