package entities

import (
	"fmt"
	"time"
)

// MaxCarePlanDays bounds plan durations and step day ranges
const MaxCarePlanDays = 3650

// ComplexitySummary is the complexity summary declared on a care plan when it was seeded
type ComplexitySummary struct {
	OverallScore         int     `json:"overallScore" yaml:"overallScore" db:"overall_score"`
	StepCount            int     `json:"stepCount" yaml:"stepCount" db:"step_count"`
	AvgDependencyDepth   float64 `json:"avgDependencyDepth" yaml:"avgDependencyDepth" db:"avg_dependency_depth"`
	ConcurrentActivities int     `json:"concurrentActivities" yaml:"concurrentActivities" db:"concurrent_activities"`
}

// CarePlan is a scenario template grouping care steps and their dependencies
type CarePlan struct {
	ID                string            `json:"id" yaml:"id" db:"id"`
	Name              string            `json:"name" yaml:"name" db:"name"`
	Description       string            `json:"description" yaml:"description" db:"description"`
	DurationDays      int               `json:"durationDays" yaml:"durationDays" db:"duration_days"`
	ComplexityMetrics ComplexitySummary `json:"complexityMetrics" yaml:"complexityMetrics"`
	Tags              []string          `json:"tags,omitempty" yaml:"tags,omitempty" db:"tags"`
	CreatedAt         time.Time         `json:"createdAt" yaml:"-" db:"created_at"`
	UpdatedAt         time.Time         `json:"updatedAt" yaml:"-" db:"updated_at"`
}

// Validate checks the plan's required fields
func (p *CarePlan) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("care plan id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("care plan %s: name is required", p.ID)
	}
	if p.DurationDays < 1 {
		return fmt.Errorf("care plan %s: durationDays must be at least 1, got %d", p.ID, p.DurationDays)
	}
	if p.DurationDays > MaxCarePlanDays {
		return fmt.Errorf("care plan %s: durationDays %d exceeds %d", p.ID, p.DurationDays, MaxCarePlanDays)
	}
	if p.ComplexityMetrics.OverallScore < 0 || p.ComplexityMetrics.OverallScore > 100 {
		return fmt.Errorf("care plan %s: declared overall score %d outside 0-100", p.ID, p.ComplexityMetrics.OverallScore)
	}
	return nil
}

// CheckStepRange rejects a step scheduled past the plan's last day
func (p *CarePlan) CheckStepRange(s *CareStep) error {
	if s.Timing.EndDay > p.DurationDays {
		return fmt.Errorf("care step %s: endDay %d is after the plan's last day %d", s.ID, s.Timing.EndDay, p.DurationDays)
	}
	return nil
}
