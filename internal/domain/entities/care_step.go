package entities

import (
	"fmt"
	"time"
)

// StepCategory classifies a care step
type StepCategory string

const (
	CategoryMedication  StepCategory = "medication"
	CategoryExercise    StepCategory = "exercise"
	CategoryMonitoring  StepCategory = "monitoring"
	CategoryAppointment StepCategory = "appointment"
	CategoryLifestyle   StepCategory = "lifestyle"
)

// AllCategories lists the categories in display order
var AllCategories = []StepCategory{
	CategoryMedication,
	CategoryExercise,
	CategoryMonitoring,
	CategoryAppointment,
	CategoryLifestyle,
}

// IsValid reports whether c is a known category
func (c StepCategory) IsValid() bool {
	switch c {
	case CategoryMedication, CategoryExercise, CategoryMonitoring, CategoryAppointment, CategoryLifestyle:
		return true
	}
	return false
}

// RiskLevel is the declared risk of skipping a care step
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// IsValid reports whether r is a known risk level
func (r RiskLevel) IsValid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// StepTiming describes when a step happens within the plan
type StepTiming struct {
	Frequency       string   `json:"frequency" yaml:"frequency" db:"frequency"`
	TimeOfDay       []string `json:"timeOfDay" yaml:"timeOfDay" db:"time_of_day"`
	DurationMinutes *int     `json:"duration,omitempty" yaml:"duration,omitempty" db:"duration_minutes"`
	StartDay        int      `json:"startDay" yaml:"startDay" db:"start_day"`
	EndDay          int      `json:"endDay" yaml:"endDay" db:"end_day"`
}

// StepMetadata carries practical details about performing a step
type StepMetadata struct {
	EstimatedTime    int      `json:"estimatedTime" yaml:"estimatedTime" db:"estimated_time"`
	RequiredSupplies []string `json:"requiredSupplies" yaml:"requiredSupplies" db:"required_supplies"`
	WarningFlags     []string `json:"warningFlags" yaml:"warningFlags" db:"warning_flags"`
}

// CareStep is one scheduled care activity within a plan
type CareStep struct {
	ID              string       `json:"stepId" yaml:"stepId" db:"id"`
	CarePlanID      string       `json:"carePlanId" yaml:"carePlanId" db:"care_plan_id"`
	Description     string       `json:"description" yaml:"description" db:"description"`
	MedicalContext  string       `json:"medicalContext" yaml:"medicalContext" db:"medical_context"`
	Timing          StepTiming   `json:"timing" yaml:"timing"`
	Category        StepCategory `json:"category" yaml:"category" db:"category"`
	Instructions    string       `json:"instructions" yaml:"instructions" db:"instructions"`
	Dependencies    []string     `json:"dependencies" yaml:"dependencies" db:"dependencies"`
	RiskLevel       RiskLevel    `json:"riskLevel" yaml:"riskLevel" db:"risk_level"`
	ComplexityScore int          `json:"complexityScore" yaml:"complexityScore" db:"complexity_score"`
	Metadata        StepMetadata `json:"metadata" yaml:"metadata"`
	CreatedAt       time.Time    `json:"createdAt" yaml:"-" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" yaml:"-" db:"updated_at"`
}

// ActiveOn reports whether the step is active on the given plan day
func (s *CareStep) ActiveOn(day int) bool {
	return s.Timing.StartDay <= day && day <= s.Timing.EndDay
}

// Validate checks required fields, enums and the timing range
func (s *CareStep) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("care step id is required")
	}
	if s.CarePlanID == "" {
		return fmt.Errorf("care step %s: carePlanId is required", s.ID)
	}
	if s.Description == "" {
		return fmt.Errorf("care step %s: description is required", s.ID)
	}
	if s.Timing.Frequency == "" {
		return fmt.Errorf("care step %s: timing.frequency is required", s.ID)
	}
	if s.Timing.StartDay < 1 {
		return fmt.Errorf("care step %s: startDay must be at least 1, got %d", s.ID, s.Timing.StartDay)
	}
	if s.Timing.EndDay < s.Timing.StartDay {
		return fmt.Errorf("care step %s: endDay %d is before startDay %d", s.ID, s.Timing.EndDay, s.Timing.StartDay)
	}
	if s.Timing.EndDay > MaxCarePlanDays {
		return fmt.Errorf("care step %s: endDay %d exceeds %d", s.ID, s.Timing.EndDay, MaxCarePlanDays)
	}
	if s.Timing.DurationMinutes != nil && *s.Timing.DurationMinutes < 0 {
		return fmt.Errorf("care step %s: duration must not be negative", s.ID)
	}
	if !s.Category.IsValid() {
		return fmt.Errorf("care step %s: unknown category %q", s.ID, s.Category)
	}
	if !s.RiskLevel.IsValid() {
		return fmt.Errorf("care step %s: unknown risk level %q", s.ID, s.RiskLevel)
	}
	if s.ComplexityScore < 0 || s.ComplexityScore > 100 {
		return fmt.Errorf("care step %s: complexityScore %d outside 0-100", s.ID, s.ComplexityScore)
	}
	return nil
}
