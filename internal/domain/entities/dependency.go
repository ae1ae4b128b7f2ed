package entities

import (
	"fmt"
	"time"
)

// DependencyType describes how two steps constrain each other
type DependencyType string

const (
	DependencyPrerequisite       DependencyType = "prerequisite"
	DependencyTimingConstraint   DependencyType = "timing_constraint"
	DependencyInteractionWarning DependencyType = "interaction_warning"
	DependencyComplementary      DependencyType = "complementary"
)

// IsValid reports whether t is a known dependency type
func (t DependencyType) IsValid() bool {
	switch t {
	case DependencyPrerequisite, DependencyTimingConstraint, DependencyInteractionWarning, DependencyComplementary:
		return true
	}
	return false
}

// Criticality is the qualitative weight of a dependency edge
type Criticality string

const (
	CriticalityInformational Criticality = "informational"
	CriticalityRecommended   Criticality = "recommended"
	CriticalityRequired      Criticality = "required"
)

// IsValid reports whether c is a known criticality
func (c Criticality) IsValid() bool {
	return c == CriticalityInformational || c == CriticalityRecommended || c == CriticalityRequired
}

// TimingConstraint bounds how long before the source step the target must happen
type TimingConstraint struct {
	MinHoursBefore *int `json:"minHoursBefore,omitempty" yaml:"minHoursBefore,omitempty" db:"min_hours_before"`
	MaxHoursBefore *int `json:"maxHoursBefore,omitempty" yaml:"maxHoursBefore,omitempty" db:"max_hours_before"`
}

// Dependency is a directed edge: the source step depends on the target step.
type Dependency struct {
	ID               string            `json:"dependencyId" yaml:"dependencyId" db:"id"`
	SourceStepID     string            `json:"sourceStepId" yaml:"sourceStepId" db:"source_step_id"`
	TargetStepID     string            `json:"targetStepId" yaml:"targetStepId" db:"target_step_id"`
	Type             DependencyType    `json:"dependencyType" yaml:"dependencyType" db:"dependency_type"`
	Explanation      string            `json:"explanation" yaml:"explanation" db:"explanation"`
	Criticality      Criticality       `json:"criticality" yaml:"criticality" db:"criticality"`
	TimingConstraint *TimingConstraint `json:"timingConstraint,omitempty" yaml:"timingConstraint,omitempty"`
	CarePlanID       string            `json:"carePlanId" yaml:"carePlanId" db:"care_plan_id"`
	CreatedAt        time.Time         `json:"createdAt" yaml:"-" db:"created_at"`
	UpdatedAt        time.Time         `json:"updatedAt" yaml:"-" db:"updated_at"`
}

// Validate checks required fields and enums
func (d *Dependency) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("dependency id is required")
	}
	if d.SourceStepID == "" || d.TargetStepID == "" {
		return fmt.Errorf("dependency %s: source and target step ids are required", d.ID)
	}
	if d.CarePlanID == "" {
		return fmt.Errorf("dependency %s: carePlanId is required", d.ID)
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("dependency %s: unknown dependency type %q", d.ID, d.Type)
	}
	if !d.Criticality.IsValid() {
		return fmt.Errorf("dependency %s: unknown criticality %q", d.ID, d.Criticality)
	}
	if tc := d.TimingConstraint; tc != nil && tc.MinHoursBefore != nil && tc.MaxHoursBefore != nil &&
		*tc.MaxHoursBefore < *tc.MinHoursBefore {
		return fmt.Errorf("dependency %s: maxHoursBefore is less than minHoursBefore", d.ID)
	}
	return nil
}
