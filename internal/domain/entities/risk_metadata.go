package entities

import (
	"fmt"
	"time"
)

// ImpactFactors quantify how much adherence to a step matters
type ImpactFactors struct {
	AdherenceImportance int    `json:"adherenceImportance" yaml:"adherenceImportance" db:"adherence_importance"`
	ConsequenceSeverity int    `json:"consequenceSeverity" yaml:"consequenceSeverity" db:"consequence_severity"`
	Reversibility       string `json:"reversibility" yaml:"reversibility" db:"reversibility"`
}

// RiskMetadata is optional educational risk context attached to one step
type RiskMetadata struct {
	ID                     string        `json:"id" yaml:"id" db:"id"`
	StepID                 string        `json:"stepId" yaml:"stepId" db:"step_id"`
	RiskType               string        `json:"riskType" yaml:"riskType" db:"risk_type"`
	ConsequenceDescription string        `json:"consequenceDescription" yaml:"consequenceDescription" db:"consequence_description"`
	MitigationGuidance     string        `json:"mitigationGuidance" yaml:"mitigationGuidance" db:"mitigation_guidance"`
	Disclaimer             string        `json:"disclaimer" yaml:"disclaimer" db:"disclaimer"`
	ImpactFactors          ImpactFactors `json:"impactFactors" yaml:"impactFactors"`
	CreatedAt              time.Time     `json:"createdAt" yaml:"-" db:"created_at"`
	UpdatedAt              time.Time     `json:"updatedAt" yaml:"-" db:"updated_at"`
}

// Validate checks the step reference and impact factor ranges. Zero impact
// factors mean "not provided".
func (m *RiskMetadata) Validate() error {
	if m.StepID == "" {
		return fmt.Errorf("risk metadata %s: stepId is required", m.ID)
	}
	if v := m.ImpactFactors.AdherenceImportance; v != 0 && (v < 1 || v > 10) {
		return fmt.Errorf("risk metadata for step %s: adherenceImportance %d outside 1-10", m.StepID, v)
	}
	if v := m.ImpactFactors.ConsequenceSeverity; v != 0 && (v < 1 || v > 10) {
		return fmt.Errorf("risk metadata for step %s: consequenceSeverity %d outside 1-10", m.StepID, v)
	}
	return nil
}
