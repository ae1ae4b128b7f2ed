package entities

import "time"

// SummaryAudience selects the recommendations and note of a care summary
type SummaryAudience string

const (
	AudienceDoctor    SummaryAudience = "doctor"
	AudiencePatient   SummaryAudience = "patient"
	AudienceCaregiver SummaryAudience = "caregiver"
)

// IsValid reports whether a is a known audience
func (a SummaryAudience) IsValid() bool {
	switch a {
	case AudienceDoctor, AudiencePatient, AudienceCaregiver:
		return true
	}
	return false
}

// SummaryOverview describes the plan at a glance
type SummaryOverview struct {
	Scenario    string          `json:"scenario" yaml:"scenario"`
	Description string          `json:"description" yaml:"description"`
	Duration    string          `json:"duration" yaml:"duration"`
	Complexity  ComplexityLevel `json:"complexity" yaml:"complexity"`
	TotalSteps  int             `json:"totalSteps" yaml:"totalSteps"`
}

// SummaryStatistics are the headline counts of a plan
type SummaryStatistics struct {
	TotalCareSteps               int                  `json:"totalCareSteps" yaml:"totalCareSteps"`
	HighRiskActivities           int                  `json:"highRiskActivities" yaml:"highRiskActivities"`
	CriticalDependencies         int                  `json:"criticalDependencies" yaml:"criticalDependencies"`
	EstimatedDailyMinutes        int                  `json:"estimatedDailyMinutes" yaml:"estimatedDailyMinutes"`
	EstimatedDailyTimeCommitment string               `json:"estimatedDailyTimeCommitment" yaml:"estimatedDailyTimeCommitment"`
	CategoryBreakdown            CategoryDistribution `json:"categoryBreakdown" yaml:"categoryBreakdown"`
}

// SummaryRiskStep is a high risk step called out in a summary
type SummaryRiskStep struct {
	StepID      string       `json:"stepId" yaml:"stepId"`
	Description string       `json:"description" yaml:"description"`
	Category    StepCategory `json:"category" yaml:"category"`
	RiskType    string       `json:"riskType" yaml:"riskType"`
	Reasoning   string       `json:"reasoning" yaml:"reasoning"`
}

// SummaryDependency is a required dependency described by step descriptions
type SummaryDependency struct {
	From        string         `json:"from" yaml:"from"`
	To          string         `json:"to" yaml:"to"`
	Type        DependencyType `json:"type" yaml:"type"`
	Explanation string         `json:"explanation" yaml:"explanation"`
}

// SummaryCriticalAreas lists what needs the most attention
type SummaryCriticalAreas struct {
	HighRiskSteps   []SummaryRiskStep   `json:"highRiskSteps" yaml:"highRiskSteps"`
	KeyDependencies []SummaryDependency `json:"keyDependencies" yaml:"keyDependencies"`
}

// SummaryFactor is one named input of the complexity score
type SummaryFactor struct {
	Factor string `json:"factor" yaml:"factor"`
	Value  int    `json:"value" yaml:"value"`
}

// SummaryComplexity restates the complexity analysis for a summary
type SummaryComplexity struct {
	OverallScore int             `json:"overallScore" yaml:"overallScore"`
	MainFactors  []SummaryFactor `json:"mainFactors" yaml:"mainFactors"`
}

// CareSummary is an audience-specific overview of a care plan
type CareSummary struct {
	Overview          SummaryOverview      `json:"overview" yaml:"overview"`
	KeyStatistics     SummaryStatistics    `json:"keyStatistics" yaml:"keyStatistics"`
	CriticalAreas     SummaryCriticalAreas `json:"criticalAreas" yaml:"criticalAreas"`
	ComplexityFactors SummaryComplexity    `json:"complexityFactors" yaml:"complexityFactors"`
	Recommendations   []string             `json:"recommendations" yaml:"recommendations"`
	EducationalNote   string               `json:"educationalNote" yaml:"educationalNote"`
	Disclaimer        string               `json:"disclaimer" yaml:"disclaimer"`
}

// CarePlanSummary is the response of a summary request
type CarePlanSummary struct {
	CarePlanID  string          `json:"carePlanId" yaml:"carePlanId"`
	Summary     CareSummary     `json:"summary" yaml:"summary"`
	GeneratedAt time.Time       `json:"generatedAt" yaml:"generatedAt"`
	Audience    SummaryAudience `json:"audience" yaml:"audience"`
}
