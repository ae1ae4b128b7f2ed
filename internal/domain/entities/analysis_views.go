package entities

// TimelineStep is the projection of an active step on a timeline day
type TimelineStep struct {
	StepID      string       `json:"stepId" yaml:"stepId"`
	Description string       `json:"description" yaml:"description"`
	Category    StepCategory `json:"category" yaml:"category"`
	TimeOfDay   []string     `json:"timeOfDay" yaml:"timeOfDay"`
	RiskLevel   RiskLevel    `json:"riskLevel" yaml:"riskLevel"`
}

// TimelineDay lists the steps active on one plan day
type TimelineDay struct {
	Day       int            `json:"day" yaml:"day"`
	StepCount int            `json:"stepCount" yaml:"stepCount"`
	Steps     []TimelineStep `json:"steps" yaml:"steps"`
}

// ComplexityLevel is the severity tier of a complexity score
type ComplexityLevel string

const (
	ComplexityLow      ComplexityLevel = "low"
	ComplexityModerate ComplexityLevel = "moderate"
	ComplexityHigh     ComplexityLevel = "high"
)

// ComplexityFactors are the raw inputs of the complexity score.
// FrequencyVariance is only reported when the weighting scores it.
type ComplexityFactors struct {
	StepCount            int      `json:"stepCount" yaml:"stepCount"`
	DependencyDepth      int      `json:"dependencyDepth" yaml:"dependencyDepth"`
	ConcurrentActivities int      `json:"concurrentActivities" yaml:"concurrentActivities"`
	FrequencyVariance    *float64 `json:"frequencyVariance,omitempty" yaml:"frequencyVariance,omitempty"`
}

// ComplexityBreakdown is one factor's contribution to the overall score
type ComplexityBreakdown struct {
	Category    string `json:"category" yaml:"category"`
	Score       int    `json:"score" yaml:"score"`
	Description string `json:"description" yaml:"description"`
}

// CategoryDistribution counts a plan's steps per category
type CategoryDistribution struct {
	Medication  int `json:"medication" yaml:"medication"`
	Exercise    int `json:"exercise" yaml:"exercise"`
	Monitoring  int `json:"monitoring" yaml:"monitoring"`
	Appointment int `json:"appointment" yaml:"appointment"`
	Lifestyle   int `json:"lifestyle" yaml:"lifestyle"`
}

// HighComplexityArea flags a step whose stored complexity score is high
type HighComplexityArea struct {
	StepID              string   `json:"stepId" yaml:"stepId"`
	Description         string   `json:"description" yaml:"description"`
	ComplexityScore     int      `json:"complexityScore" yaml:"complexityScore"`
	ContributingFactors []string `json:"contributingFactors" yaml:"contributingFactors"`
}

// ComplexityAnalysis is the derived complexity view of a care plan
type ComplexityAnalysis struct {
	OverallScore         int                   `json:"overallScore" yaml:"overallScore"`
	Level                ComplexityLevel       `json:"level" yaml:"level"`
	Factors              ComplexityFactors     `json:"factors" yaml:"factors"`
	Breakdown            []ComplexityBreakdown `json:"breakdown" yaml:"breakdown"`
	CategoryDistribution CategoryDistribution  `json:"categoryDistribution" yaml:"categoryDistribution"`
	HighComplexityAreas  []HighComplexityArea  `json:"highComplexityAreas" yaml:"highComplexityAreas"`
	Recommendations      []string              `json:"recommendations" yaml:"recommendations"`
}

// Relationship values used in RelatedStep
const (
	RelationshipDependsOnThis = "depends_on_this"
	RelationshipPrerequisite  = "prerequisite"
)

// RelatedStep is a dependency touching the assessed step, seen from that step
type RelatedStep struct {
	OtherStepID  string      `json:"stepId" yaml:"stepId"`
	Relationship string      `json:"relationship" yaml:"relationship"`
	Criticality  Criticality `json:"criticality" yaml:"criticality"`
	Description  string      `json:"description,omitempty" yaml:"description,omitempty"`
}

// RiskContext describes how a step is wired into the rest of the plan
type RiskContext struct {
	HasPrerequisites   bool         `json:"hasPrerequisites" yaml:"hasPrerequisites"`
	PrerequisiteCount  int          `json:"prerequisiteCount" yaml:"prerequisiteCount"`
	AffectsOtherSteps  bool         `json:"affectsOtherSteps" yaml:"affectsOtherSteps"`
	DependentStepCount int          `json:"dependentStepCount" yaml:"dependentStepCount"`
	TimingCritical     bool         `json:"timingCritical" yaml:"timingCritical"`
	Category           StepCategory `json:"category" yaml:"category"`
}

// RiskAssessment is the derived risk and impact view of one step
type RiskAssessment struct {
	RiskLevel              RiskLevel     `json:"riskLevel" yaml:"riskLevel"`
	RiskType               string        `json:"riskType" yaml:"riskType"`
	ImpactScore            int           `json:"impactScore" yaml:"impactScore"`
	ConsequenceDescription string        `json:"consequenceDescription" yaml:"consequenceDescription"`
	MitigationGuidance     string        `json:"mitigationGuidance" yaml:"mitigationGuidance"`
	Context                RiskContext   `json:"context" yaml:"context"`
	RelatedSteps           []RelatedStep `json:"relatedSteps" yaml:"relatedSteps"`
	AdherenceImportance    int           `json:"adherenceImportance" yaml:"adherenceImportance"`
	Disclaimer             string        `json:"disclaimer" yaml:"disclaimer"`
}

// StepRiskReport wraps a risk assessment with the step it describes
type StepRiskReport struct {
	StepID          string         `json:"stepId" yaml:"stepId"`
	StepDescription string         `json:"stepDescription" yaml:"stepDescription"`
	RiskAssessment  RiskAssessment `json:"riskAssessment" yaml:"riskAssessment"`
}

// GraphNode is a step in the rendered dependency graph
type GraphNode struct {
	ID       string       `json:"id" yaml:"id"`
	Label    string       `json:"label" yaml:"label"`
	Category StepCategory `json:"category" yaml:"category"`
}

// GraphEdge points from a prerequisite to the step that depends on it
type GraphEdge struct {
	Source      string         `json:"source" yaml:"source"`
	Target      string         `json:"target" yaml:"target"`
	Type        DependencyType `json:"type" yaml:"type"`
	Criticality Criticality    `json:"criticality" yaml:"criticality"`
}

// DependencyGraph is the display graph of a care plan
type DependencyGraph struct {
	CarePlanID string      `json:"carePlanId" yaml:"carePlanId"`
	Nodes      []GraphNode `json:"nodes" yaml:"nodes"`
	Edges      []GraphEdge `json:"edges" yaml:"edges"`
}

// JourneyMetadata summarizes a care journey
type JourneyMetadata struct {
	TotalSteps        int `json:"totalSteps" yaml:"totalSteps"`
	TotalDependencies int `json:"totalDependencies" yaml:"totalDependencies"`
	HighRiskSteps     int `json:"highRiskSteps" yaml:"highRiskSteps"`
	AverageComplexity int `json:"averageComplexity" yaml:"averageComplexity"`
}

// CareJourney bundles a plan with its derived timeline and complexity
type CareJourney struct {
	CarePlan           *CarePlan           `json:"carePlan" yaml:"carePlan"`
	Steps              []*CareStep         `json:"steps" yaml:"steps"`
	Dependencies       []*Dependency       `json:"dependencies" yaml:"dependencies"`
	RiskData           []*RiskMetadata     `json:"riskData" yaml:"riskData"`
	Timeline           []TimelineDay       `json:"timeline" yaml:"timeline"`
	ComplexityAnalysis *ComplexityAnalysis `json:"complexityAnalysis" yaml:"complexityAnalysis"`
	Metadata           JourneyMetadata     `json:"metadata" yaml:"metadata"`
}
