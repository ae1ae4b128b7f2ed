package entities

import "time"

// Simplification modes select which step text is rewritten
const (
	SimplifySimple   = "simple"
	SimplifyDetailed = "detailed"
)

// Explanation is patient-facing text describing why a care step exists
type Explanation struct {
	StepID        string    `json:"stepId"`
	LiteracyLevel string    `json:"literacyLevel"`
	Explanation   string    `json:"explanation"`
	Cached        bool      `json:"cached"`
	Fallback      bool      `json:"fallback,omitempty"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// Simplification is a plain-language rewrite of a care step's text
type Simplification struct {
	StepID           string    `json:"stepId"`
	LiteracyLevel    string    `json:"literacyLevel"`
	Mode             string    `json:"mode"`
	Original         string    `json:"original"`
	Simplified       string    `json:"simplified"`
	ReadabilityScore int       `json:"readabilityScore"`
	Cached           bool      `json:"cached"`
	Fallback         bool      `json:"fallback,omitempty"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// ContentValidation is the outcome of checking generated text against the content policy
type ContentValidation struct {
	Valid            bool     `json:"valid"`
	Issues           []string `json:"issues"`
	Warnings         []string `json:"warnings"`
	SanitizedContent string   `json:"sanitizedContent"`
}
