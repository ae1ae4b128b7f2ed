package providers

import "context"

// Literacy levels accepted by the text generation provider
const (
	LiteracyBasic        = "basic"
	LiteracyIntermediate = "intermediate"
	LiteracyAdvanced     = "advanced"
)

// TextGenerationProvider turns care step text into patient-facing educational text.
// Implementations return an EXTERNAL AppError when the service cannot be reached.
type TextGenerationProvider interface {
	// Explain describes why a care step exists, for the given literacy level
	Explain(ctx context.Context, stepDescription, medicalContext, literacyLevel string) (string, error)

	// Simplify rewrites instructions in plain language for the given literacy level
	Simplify(ctx context.Context, text, literacyLevel string) (string, error)
}
