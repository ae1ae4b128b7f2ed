package openai

import "fmt"

const explanationSystemPrompt = `You are an educational healthcare assistant helping patients understand their existing care plan.

CRITICAL SAFETY RULES:
- Never diagnose conditions
- Never prescribe medications
- Never recommend treatments
- Never interpret symptoms
- Frame everything as educational information about existing care instructions
- Include appropriate disclaimers`

const plainLanguageSystemPrompt = `You rewrite medical instructions from an existing care plan in plain language.

RULES:
- Replace medical jargon with everyday terms
- Use shorter sentences
- Break complex instructions into simple steps
- Maintain all critical safety information
- Keep the meaning identical`

// readingGrade maps a literacy level to the target reading grade
func readingGrade(literacyLevel string) string {
	switch literacyLevel {
	case "basic":
		return "6th-8th grade"
	case "intermediate":
		return "9th-10th grade"
	case "advanced":
		return "11th-12th grade"
	default:
		return "8th grade"
	}
}

func buildExplanationUserPrompt(stepDescription, medicalContext, literacyLevel string) string {
	return fmt.Sprintf(`TASK: Explain why this care step exists in plain language appropriate for %s literacy level.

CARE STEP: %s

MEDICAL CONTEXT: %s

Provide a clear, educational explanation (2-3 sentences) focusing on:
1. The purpose of this care activity
2. How it supports the overall recovery/management
3. Why it's important to follow as prescribed

End with: "Always follow your healthcare provider's specific instructions."`,
		literacyLevel, stepDescription, medicalContext)
}

func buildPlainLanguageUserPrompt(text, literacyLevel string) string {
	return fmt.Sprintf(`Transform the following medical instruction into plain language appropriate for %s reading level.

ORIGINAL TEXT:
%s

Provide only the plain-language version, no explanations.`,
		readingGrade(literacyLevel), text)
}
