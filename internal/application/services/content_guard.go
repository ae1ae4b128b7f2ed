package services

import (
	"regexp"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// Content types checked by the guard. Explanations and summaries must
// mention the healthcare provider.
const (
	ContentExplanation = "explanation"
	ContentSummary     = "summary"
	ContentInstruction = "instruction"
	ContentGeneral     = "general"
)

// ProviderDisclaimer is appended to explanations that do not refer the
// reader back to their healthcare provider
const ProviderDisclaimer = "Always follow your healthcare provider's specific instructions and consult them with any questions or concerns."

// IsContentType reports whether t is a known content type
func IsContentType(t string) bool {
	switch t {
	case ContentExplanation, ContentSummary, ContentInstruction, ContentGeneral:
		return true
	}
	return false
}

type contentRule struct {
	pattern *regexp.Regexp
	issue   string
}

// "prescribed" is allowed; care instructions routinely say "as prescribed".
var prohibitedContent = []contentRule{
	{regexp.MustCompile(`(?i)\bdiagnos(e|is|ed|ing)\b`), "Contains diagnostic language"},
	{regexp.MustCompile(`(?i)\bprescrib(e|ing)\b`), "Contains prescriptive language"},
	{regexp.MustCompile(`(?i)\byou should (take|start|stop|increase|decrease)\b`), "Contains directive medical advice"},
	{regexp.MustCompile(`(?i)\bi recommend\b`), "Contains personal medical recommendation"},
	{regexp.MustCompile(`(?i)\bthis will cure\b`), "Contains cure claim"},
	{regexp.MustCompile(`(?i)\byou have (a |an )?\w+ (disease|condition|disorder)\b`), "Contains diagnosis"},
	{regexp.MustCompile(`(?i)\bconsult me instead of\b`), "Discourages professional consultation"},
	{regexp.MustCompile(`(?i)\bdon'?t (see|consult|talk to) (a |your )?doctor\b`), "Discourages medical consultation"},
	{regexp.MustCompile(`(?i)\b(deadly|fatal|life-threatening|severe danger)\b`), "Contains potentially alarmist language"},
}

var (
	providerReference  = regexp.MustCompile(`(?i)healthcare provider|medical professional|qualified healthcare|consult (with |your )?doctor`)
	educationalFraming = regexp.MustCompile(`(?i)educational|information|understanding|learn|example`)
)

// GuardConfig bounds the length of acceptable content
type GuardConfig struct {
	MinLength int
	MaxLength int
}

// ContentGuard keeps generated text educational
type ContentGuard struct {
	config GuardConfig
}

// NewContentGuard creates a guard, filling unset limits with defaults
func NewContentGuard(config GuardConfig) *ContentGuard {
	if config.MinLength <= 0 {
		config.MinLength = 20
	}
	if config.MaxLength <= 0 {
		config.MaxLength = 2000
	}
	return &ContentGuard{config: config}
}

// Validate checks content against the prohibited patterns. Issues make the
// content invalid; warnings do not.
func (g *ContentGuard) Validate(content, contentType string) entities.ContentValidation {
	result := entities.ContentValidation{
		Issues:           []string{},
		Warnings:         []string{},
		SanitizedContent: content,
	}

	for _, rule := range prohibitedContent {
		if rule.pattern.MatchString(content) {
			result.Issues = append(result.Issues, rule.issue)
		}
	}

	if contentType == ContentExplanation || contentType == ContentSummary {
		if !providerReference.MatchString(content) {
			result.Warnings = append(result.Warnings, "Missing healthcare provider disclaimer")
			result.SanitizedContent += "\n\n" + ProviderDisclaimer
		}
	}

	if !educationalFraming.MatchString(content) {
		result.Warnings = append(result.Warnings, "Lacks educational framing")
	}

	if len(content) < g.config.MinLength {
		result.Issues = append(result.Issues, "Content too short to be meaningful")
	}
	if len(content) > g.config.MaxLength {
		result.Warnings = append(result.Warnings, "Content exceeds recommended length")
	}

	result.Valid = len(result.Issues) == 0
	return result
}
