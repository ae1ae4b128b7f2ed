package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/providers"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

// DefaultExplanationTTL is how long generated text stays cached
const DefaultExplanationTTL = 7 * 24 * 60 * 60

const genericExplanation = "This care step is an important part of your prescribed treatment plan. " +
	"It has been included to support your recovery and overall health. " +
	"Please follow your healthcare provider's specific instructions and reach out to them if you have any questions about this activity."

var categoryExplanations = map[entities.StepCategory]string{
	entities.CategoryMedication: "This medication step is part of the treatment plan your care team created. " +
		"Taking it at the planned times helps keep its effect steady so the rest of your recovery can stay on track.",
	entities.CategoryExercise: "This exercise step helps rebuild strength, movement and endurance over the course of your plan. " +
		"Doing it regularly makes later steps in your recovery easier.",
	entities.CategoryMonitoring: "This monitoring step gives you and your care team information about how your recovery is going. " +
		"Regular checks make it easier to notice changes early.",
	entities.CategoryAppointment: "This appointment lets your care team check your progress in person and update your plan when needed.",
	entities.CategoryLifestyle:   "This lifestyle step supports your overall health and helps the other parts of your care plan work well together.",
}

// ExplanationService produces patient-facing explanations and plain-language
// rewrites of care steps. Text generation failures never fail a request:
// educational fallback text is returned instead.
type ExplanationService struct {
	stepRepo   repositories.CareStepRepository
	provider   providers.TextGenerationProvider
	cache      providers.CacheProvider
	guard      *ContentGuard
	ttlSeconds int
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewExplanationService creates a new explanation service. provider and
// cache may be nil; without a provider every response is fallback text.
func NewExplanationService(
	stepRepo repositories.CareStepRepository,
	provider providers.TextGenerationProvider,
	cache providers.CacheProvider,
	guard *ContentGuard,
	ttlSeconds int,
	metrics *observability.Metrics,
) *ExplanationService {
	if guard == nil {
		guard = NewContentGuard(GuardConfig{})
	}
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultExplanationTTL
	}
	return &ExplanationService{
		stepRepo:   stepRepo,
		provider:   provider,
		cache:      cache,
		guard:      guard,
		ttlSeconds: ttlSeconds,
		metrics:    metrics,
		now:        time.Now,
	}
}

// IsLiteracyLevel reports whether level is a supported literacy level
func IsLiteracyLevel(level string) bool {
	switch level {
	case providers.LiteracyBasic, providers.LiteracyIntermediate, providers.LiteracyAdvanced:
		return true
	}
	return false
}

// ExplanationCacheKey is the cache key of one generated text
func ExplanationCacheKey(operation, stepID, literacyLevel string) string {
	sum := sha256.Sum256([]byte(operation + "|" + stepID + "|" + literacyLevel))
	return "llm:" + hex.EncodeToString(sum[:])
}

// Explain describes why a care step exists
func (s *ExplanationService) Explain(ctx context.Context, stepID, literacyLevel string) (*entities.Explanation, error) {
	if err := validateTextRequest(stepID, literacyLevel); err != nil {
		return nil, err
	}
	logger := observability.LoggerFromContext(ctx)
	key := ExplanationCacheKey("explain", stepID, literacyLevel)

	var cached entities.Explanation
	if s.readCache(ctx, "explain", key, &cached) {
		cached.Cached = true
		return &cached, nil
	}

	step, err := s.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, err
	}

	result := &entities.Explanation{
		StepID:        stepID,
		LiteracyLevel: literacyLevel,
		GeneratedAt:   s.now(),
	}

	text, reason := s.generate(ctx, func(ctx context.Context) (string, error) {
		return s.provider.Explain(ctx, step.Description, step.MedicalContext, literacyLevel)
	}, ContentExplanation)
	if reason != "" {
		observability.RecordFallback(ctx, s.metrics, "explain", reason)
		logger.Warn().Str("step_id", stepID).Str("reason", reason).Msg("serving fallback explanation")
		result.Explanation = fallbackExplanation(step.Category)
		result.Fallback = true
		return result, nil
	}

	result.Explanation = text
	s.writeCache(ctx, key, result)
	return result, nil
}

// Simplify rewrites a step's description (simple mode) or instructions
// (detailed mode) in plain language
func (s *ExplanationService) Simplify(ctx context.Context, stepID, literacyLevel, mode string) (*entities.Simplification, error) {
	if err := validateTextRequest(stepID, literacyLevel); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = entities.SimplifySimple
	}
	if mode != entities.SimplifySimple && mode != entities.SimplifyDetailed {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown simplification mode %q", mode))
	}

	logger := observability.LoggerFromContext(ctx)
	operation := "simplify"
	if mode == entities.SimplifyDetailed {
		operation = "simplify-detailed"
	}
	key := ExplanationCacheKey(operation, stepID, literacyLevel)

	var cached entities.Simplification
	if s.readCache(ctx, operation, key, &cached) {
		cached.Cached = true
		return &cached, nil
	}

	step, err := s.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, err
	}

	original := step.Description
	if mode == entities.SimplifyDetailed && step.Instructions != "" {
		original = step.Instructions
	}

	result := &entities.Simplification{
		StepID:        stepID,
		LiteracyLevel: literacyLevel,
		Mode:          mode,
		Original:      original,
		GeneratedAt:   s.now(),
	}

	text, reason := s.generate(ctx, func(ctx context.Context) (string, error) {
		return s.provider.Simplify(ctx, original, literacyLevel)
	}, ContentInstruction)
	if reason != "" {
		observability.RecordFallback(ctx, s.metrics, operation, reason)
		logger.Warn().Str("step_id", stepID).Str("reason", reason).Msg("serving original text as simplification")
		result.Simplified = original
		result.ReadabilityScore = ReadabilityScore(original)
		result.Fallback = true
		return result, nil
	}

	result.Simplified = text
	result.ReadabilityScore = ReadabilityScore(text)
	s.writeCache(ctx, key, result)
	return result, nil
}

// ValidateContent checks arbitrary text against the content policy
func (s *ExplanationService) ValidateContent(content, contentType string) (entities.ContentValidation, error) {
	if content == "" {
		return entities.ContentValidation{}, apperrors.NewValidationError("content is required")
	}
	if !IsContentType(contentType) {
		return entities.ContentValidation{}, apperrors.NewValidationError(fmt.Sprintf("unknown content type %q", contentType))
	}
	return s.guard.Validate(content, contentType), nil
}

// generate calls the provider and screens its output. A non-empty reason
// means the caller must fall back.
func (s *ExplanationService) generate(ctx context.Context, call func(context.Context) (string, error), contentType string) (string, string) {
	if s.provider == nil {
		return "", "provider_unavailable"
	}

	text, err := call(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("text generation failed")
		return "", "provider_error"
	}

	validation := s.guard.Validate(text, contentType)
	if !validation.Valid {
		observability.LoggerFromContext(ctx).Warn().Strs("issues", validation.Issues).Msg("generated text rejected by content guard")
		return "", "unsafe_output"
	}
	return validation.SanitizedContent, ""
}

func (s *ExplanationService) readCache(ctx context.Context, namespace, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("cache_key", key).Msg("explanation cache read failed")
		return false
	}
	if data == nil {
		observability.RecordCacheMiss(ctx, s.metrics, namespace)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("cache_key", key).Msg("failed to unmarshal cached explanation")
		return false
	}
	observability.RecordCacheHit(ctx, s.metrics, namespace)
	return true
}

func (s *ExplanationService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttlSeconds); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("cache_key", key).Msg("failed to cache explanation")
	}
}

func validateTextRequest(stepID, literacyLevel string) error {
	if stepID == "" {
		return apperrors.NewValidationError("step ID is required")
	}
	if !IsLiteracyLevel(literacyLevel) {
		return apperrors.NewValidationError(fmt.Sprintf("literacy level must be basic, intermediate or advanced, got %q", literacyLevel))
	}
	return nil
}

func fallbackExplanation(category entities.StepCategory) string {
	if text, ok := categoryExplanations[category]; ok {
		return text + " " + genericExplanation
	}
	return genericExplanation
}
