package services

import (
	"context"
	"time"

	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

// CareAnalysisService loads a care plan and runs the plan-level analyzers on it
type CareAnalysisService struct {
	loader          planLoader
	riskRepo        repositories.RiskMetadataRepository
	scorer          *analysis.Scorer
	timelineMaxDays int
	metrics         *observability.Metrics
}

// NewCareAnalysisService creates a new care analysis service
func NewCareAnalysisService(
	planRepo repositories.CarePlanRepository,
	stepRepo repositories.CareStepRepository,
	depRepo repositories.DependencyRepository,
	riskRepo repositories.RiskMetadataRepository,
	scorer *analysis.Scorer,
	timelineMaxDays int,
	metrics *observability.Metrics,
) *CareAnalysisService {
	return &CareAnalysisService{
		loader:          planLoader{plans: planRepo, steps: stepRepo, deps: depRepo},
		riskRepo:        riskRepo,
		scorer:          scorer,
		timelineMaxDays: timelineMaxDays,
		metrics:         metrics,
	}
}

// Weighting returns the name of the scorer's weighting preset
func (s *CareAnalysisService) Weighting() string {
	return s.scorer.Weights().Name
}

// GetComplexity scores a care plan
func (s *CareAnalysisService) GetComplexity(ctx context.Context, planID string) (result *entities.ComplexityAnalysis, err error) {
	ctx, span := observability.StartSpan(ctx, "CareAnalysisService.GetComplexity")
	defer span.End()
	start := time.Now()
	defer func() {
		observability.RecordAnalysisMetric(ctx, s.metrics, "complexity", s.Weighting(), time.Since(start), err)
		observability.RecordError(span, err)
	}()

	rec, err := s.loader.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	return s.scorer.Analyze(rec.steps, rec.deps), nil
}

// GetTimeline projects a care plan's steps onto its days
func (s *CareAnalysisService) GetTimeline(ctx context.Context, planID string) (timeline []entities.TimelineDay, err error) {
	ctx, span := observability.StartSpan(ctx, "CareAnalysisService.GetTimeline")
	defer span.End()
	start := time.Now()
	defer func() {
		observability.RecordAnalysisMetric(ctx, s.metrics, "timeline", s.Weighting(), time.Since(start), err)
		observability.RecordError(span, err)
	}()

	rec, err := s.loader.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	return analysis.BuildTimeline(rec.steps, rec.plan.DurationDays, s.timelineMaxDays), nil
}

// GetJourney returns a care plan with its records, timeline, complexity and summary
func (s *CareAnalysisService) GetJourney(ctx context.Context, planID string) (journey *entities.CareJourney, err error) {
	ctx, span := observability.StartSpan(ctx, "CareAnalysisService.GetJourney")
	defer span.End()
	start := time.Now()
	defer func() {
		observability.RecordAnalysisMetric(ctx, s.metrics, "journey", s.Weighting(), time.Since(start), err)
		observability.RecordError(span, err)
	}()

	rec, err := s.loader.load(ctx, planID)
	if err != nil {
		return nil, err
	}

	riskData := []*entities.RiskMetadata{}
	if len(rec.steps) > 0 {
		riskData, err = s.riskRepo.ListByStepIDs(ctx, stepIDs(rec.steps))
		if err != nil {
			return nil, err
		}
	}
	for _, m := range riskData {
		if verr := m.Validate(); verr != nil {
			return nil, apperrors.NewValidationError(verr.Error())
		}
	}

	return &entities.CareJourney{
		CarePlan:           rec.plan,
		Steps:              rec.steps,
		Dependencies:       rec.deps,
		RiskData:           riskData,
		Timeline:           analysis.BuildTimeline(rec.steps, rec.plan.DurationDays, s.timelineMaxDays),
		ComplexityAnalysis: s.scorer.Analyze(rec.steps, rec.deps),
		Metadata:           analysis.SummarizeJourney(rec.steps, rec.deps),
	}, nil
}
