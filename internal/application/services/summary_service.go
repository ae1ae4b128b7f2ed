package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

// SummaryService builds audience-specific overviews of care plans
type SummaryService struct {
	loader   planLoader
	riskRepo repositories.RiskMetadataRepository
	scorer   *analysis.Scorer
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	planRepo repositories.CarePlanRepository,
	stepRepo repositories.CareStepRepository,
	depRepo repositories.DependencyRepository,
	riskRepo repositories.RiskMetadataRepository,
	scorer *analysis.Scorer,
	metrics *observability.Metrics,
) *SummaryService {
	return &SummaryService{
		loader:   planLoader{plans: planRepo, steps: stepRepo, deps: depRepo},
		riskRepo: riskRepo,
		scorer:   scorer,
		metrics:  metrics,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Summarize aggregates a care plan for the given audience. An empty
// audience means doctor.
func (s *SummaryService) Summarize(ctx context.Context, planID, audience string) (result *entities.CarePlanSummary, err error) {
	ctx, span := observability.StartSpan(ctx, "SummaryService.Summarize")
	defer span.End()
	start := time.Now()
	defer func() {
		observability.RecordAnalysisMetric(ctx, s.metrics, "summary", s.scorer.Weights().Name, time.Since(start), err)
		observability.RecordError(span, err)
	}()

	aud := entities.SummaryAudience(strings.ToLower(strings.TrimSpace(audience)))
	if aud == "" {
		aud = entities.AudienceDoctor
	}
	if !aud.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown audience %q: must be doctor, patient or caregiver", audience))
	}

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

	complexity := s.scorer.Analyze(rec.steps, rec.deps)
	return &entities.CarePlanSummary{
		CarePlanID:  rec.plan.ID,
		Summary:     analysis.BuildCareSummary(rec.plan, rec.steps, rec.deps, riskData, complexity, aud),
		GeneratedAt: s.now(),
		Audience:    aud,
	}, nil
}
