package services

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/application/loaders"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

// RiskService assesses the impact of skipping a single care step
type RiskService struct {
	stepRepo repositories.CareStepRepository
	depRepo  repositories.DependencyRepository
	riskRepo repositories.RiskMetadataRepository
	metrics  *observability.Metrics
}

// NewRiskService creates a new risk service
func NewRiskService(
	stepRepo repositories.CareStepRepository,
	depRepo repositories.DependencyRepository,
	riskRepo repositories.RiskMetadataRepository,
	metrics *observability.Metrics,
) *RiskService {
	return &RiskService{
		stepRepo: stepRepo,
		depRepo:  depRepo,
		riskRepo: riskRepo,
		metrics:  metrics,
	}
}

// GetStepRisk returns the risk assessment of a step. Related steps carry
// the other step's description when it can be loaded.
func (s *RiskService) GetStepRisk(ctx context.Context, stepID string) (report *entities.StepRiskReport, err error) {
	ctx, span := observability.StartSpan(ctx, "RiskService.GetStepRisk")
	defer span.End()
	start := time.Now()
	defer func() {
		observability.RecordAnalysisMetric(ctx, s.metrics, "risk", "", time.Since(start), err)
		observability.RecordError(span, err)
	}()

	if stepID == "" {
		return nil, apperrors.NewValidationError("step ID is required")
	}

	var (
		step *entities.CareStep
		deps []*entities.Dependency
		meta *entities.RiskMetadata
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		step, err = s.stepRepo.GetByID(ctx, stepID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		deps, err = s.depRepo.ListByStep(ctx, stepID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		meta, err = s.riskRepo.GetByStepID(ctx, stepID)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}
	if step == nil {
		return nil, apperrors.NewNotFoundError("care step " + stepID + " not found")
	}
	if verr := step.Validate(); verr != nil {
		return nil, apperrors.NewValidationError(verr.Error())
	}
	if meta != nil {
		if verr := meta.Validate(); verr != nil {
			return nil, apperrors.NewValidationError(verr.Error())
		}
	}

	assessment := analysis.AssessRisk(step, meta, deps)
	s.describeRelatedSteps(ctx, assessment.RelatedSteps)
	return analysis.NewStepRiskReport(step, assessment), nil
}

func (s *RiskService) describeRelatedSteps(ctx context.Context, related []entities.RelatedStep) {
	if len(related) == 0 {
		return
	}
	l := loaders.For(ctx)
	if l == nil {
		l = loaders.NewLoaders(s.stepRepo)
	}

	ids := make([]string, len(related))
	for i, r := range related {
		ids[i] = r.OtherStepID
	}
	found := l.LoadSteps(ctx, ids)
	for i := range related {
		if other, ok := found[related[i].OtherStepID]; ok {
			related[i].Description = other.Description
		}
	}
	if len(found) < len(uniqueStrings(ids)) {
		observability.LoggerFromContext(ctx).Debug().
			Int("related", len(ids)).
			Int("resolved", len(found)).
			Msg("some related steps could not be described")
	}
}

func uniqueStrings(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
