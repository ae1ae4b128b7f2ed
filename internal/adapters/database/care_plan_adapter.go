package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

var carePlanColumns = []interface{}{
	"id", "name", "description", "duration_days",
	"overall_score", "step_count", "avg_dependency_depth", "concurrent_activities",
	"tags", "created_at", "updated_at",
}

// CarePlanAdapter implements CarePlanRepository
type CarePlanAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCarePlanAdapter creates a new care plan adapter
func NewCarePlanAdapter(client *postgres.Client) repositories.CarePlanRepository {
	return &CarePlanAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new care plan
func (a *CarePlanAdapter) Create(ctx context.Context, plan *entities.CarePlan) error {
	if err := plan.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	record := goqu.Record{
		"id":                    plan.ID,
		"name":                  plan.Name,
		"description":           plan.Description,
		"duration_days":         plan.DurationDays,
		"overall_score":         plan.ComplexityMetrics.OverallScore,
		"step_count":            plan.ComplexityMetrics.StepCount,
		"avg_dependency_depth":  plan.ComplexityMetrics.AvgDependencyDepth,
		"concurrent_activities": plan.ComplexityMetrics.ConcurrentActivities,
		"tags":                  pq.Array(nonNil(plan.Tags)),
		"created_at":            plan.CreatedAt,
		"updated_at":            plan.UpdatedAt,
	}

	query, args, err := a.db.Insert("care_plans").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to create care plan", err)
	}
	return nil
}

// GetByID retrieves a care plan by ID
func (a *CarePlanAdapter) GetByID(ctx context.Context, id string) (*entities.CarePlan, error) {
	query, args, err := a.db.Select(carePlanColumns...).
		From("care_plans").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	plan, err := scanCarePlan(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("care plan %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewExternalError("failed to get care plan", err)
	}
	return plan, nil
}

// List retrieves all care plans ordered by name
func (a *CarePlanAdapter) List(ctx context.Context) ([]*entities.CarePlan, error) {
	query, args, err := a.db.Select(carePlanColumns...).
		From("care_plans").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to list care plans", err)
	}
	defer rows.Close()

	plans := make([]*entities.CarePlan, 0)
	for rows.Next() {
		plan, err := scanCarePlan(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan care plan", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to iterate care plans", err)
	}
	return plans, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCarePlan(row rowScanner) (*entities.CarePlan, error) {
	plan := &entities.CarePlan{}
	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.Description,
		&plan.DurationDays,
		&plan.ComplexityMetrics.OverallScore,
		&plan.ComplexityMetrics.StepCount,
		&plan.ComplexityMetrics.AvgDependencyDepth,
		&plan.ComplexityMetrics.ConcurrentActivities,
		pq.Array(&plan.Tags),
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
