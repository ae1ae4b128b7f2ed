package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

var dependencyColumns = []interface{}{
	"id", "source_step_id", "target_step_id", "dependency_type", "explanation",
	"criticality", "min_hours_before", "max_hours_before", "care_plan_id",
	"created_at", "updated_at",
}

// DependencyAdapter implements DependencyRepository
type DependencyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDependencyAdapter creates a new dependency adapter
func NewDependencyAdapter(client *postgres.Client) repositories.DependencyRepository {
	return &DependencyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new dependency
func (a *DependencyAdapter) Create(ctx context.Context, dep *entities.Dependency) error {
	if err := dep.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	now := time.Now()
	if dep.CreatedAt.IsZero() {
		dep.CreatedAt = now
	}
	dep.UpdatedAt = now

	var minHours, maxHours sql.NullInt64
	if tc := dep.TimingConstraint; tc != nil {
		minHours = nullInt(tc.MinHoursBefore)
		maxHours = nullInt(tc.MaxHoursBefore)
	}

	record := goqu.Record{
		"id":               dep.ID,
		"source_step_id":   dep.SourceStepID,
		"target_step_id":   dep.TargetStepID,
		"dependency_type":  string(dep.Type),
		"explanation":      dep.Explanation,
		"criticality":      string(dep.Criticality),
		"min_hours_before": minHours,
		"max_hours_before": maxHours,
		"care_plan_id":     dep.CarePlanID,
		"created_at":       dep.CreatedAt,
		"updated_at":       dep.UpdatedAt,
	}

	query, args, err := a.db.Insert("dependencies").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to create dependency", err)
	}
	return nil
}

// ListByCarePlan retrieves every dependency of a plan
func (a *DependencyAdapter) ListByCarePlan(ctx context.Context, carePlanID string) ([]*entities.Dependency, error) {
	query, args, err := a.db.Select(dependencyColumns...).
		From("dependencies").
		Where(goqu.Ex{"care_plan_id": carePlanID}).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.query(ctx, query, args)
}

// ListByStep retrieves the dependencies whose source or target is the step
func (a *DependencyAdapter) ListByStep(ctx context.Context, stepID string) ([]*entities.Dependency, error) {
	query, args, err := a.db.Select(dependencyColumns...).
		From("dependencies").
		Where(goqu.Or(
			goqu.C("source_step_id").Eq(stepID),
			goqu.C("target_step_id").Eq(stepID),
		)).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.query(ctx, query, args)
}

func (a *DependencyAdapter) query(ctx context.Context, query string, args []interface{}) ([]*entities.Dependency, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to query dependencies", err)
	}
	defer rows.Close()

	deps := make([]*entities.Dependency, 0)
	for rows.Next() {
		dep := &entities.Dependency{}
		var (
			depType, criticality string
			minHours, maxHours   sql.NullInt64
		)
		err := rows.Scan(
			&dep.ID,
			&dep.SourceStepID,
			&dep.TargetStepID,
			&depType,
			&dep.Explanation,
			&criticality,
			&minHours,
			&maxHours,
			&dep.CarePlanID,
			&dep.CreatedAt,
			&dep.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan dependency", err)
		}

		dep.Type = entities.DependencyType(depType)
		dep.Criticality = entities.Criticality(criticality)
		if minHours.Valid || maxHours.Valid {
			dep.TimingConstraint = &entities.TimingConstraint{
				MinHoursBefore: intPtr(minHours),
				MaxHoursBefore: intPtr(maxHours),
			}
		}
		deps = append(deps, dep)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to iterate dependencies", err)
	}
	return deps, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
