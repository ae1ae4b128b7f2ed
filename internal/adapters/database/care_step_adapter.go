package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

var careStepColumns = []interface{}{
	"id", "care_plan_id", "description", "medical_context",
	"frequency", "time_of_day", "duration_minutes", "start_day", "end_day",
	"category", "instructions", "dependencies", "risk_level", "complexity_score",
	"estimated_time", "required_supplies", "warning_flags",
	"created_at", "updated_at",
}

// CareStepAdapter implements CareStepRepository
type CareStepAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCareStepAdapter creates a new care step adapter
func NewCareStepAdapter(client *postgres.Client) repositories.CareStepRepository {
	return &CareStepAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new care step
func (a *CareStepAdapter) Create(ctx context.Context, step *entities.CareStep) error {
	if err := step.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	now := time.Now()
	if step.CreatedAt.IsZero() {
		step.CreatedAt = now
	}
	step.UpdatedAt = now

	duration := sql.NullInt64{}
	if step.Timing.DurationMinutes != nil {
		duration = sql.NullInt64{Int64: int64(*step.Timing.DurationMinutes), Valid: true}
	}

	record := goqu.Record{
		"id":                step.ID,
		"care_plan_id":      step.CarePlanID,
		"description":       step.Description,
		"medical_context":   step.MedicalContext,
		"frequency":         step.Timing.Frequency,
		"time_of_day":       pq.Array(nonNil(step.Timing.TimeOfDay)),
		"duration_minutes":  duration,
		"start_day":         step.Timing.StartDay,
		"end_day":           step.Timing.EndDay,
		"category":          string(step.Category),
		"instructions":      step.Instructions,
		"dependencies":      pq.Array(nonNil(step.Dependencies)),
		"risk_level":        string(step.RiskLevel),
		"complexity_score":  step.ComplexityScore,
		"estimated_time":    step.Metadata.EstimatedTime,
		"required_supplies": pq.Array(nonNil(step.Metadata.RequiredSupplies)),
		"warning_flags":     pq.Array(nonNil(step.Metadata.WarningFlags)),
		"created_at":        step.CreatedAt,
		"updated_at":        step.UpdatedAt,
	}

	query, args, err := a.db.Insert("care_steps").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to create care step", err)
	}
	return nil
}

// GetByID retrieves a care step by ID
func (a *CareStepAdapter) GetByID(ctx context.Context, id string) (*entities.CareStep, error) {
	query, args, err := a.db.Select(careStepColumns...).
		From("care_steps").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	step, err := scanCareStep(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("care step %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewExternalError("failed to get care step", err)
	}
	return step, nil
}

// GetByIDs retrieves the care steps that exist among ids
func (a *CareStepAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.CareStep, error) {
	if len(ids) == 0 {
		return []*entities.CareStep{}, nil
	}

	query, args, err := a.db.Select(careStepColumns...).
		From("care_steps").
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.query(ctx, query, args)
}

// ListByCarePlan retrieves a plan's steps ordered by start day
func (a *CareStepAdapter) ListByCarePlan(ctx context.Context, carePlanID string) ([]*entities.CareStep, error) {
	query, args, err := a.db.Select(careStepColumns...).
		From("care_steps").
		Where(goqu.Ex{"care_plan_id": carePlanID}).
		Order(goqu.I("start_day").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.query(ctx, query, args)
}

func (a *CareStepAdapter) query(ctx context.Context, query string, args []interface{}) ([]*entities.CareStep, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to query care steps", err)
	}
	defer rows.Close()

	steps := make([]*entities.CareStep, 0)
	for rows.Next() {
		step, err := scanCareStep(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan care step", err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to iterate care steps", err)
	}
	return steps, nil
}

func scanCareStep(row rowScanner) (*entities.CareStep, error) {
	step := &entities.CareStep{}
	var (
		duration  sql.NullInt64
		category  string
		riskLevel string
	)

	err := row.Scan(
		&step.ID,
		&step.CarePlanID,
		&step.Description,
		&step.MedicalContext,
		&step.Timing.Frequency,
		pq.Array(&step.Timing.TimeOfDay),
		&duration,
		&step.Timing.StartDay,
		&step.Timing.EndDay,
		&category,
		&step.Instructions,
		pq.Array(&step.Dependencies),
		&riskLevel,
		&step.ComplexityScore,
		&step.Metadata.EstimatedTime,
		pq.Array(&step.Metadata.RequiredSupplies),
		pq.Array(&step.Metadata.WarningFlags),
		&step.CreatedAt,
		&step.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if duration.Valid {
		minutes := int(duration.Int64)
		step.Timing.DurationMinutes = &minutes
	}
	step.Category = entities.StepCategory(category)
	step.RiskLevel = entities.RiskLevel(riskLevel)
	return step, nil
}
