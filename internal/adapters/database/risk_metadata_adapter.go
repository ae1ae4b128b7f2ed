package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	"github.com/zatekoja/careplannavigator/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

var riskMetadataColumns = []interface{}{
	"id", "step_id", "risk_type", "consequence_description", "mitigation_guidance",
	"disclaimer", "adherence_importance", "consequence_severity", "reversibility",
	"created_at", "updated_at",
}

// RiskMetadataAdapter implements RiskMetadataRepository
type RiskMetadataAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRiskMetadataAdapter creates a new risk metadata adapter
func NewRiskMetadataAdapter(client *postgres.Client) repositories.RiskMetadataRepository {
	return &RiskMetadataAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores risk metadata for a step
func (a *RiskMetadataAdapter) Create(ctx context.Context, meta *entities.RiskMetadata) error {
	if err := meta.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	now := time.Now()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = now
	}
	meta.UpdatedAt = now

	record := goqu.Record{
		"id":                      meta.ID,
		"step_id":                 meta.StepID,
		"risk_type":               meta.RiskType,
		"consequence_description": meta.ConsequenceDescription,
		"mitigation_guidance":     meta.MitigationGuidance,
		"disclaimer":              meta.Disclaimer,
		"adherence_importance":    meta.ImpactFactors.AdherenceImportance,
		"consequence_severity":    meta.ImpactFactors.ConsequenceSeverity,
		"reversibility":           meta.ImpactFactors.Reversibility,
		"created_at":              meta.CreatedAt,
		"updated_at":              meta.UpdatedAt,
	}

	query, args, err := a.db.Insert("risk_metadata").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewExternalError("failed to create risk metadata", err)
	}
	return nil
}

// GetByStepID retrieves a step's risk metadata, nil when it has none
func (a *RiskMetadataAdapter) GetByStepID(ctx context.Context, stepID string) (*entities.RiskMetadata, error) {
	query, args, err := a.db.Select(riskMetadataColumns...).
		From("risk_metadata").
		Where(goqu.Ex{"step_id": stepID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	meta, err := scanRiskMetadata(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewExternalError("failed to get risk metadata", err)
	}
	return meta, nil
}

// ListByStepIDs retrieves the risk metadata present for the given steps
func (a *RiskMetadataAdapter) ListByStepIDs(ctx context.Context, stepIDs []string) ([]*entities.RiskMetadata, error) {
	if len(stepIDs) == 0 {
		return []*entities.RiskMetadata{}, nil
	}

	query, args, err := a.db.Select(riskMetadataColumns...).
		From("risk_metadata").
		Where(goqu.Ex{"step_id": stepIDs}).
		Order(goqu.I("step_id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to list risk metadata", err)
	}
	defer rows.Close()

	result := make([]*entities.RiskMetadata, 0)
	for rows.Next() {
		meta, err := scanRiskMetadata(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan risk metadata", err)
		}
		result = append(result, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to iterate risk metadata", err)
	}
	return result, nil
}

func scanRiskMetadata(row rowScanner) (*entities.RiskMetadata, error) {
	meta := &entities.RiskMetadata{}
	err := row.Scan(
		&meta.ID,
		&meta.StepID,
		&meta.RiskType,
		&meta.ConsequenceDescription,
		&meta.MitigationGuidance,
		&meta.Disclaimer,
		&meta.ImpactFactors.AdherenceImportance,
		&meta.ImpactFactors.ConsequenceSeverity,
		&meta.ImpactFactors.Reversibility,
		&meta.CreatedAt,
		&meta.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return meta, nil
}
