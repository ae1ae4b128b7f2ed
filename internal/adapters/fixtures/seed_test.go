package fixtures_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careplannavigator/internal/adapters/fixtures"
)

func emptyTarget(t *testing.T) (*fixtures.Store, fixtures.Target) {
	t.Helper()
	store, err := fixtures.NewStore(&fixtures.Bundle{})
	require.NoError(t, err)
	return store, fixtures.Target{
		Plans:        store.CarePlans(),
		Steps:        store.CareSteps(),
		Dependencies: store.Dependencies(),
		RiskMetadata: store.RiskMetadata(),
	}
}

func TestSeed_WritesEveryRecord(t *testing.T) {
	bundle, err := fixtures.LoadFile("testdata/knee_replacement.yaml")
	require.NoError(t, err)
	store, target := emptyTarget(t)
	ctx := context.Background()

	summary, err := fixtures.Seed(ctx, bundle, target)
	require.NoError(t, err)
	assert.Equal(t, fixtures.SeedSummary{CarePlans: 1, CareSteps: 8, Dependencies: 3, RiskMetadata: 2}, *summary)

	steps, err := store.CareSteps().ListByCarePlan(ctx, "template_knee_001")
	require.NoError(t, err)
	assert.Len(t, steps, 8)

	deps, err := store.Dependencies().ListByCarePlan(ctx, "template_knee_001")
	require.NoError(t, err)
	assert.Len(t, deps, 3)
}

func TestSeed_GeneratesMissingRiskMetadataIDs(t *testing.T) {
	bundle, err := fixtures.LoadFile("testdata/knee_replacement.yaml")
	require.NoError(t, err)
	bundle.RiskMetadata[0].ID = ""
	_, target := emptyTarget(t)

	_, err = fixtures.Seed(context.Background(), bundle, target)
	require.NoError(t, err)

	meta, err := target.RiskMetadata.GetByStepID(context.Background(), bundle.RiskMetadata[0].StepID)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Len(t, meta.ID, 36)
}

func TestSeed_RejectsInvalidBundleBeforeWriting(t *testing.T) {
	bundle, err := fixtures.LoadFile("testdata/knee_replacement.yaml")
	require.NoError(t, err)
	bundle.Dependencies[0].TargetStepID = "step_missing"
	store, target := emptyTarget(t)

	_, err = fixtures.Seed(context.Background(), bundle, target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step step_missing")

	plans, err := store.CarePlans().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}
