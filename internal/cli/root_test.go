package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zatekoja/careplannavigator/internal/cli"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

const kneeBundle = "../adapters/fixtures/testdata/knee_replacement.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestComplexityCommand(t *testing.T) {
	out, err := run(t, "complexity", "--file", kneeBundle, "--plan", "template_knee_001")
	require.NoError(t, err)

	var result entities.ComplexityAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 8, result.Factors.StepCount)
	assert.NotNil(t, result.Factors.FrequencyVariance)
	assert.Len(t, result.Breakdown, 4)
}

func TestComplexityCommand_ThreeFactor(t *testing.T) {
	out, err := run(t, "complexity", "--file", kneeBundle, "--plan", "template_knee_001", "--weighting", "three_factor")
	require.NoError(t, err)

	var result entities.ComplexityAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Nil(t, result.Factors.FrequencyVariance)
	assert.Len(t, result.Breakdown, 3)
}

func TestTimelineCommand_YAML(t *testing.T) {
	out, err := run(t, "timeline", "--file", kneeBundle, "--plan", "template_knee_001", "--format", "yaml", "--max-days", "30")
	require.NoError(t, err)

	var days []entities.TimelineDay
	require.NoError(t, yaml.Unmarshal([]byte(out), &days))
	require.Len(t, days, 30)
	assert.Equal(t, 1, days[0].Day)
}

func TestGraphCommand(t *testing.T) {
	out, err := run(t, "graph", "--file", kneeBundle, "--plan", "template_knee_001")
	require.NoError(t, err)

	var graph entities.DependencyGraph
	require.NoError(t, json.Unmarshal([]byte(out), &graph))
	assert.Len(t, graph.Nodes, 8)
	assert.Len(t, graph.Edges, 3)
}

func TestRiskCommand(t *testing.T) {
	out, err := run(t, "risk", "--file", kneeBundle, "--step", "step_knee_005")
	require.NoError(t, err)

	var report entities.StepRiskReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "step_knee_005", report.StepID)
	assert.Equal(t, "safety_concern", report.RiskAssessment.RiskType)
}

func TestSummaryCommand(t *testing.T) {
	t.Run("json for a caregiver", func(t *testing.T) {
		out, err := run(t, "summary", "--file", kneeBundle, "--plan", "template_knee_001", "--audience", "caregiver")
		require.NoError(t, err)

		var result entities.CarePlanSummary
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, entities.AudienceCaregiver, result.Audience)
		assert.Equal(t, 8, result.Summary.Overview.TotalSteps)
		assert.Len(t, result.Summary.Recommendations, 4)
	})

	t.Run("plain text", func(t *testing.T) {
		out, err := run(t, "summary", "--file", kneeBundle, "--plan", "template_knee_001", "--format", "text")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(out, "CARE PLAN SUMMARY\n"))
		assert.Contains(t, out, "KEY STATISTICS")
	})

	t.Run("unknown audience", func(t *testing.T) {
		_, err := run(t, "summary", "--file", kneeBundle, "--plan", "template_knee_001", "--audience", "nurse")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestCommandErrors(t *testing.T) {
	_, err := run(t, "complexity", "--file", kneeBundle)
	assert.EqualError(t, err, "--plan is required")

	_, err = run(t, "complexity", "--file", kneeBundle, "--plan", "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	_, err = run(t, "graph", "--file", kneeBundle, "--plan", "template_knee_001", "--format", "xml")
	assert.Error(t, err)

	_, err = run(t, "graph", "--file", kneeBundle, "--plan", "template_knee_001", "--format", "text")
	assert.EqualError(t, err, "--format text is only supported by summary")

	_, err = run(t, "risk", "--file", "does-not-exist.yaml", "--step", "x")
	assert.Error(t, err)
}
