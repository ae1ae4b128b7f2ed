package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/careplannavigator/internal/api/handlers"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) GetComplexity(ctx context.Context, planID string) (*entities.ComplexityAnalysis, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ComplexityAnalysis), args.Error(1)
}

func (m *MockAnalyzer) GetJourney(ctx context.Context, planID string) (*entities.CareJourney, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CareJourney), args.Error(1)
}

func (m *MockAnalyzer) BuildGraph(ctx context.Context, planID string) (*entities.DependencyGraph, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DependencyGraph), args.Error(1)
}

func (m *MockAnalyzer) GetStepRisk(ctx context.Context, stepID string) (*entities.StepRiskReport, error) {
	args := m.Called(ctx, stepID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StepRiskReport), args.Error(1)
}

// serve routes through a ServeMux so path values are populated
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestAnalysisHandler_GetComplexity(t *testing.T) {
	analyzer := new(MockAnalyzer)
	handler := handlers.NewAnalysisHandler(analyzer, analyzer, analyzer)

	analyzer.On("GetComplexity", mock.Anything, "plan-1").Return(&entities.ComplexityAnalysis{
		OverallScore: 37,
		Level:        entities.ComplexityModerate,
	}, nil)

	w := serve("GET /api/complexity/{carePlanId}", handler.GetComplexity,
		httptest.NewRequest(http.MethodGet, "/api/complexity/plan-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.EqualValues(t, 37, body["overallScore"])
	assert.Equal(t, "moderate", body["level"])
	analyzer.AssertExpectations(t)
}

func TestAnalysisHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", apperrors.NewNotFoundError("care plan not found"), http.StatusNotFound, "care plan not found"},
		{"validation", apperrors.NewValidationError("dependency references unknown step"), http.StatusBadRequest, "dependency references unknown step"},
		{"external", apperrors.NewExternalError("database unavailable", errors.New("dial tcp")), http.StatusServiceUnavailable, "failed to build care journey"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "failed to build care journey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := new(MockAnalyzer)
			handler := handlers.NewAnalysisHandler(analyzer, analyzer, analyzer)
			analyzer.On("GetJourney", mock.Anything, "plan-1").Return(nil, tt.err)

			w := serve("GET /api/journey/{carePlanId}", handler.GetJourney,
				httptest.NewRequest(http.MethodGet, "/api/journey/plan-1", nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestAnalysisHandler_GetDependencies(t *testing.T) {
	analyzer := new(MockAnalyzer)
	handler := handlers.NewAnalysisHandler(analyzer, analyzer, analyzer)

	analyzer.On("BuildGraph", mock.Anything, "plan-1").Return(&entities.DependencyGraph{
		CarePlanID: "plan-1",
		Nodes:      []entities.GraphNode{{ID: "a", Label: "Walk"}},
		Edges:      []entities.GraphEdge{},
	}, nil)

	w := serve("GET /api/dependencies/{carePlanId}", handler.GetDependencies,
		httptest.NewRequest(http.MethodGet, "/api/dependencies/plan-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Walk"`)
}

func TestAnalysisHandler_GetRisk(t *testing.T) {
	analyzer := new(MockAnalyzer)
	handler := handlers.NewAnalysisHandler(analyzer, analyzer, analyzer)

	analyzer.On("GetStepRisk", mock.Anything, "step-1").Return(&entities.StepRiskReport{
		StepID:          "step-1",
		StepDescription: "Take medication",
		RiskAssessment:  entities.RiskAssessment{ImpactScore: 90},
	}, nil)

	w := serve("GET /api/risk/{stepId}", handler.GetRisk,
		httptest.NewRequest(http.MethodGet, "/api/risk/step-1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		StepID         string `json:"stepId"`
		RiskAssessment struct {
			ImpactScore int `json:"impactScore"`
		} `json:"riskAssessment"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "step-1", body.StepID)
	assert.Equal(t, 90, body.RiskAssessment.ImpactScore)
}
