package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// CarePlanAnalyzer defines the plan-level analysis used by the handler.
type CarePlanAnalyzer interface {
	GetComplexity(ctx context.Context, planID string) (*entities.ComplexityAnalysis, error)
	GetJourney(ctx context.Context, planID string) (*entities.CareJourney, error)
}

// DependencyGrapher builds the display graph of a plan.
type DependencyGrapher interface {
	BuildGraph(ctx context.Context, planID string) (*entities.DependencyGraph, error)
}

// StepRiskAssessor produces the risk report of one step.
type StepRiskAssessor interface {
	GetStepRisk(ctx context.Context, stepID string) (*entities.StepRiskReport, error)
}

// AnalysisHandler serves the read-only analysis views
type AnalysisHandler struct {
	analyzer CarePlanAnalyzer
	grapher  DependencyGrapher
	risk     StepRiskAssessor
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analyzer CarePlanAnalyzer, grapher DependencyGrapher, risk StepRiskAssessor) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		grapher:  grapher,
		risk:     risk,
	}
}

// GetComplexity handles GET /api/complexity/{carePlanId}
func (h *AnalysisHandler) GetComplexity(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("carePlanId")
	if planID == "" {
		respondWithError(w, http.StatusBadRequest, "care plan ID is required")
		return
	}

	result, err := h.analyzer.GetComplexity(r.Context(), planID)
	if err != nil {
		respondWithAppError(r.Context(), w, err, "failed to analyze care plan complexity")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetJourney handles GET /api/journey/{carePlanId}
func (h *AnalysisHandler) GetJourney(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("carePlanId")
	if planID == "" {
		respondWithError(w, http.StatusBadRequest, "care plan ID is required")
		return
	}

	journey, err := h.analyzer.GetJourney(r.Context(), planID)
	if err != nil {
		respondWithAppError(r.Context(), w, err, "failed to build care journey")
		return
	}

	respondWithJSON(w, http.StatusOK, journey)
}

// GetDependencies handles GET /api/dependencies/{carePlanId}
func (h *AnalysisHandler) GetDependencies(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("carePlanId")
	if planID == "" {
		respondWithError(w, http.StatusBadRequest, "care plan ID is required")
		return
	}

	graph, err := h.grapher.BuildGraph(r.Context(), planID)
	if err != nil {
		respondWithAppError(r.Context(), w, err, "failed to build dependency graph")
		return
	}

	respondWithJSON(w, http.StatusOK, graph)
}

// GetRisk handles GET /api/risk/{stepId}
func (h *AnalysisHandler) GetRisk(w http.ResponseWriter, r *http.Request) {
	stepID := r.PathValue("stepId")
	if stepID == "" {
		respondWithError(w, http.StatusBadRequest, "step ID is required")
		return
	}

	report, err := h.risk.GetStepRisk(r.Context(), stepID)
	if err != nil {
		respondWithAppError(r.Context(), w, err, "failed to assess step risk")
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
