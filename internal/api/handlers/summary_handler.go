package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/zatekoja/careplannavigator/internal/analysis"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// CareSummarizer builds the audience-specific summary of a plan.
type CareSummarizer interface {
	Summarize(ctx context.Context, planID, audience string) (*entities.CarePlanSummary, error)
}

// SummaryHandler serves care plan summaries as JSON or a text download
type SummaryHandler struct {
	summarizer CareSummarizer
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summarizer CareSummarizer) *SummaryHandler {
	return &SummaryHandler{summarizer: summarizer}
}

type summarizeRequest struct {
	CarePlanID string `json:"carePlanId"`
	Format     string `json:"format"`
	Audience   string `json:"audience"`
}

// Summarize handles POST /api/summarize
func (h *SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var payload summarizeRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	planID := strings.TrimSpace(payload.CarePlanID)
	if planID == "" {
		respondWithError(w, http.StatusBadRequest, "care plan ID is required")
		return
	}
	format := strings.ToLower(strings.TrimSpace(payload.Format))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "text" {
		respondWithError(w, http.StatusBadRequest, "format must be json or text")
		return
	}

	result, err := h.summarizer.Summarize(r.Context(), planID, payload.Audience)
	if err != nil {
		respondWithAppError(r.Context(), w, err, "failed to generate care summary")
		return
	}

	if format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="care-summary-%s.txt"`, result.CarePlanID))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(analysis.SummaryText(&result.Summary)))
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
