package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// maxTextRequestBytes bounds the JSON body of text requests
const maxTextRequestBytes = 64 << 10

// TextService defines the patient-facing text operations used by the handler.
type TextService interface {
	Explain(ctx context.Context, stepID, literacyLevel string) (*entities.Explanation, error)
	Simplify(ctx context.Context, stepID, literacyLevel, mode string) (*entities.Simplification, error)
	ValidateContent(content, contentType string) (entities.ContentValidation, error)
}

// ExplanationHandler handles explanation, simplification and content validation
type ExplanationHandler struct {
	service TextService
}

// NewExplanationHandler creates a new explanation handler
func NewExplanationHandler(service TextService) *ExplanationHandler {
	return &ExplanationHandler{service: service}
}

type explainRequest struct {
	StepID        string `json:"stepId"`
	LiteracyLevel string `json:"literacyLevel"`
}

type simplifyRequest struct {
	StepID        string `json:"stepId"`
	LiteracyLevel string `json:"literacyLevel"`
	Mode          string `json:"mode"`
}

type validateRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

// Explain handles POST /api/explain
func (h *ExplanationHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var payload explainRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	explanation, err := h.service.Explain(r.Context(), strings.TrimSpace(payload.StepID), strings.TrimSpace(payload.LiteracyLevel))
	if err != nil {
		respondWithAppError(r.Context(), w, err, "failed to generate explanation")
		return
	}

	respondWithJSON(w, http.StatusOK, explanation)
}

// Simplify handles POST /api/simplify
func (h *ExplanationHandler) Simplify(w http.ResponseWriter, r *http.Request) {
	var payload simplifyRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	simplified, err := h.service.Simplify(r.Context(), strings.TrimSpace(payload.StepID), strings.TrimSpace(payload.LiteracyLevel), strings.TrimSpace(payload.Mode))
	if err != nil {
		respondWithAppError(r.Context(), w, err, "failed to simplify instructions")
		return
	}

	respondWithJSON(w, http.StatusOK, simplified)
}

// Validate handles POST /api/validate
func (h *ExplanationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var payload validateRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	result, err := h.service.ValidateContent(payload.Content, strings.TrimSpace(payload.ContentType))
	if err != nil {
		respondWithAppError(r.Context(), w, err, "failed to validate content")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxTextRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}
