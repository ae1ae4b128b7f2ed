package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	// Errors must not be stored by shared caches
	w.Header().Set("Cache-Control", "no-store")
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error onto an HTTP status.
// fallback is the message used when the cause is not safe to expose.
func respondWithAppError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErrorMessage(err, fallback))
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, appErrorMessage(err, fallback))
	case apperrors.ErrorTypeExternal:
		observability.LoggerFromContext(ctx).Error().Err(err).Msg(fallback)
		respondWithError(w, http.StatusServiceUnavailable, fallback)
	default:
		observability.LoggerFromContext(ctx).Error().Err(err).Msg(fallback)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func appErrorMessage(err error, fallback string) string {
	if appErr, ok := err.(*apperrors.AppError); ok && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
