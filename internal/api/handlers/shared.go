package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/response"
	"github.com/YuriRomanenkou/portfolio-manager/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps service-layer errors to HTTP status codes:
// not-found sentinels become 404, validation sentinels 400, everything
// else 500 with the given fallback message.
func respondServiceError(w http.ResponseWriter, fallback string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAssetNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrSnapshotNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")

	case errors.Is(err, apperrors.ErrInvalidAssetType),
		errors.Is(err, apperrors.ErrInvalidTransactionType),
		errors.Is(err, apperrors.ErrInvalidRiskProfile),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrMissingRequiredField),
		errors.Is(err, apperrors.ErrNegativeAmount),
		errors.Is(err, apperrors.ErrInvalidDate),
		errors.Is(err, apperrors.ErrInvalidInterval):
		response.RespondError(w, http.StatusBadRequest, err.Error(), "")

	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
