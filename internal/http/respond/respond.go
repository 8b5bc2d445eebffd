// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

type errorResponse struct {
	Error    string          `json:"error"`
	Problems []string        `json:"problems,omitempty"`
	Stock    *stockShortfall `json:"stock,omitempty"`
}

type stockShortfall struct {
	ProductID uuid.UUID `json:"product_id"`
	Product   string    `json:"product"`
	Available int64     `json:"available"`
	Requested int64     `json:"requested"`
}

// JSON encodes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// BadRequest is for bodies and parameters that could not be decoded at all.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// Error writes err with the status its category maps to. Uncategorized
// errors are logged and hidden behind a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	JSON(w, status, body)
}

func classify(err error) (int, errorResponse) {
	var (
		validation *apperr.ValidationError
		shortfall  *apperr.InsufficientStockError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, errorResponse{Error: apperr.ErrValidation.Error(), Problems: validation.Problems}
	case errors.As(err, &shortfall):
		return http.StatusConflict, errorResponse{
			Error: shortfall.Error(),
			Stock: &stockShortfall{
				ProductID: shortfall.ProductID,
				Product:   shortfall.Product,
				Available: shortfall.Available,
				Requested: shortfall.Requested,
			},
		}
	case errors.Is(err, apperr.ErrConflict), errors.Is(err, apperr.ErrStateTransition):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: err.Error()}
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: apperr.ErrForbidden.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal error"}
}
