package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/paytoken/internal/common"
	"github.com/dmitrijs2005/paytoken/internal/server/services"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Message: msg})
}

// statusFor maps an error kind to a status code and a client-safe message.
// Validation messages name fields only, so they are passed through.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrValidation):
		var pe *services.PaymentError
		if errors.As(err, &pe) {
			return http.StatusBadRequest, pe.Err.Error()
		}
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrNetwork), errors.Is(err, common.ErrProtocol):
		return http.StatusBadGateway, "unable to tokenize card"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrStorage):
		return http.StatusInternalServerError, "storage unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
