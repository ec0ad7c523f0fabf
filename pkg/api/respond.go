package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/MarquinhoCF/alwabp-solver/pkg/errors"
)

// errorBody is the JSON shape of error responses.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	writeJSON(w, statusFor(code), errorBody{Error: errorDetail{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	}})
}

// statusFor maps application error codes to HTTP status codes.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInstance,
		apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeCyclicPrecedence:
		return http.StatusBadRequest
	case apperrors.ErrCodeInfeasibleInstance,
		apperrors.ErrCodeInfeasibleSolution:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
