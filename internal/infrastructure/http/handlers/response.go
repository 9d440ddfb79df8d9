package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code"`
	Errors []string `json:"errors,omitempty"`
}

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	writeJSON(w, code, errorResponse{Error: message, Code: errCode})
}

func writeValidationErr(w http.ResponseWriter, violations []string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:  "validation failed",
		Code:   ErrCodeValidationFailed,
		Errors: violations,
	})
}

// writeDomainErr maps a use-case error to a response and returns the code written.
// Unrecognised errors are logged and answered with a generic message.
func writeDomainErr(w http.ResponseWriter, log zerolog.Logger, err error) string {
	var verr *domerrors.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationErr(w, verr.Violations)
		return ErrCodeValidationFailed
	case errors.Is(err, domerrors.ErrEmailExists):
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
		return ErrCodeConflict
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
		return ErrCodeInvalidCredentials
	case domerrors.IsUnauthorized(err):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
		return ErrCodeUnauthorized
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
		return ErrCodeForbidden
	case errors.Is(err, domerrors.ErrTodoNotFound), errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
		return ErrCodeNotFound
	default:
		log.Error().Err(err).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return ErrCodeInternal
	}
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
