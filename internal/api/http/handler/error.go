package handler

import (
	"errors"
	"net/http"

	"filevault/internal/api/http/response"
	"filevault/internal/logger"
	"filevault/internal/model"
)

// writeServiceError maps the expected error taxonomy to HTTP responses.
// Anything outside the taxonomy is logged and surfaced as a generic 500 so
// callers cannot tell an invalid credential from an infrastructure fault.
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidIdentifier):
		response.WriteError(w, http.StatusBadRequest, model.ErrInvalidIdentifier.Error())
	case errors.Is(err, model.ErrDuplicateUser):
		response.WriteError(w, http.StatusBadRequest, model.ErrDuplicateUser.Error())
	case errors.Is(err, model.ErrBadCredentials):
		response.WriteError(w, http.StatusUnauthorized, model.ErrBadCredentials.Error())
	case errors.Is(err, model.ErrTokenExpired), errors.Is(err, model.ErrTokenMalformed):
		response.WriteError(w, http.StatusUnauthorized, "invalid or expired refresh token", "please sign in again to get new tokens")
	case errors.Is(err, model.ErrRefreshTokenNotFound):
		response.WriteError(w, http.StatusNotFound, "refresh token not found", "please sign in again to get new tokens")
	case errors.Is(err, model.ErrDeviceMismatch):
		response.WriteError(w, http.StatusForbidden, "device mismatch - please sign in again")
	case errors.Is(err, model.ErrUnknownSubject):
		response.WriteError(w, http.StatusUnauthorized, "user not found")
	case errors.Is(err, model.ErrNotFound):
		response.WriteError(w, http.StatusNotFound, "not found")
	default:
		log.Error("handler: internal error", "error", err.Error())
		response.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
