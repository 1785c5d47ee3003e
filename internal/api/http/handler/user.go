package handler

import (
	"context"
	"net/http"

	"filevault/internal/api/http/response"
	"filevault/internal/device"
	"filevault/internal/logger"
	"filevault/internal/model"
)

// SessionService defines session revocation operations.
type SessionService interface {
	Logout(ctx context.Context, userID string, meta device.Metadata) error
	LogoutAllDevices(ctx context.Context, userID string) (int64, error)
}

// User handles HTTP endpoints for the authenticated user.
type User struct {
	service SessionService
	ctxMgr  model.ContextManager
	logger  *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(service SessionService, ctxMgr model.ContextManager, logger *logger.Logger) *User {
	return &User{service: service, ctxMgr: ctxMgr, logger: logger}
}

// Info returns the authenticated principal.
func (h *User) Info(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "user is not authorized")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"userId": userID})
}

// Logout blocks the calling device's sessions.
func (h *User) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "user is not authorized")
		return
	}

	if err := h.service.Logout(r.Context(), userID, device.FromRequest(r)); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "successfully logged out"})
}

// LogoutAllDevices blocks the user's sessions on every device.
func (h *User) LogoutAllDevices(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, http.StatusUnauthorized, "user is not authorized")
		return
	}

	count, err := h.service.LogoutAllDevices(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"message":       "successfully logged out all devices",
		"blockedTokens": count,
	})
}
