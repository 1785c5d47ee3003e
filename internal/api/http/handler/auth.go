package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"filevault/internal/api/http/response"
	"filevault/internal/device"
	"filevault/internal/logger"
	"filevault/internal/model"
)

// AuthService defines sign-up, sign-in and token refresh operations.
type AuthService interface {
	SignUp(ctx context.Context, id, password string) (model.User, error)
	SignIn(ctx context.Context, id, password string, meta device.Metadata) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, meta device.Metadata) (model.TokenPair, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type credentialsRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	Message      string       `json:"message"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID string `json:"id"`
}

// SignUp creates the user and immediately signs it in, returning the first
// token pair.
func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" || req.Password == "" {
		response.WriteError(w, http.StatusBadRequest, "ID and password are required")
		return
	}

	user, err := h.service.SignUp(r.Context(), req.ID, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	pair, err := h.service.SignIn(r.Context(), req.ID, req.Password, device.FromRequest(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, tokenResponse{
		Message:      "user was signed up",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         userResponse{ID: user.ID},
	})
}

// SignIn verifies credentials and returns a token pair.
func (h *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" || req.Password == "" {
		response.WriteError(w, http.StatusBadRequest, "ID and password are required")
		return
	}

	pair, err := h.service.SignIn(r.Context(), req.ID, req.Password, device.FromRequest(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, tokenResponse{
		Message:      "user was signed in",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         userResponse{ID: pair.UserID},
	})
}

// Refresh exchanges a refresh token for a new pair.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		response.WriteError(w, http.StatusBadRequest, "refresh token is required", "provide refresh token in the request body")
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken, device.FromRequest(r))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, tokenResponse{
		Message:      "tokens refreshed successfully",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         userResponse{ID: pair.UserID},
	})
}
