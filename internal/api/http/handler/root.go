package handler

import (
	"net/http"

	"filevault/internal/api/http/response"
	"filevault/internal/model"
)

// Root describes the API. Anonymous callers get the endpoint listing;
// authenticated callers additionally see who they are.
type Root struct {
	ctxMgr model.ContextManager
}

// NewRoot creates a new Root handler.
func NewRoot(ctxMgr model.ContextManager) *Root {
	return &Root{ctxMgr: ctxMgr}
}

func (h *Root) Info(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"message": "file service API is running",
		"endpoints": map[string]string{
			"signup":  "POST /signup",
			"signin":  "POST /signin",
			"refresh": "POST /signin/new_token",
		},
	}

	if userID, ok := h.ctxMgr.GetUserIDFromContext(r.Context()); ok {
		body["userId"] = userID
	}

	response.WriteJSON(w, http.StatusOK, body)
}
