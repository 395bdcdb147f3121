package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/co2dash/internal/domain/selection"
)

// callbackRequest is a click reported by the dashboard page, e.g.
// {"session_id":"...","source":"map","click":{"points":[{"location":"France"}]}}.
type callbackRequest struct {
	SessionID string `json:"session_id"`
	selection.Click
}

// CallbackHandler applies clicks and returns the re-rendered figures.
type CallbackHandler struct {
	deps Dependencies
}

// NewCallbackHandler creates a new callback handler.
func NewCallbackHandler(deps Dependencies) *CallbackHandler {
	return &CallbackHandler{deps: deps}
}

// HandleCallback handles POST /api/callback.
func (h *CallbackHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	const op = "api.callback"
	var req callbackRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Click(r.Context(), req.SessionID, req.Click)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}
