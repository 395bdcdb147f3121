package api

import (
	"net/http"

	"github.com/okian/co2dash/internal/domain/selection"
)

type sessionResponse struct {
	SessionID string               `json:"session_id"`
	Selection *selection.Selection `json:"selection,omitempty"`
}

// SessionHandler issues and reports browser sessions.
type SessionHandler struct {
	deps Dependencies
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps Dependencies) *SessionHandler {
	return &SessionHandler{deps: deps}
}

// HandleCreate handles POST /api/session.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	id, err := h.deps.NewSession(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id})
}

// HandleGet handles GET /api/session/{id}.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_session"
	id := r.PathValue("id")
	sel, ok, err := h.deps.Session(r.Context(), id)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if !ok {
		writeFailure(w, NewKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Selection: &sel})
}
