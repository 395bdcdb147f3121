package api

import (
	"net/http"

	"github.com/okian/co2dash/internal/domain/render"
)

// FiguresHandler renders figures for an explicit selection given in the query.
type FiguresHandler struct {
	deps Dependencies
}

// NewFiguresHandler creates a new figures handler.
func NewFiguresHandler(deps Dependencies) *FiguresHandler {
	return &FiguresHandler{deps: deps}
}

// HandleAll handles GET /api/figures?country=&year=.
func (h *FiguresHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	const op = "api.figures"
	sel, err := selectionFromQuery(r)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	figs, err := h.deps.Figures(r.Context(), sel)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, figs)
}

// HandleOne handles GET /api/figures/{id}?country=&year=.
func (h *FiguresHandler) HandleOne(w http.ResponseWriter, r *http.Request) {
	const op = "api.figure"
	id, err := render.ParseID(r.PathValue("id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	sel, err := selectionFromQuery(r)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	f, err := h.deps.Figure(r.Context(), id, sel)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, f)
}
