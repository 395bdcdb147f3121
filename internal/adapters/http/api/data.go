package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// DataHandler exposes the loaded tables' dimensions and rows.
type DataHandler struct {
	deps Dependencies
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps Dependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

// HandleCountries handles GET /api/countries.
func (h *DataHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.deps.Countries(r.Context())
	if err != nil {
		writeFailure(w, Wrap("api.countries", err))
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

// HandleYears handles GET /api/years.
func (h *DataHandler) HandleYears(w http.ResponseWriter, r *http.Request) {
	span, err := h.deps.Years(r.Context())
	if err != nil {
		writeFailure(w, Wrap("api.years", err))
		return
	}
	writeJSON(w, http.StatusOK, span)
}

// HandleEmission handles GET /api/emissions?country=&year=.
func (h *DataHandler) HandleEmission(w http.ResponseWriter, r *http.Request) {
	const op = "api.emission"
	q := r.URL.Query()
	country := strings.TrimSpace(q.Get("country"))
	if country == "" {
		writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("missing country")))
		return
	}
	year, err := strconv.Atoi(strings.TrimSpace(q.Get("year")))
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("year must be an integer")))
		return
	}
	rec, err := h.deps.Emission(r.Context(), country, year)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
