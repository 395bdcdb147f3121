// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/co2dash/internal/adapters/export"
	"github.com/okian/co2dash/internal/adapters/repository"
	"github.com/okian/co2dash/internal/adapters/session"
	service "github.com/okian/co2dash/internal/app"
	"github.com/okian/co2dash/internal/domain/figure"
	"github.com/okian/co2dash/internal/domain/model"
	"github.com/okian/co2dash/internal/domain/render"
	"github.com/okian/co2dash/internal/domain/selection"
)

const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	NewSession(ctx context.Context) (string, error)
	Session(ctx context.Context, id string) (selection.Selection, bool, error)
	Click(ctx context.Context, sessionID string, c selection.Click) (service.ClickResult, error)

	Figures(ctx context.Context, sel selection.Selection) (map[render.ID]figure.Figure, error)
	Figure(ctx context.Context, id render.ID, sel selection.Selection) (figure.Figure, error)
	Export(ctx context.Context, w io.Writer, id render.ID, format export.Format, sel selection.Selection) error

	Countries(ctx context.Context) ([]string, error)
	Years(ctx context.Context) (service.YearSpan, error)
	Emission(ctx context.Context, country string, year int) (model.EmissionRecord, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	sessionHandler  *SessionHandler
	callbackHandler *CallbackHandler
	figuresHandler  *FiguresHandler
	dataHandler     *DataHandler
	exportHandler   *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		sessionHandler:  NewSessionHandler(deps),
		callbackHandler: NewCallbackHandler(deps),
		figuresHandler:  NewFiguresHandler(deps),
		dataHandler:     NewDataHandler(deps),
		exportHandler:   NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /api/session", MetricsMiddleware(s.sessionHandler.HandleCreate, "session"))
	mux.HandleFunc("GET /api/session/{id}", MetricsMiddleware(s.sessionHandler.HandleGet, "session"))
	mux.HandleFunc("POST /api/callback", MetricsMiddleware(s.callbackHandler.HandleCallback, "callback"))

	mux.HandleFunc("GET /api/figures", MetricsMiddleware(s.figuresHandler.HandleAll, "figures"))
	mux.HandleFunc("GET /api/figures/{id}", MetricsMiddleware(s.figuresHandler.HandleOne, "figure"))
	mux.HandleFunc("GET /api/export/{file}", MetricsMiddleware(s.exportHandler.HandleExport, "export"))

	mux.HandleFunc("GET /api/countries", MetricsMiddleware(s.dataHandler.HandleCountries, "countries"))
	mux.HandleFunc("GET /api/years", MetricsMiddleware(s.dataHandler.HandleYears, "years"))
	mux.HandleFunc("GET /api/emissions", MetricsMiddleware(s.dataHandler.HandleEmission, "emissions"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps an error kind to its HTTP status and code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, export.ErrUnsupported):
		return http.StatusBadRequest, "unsupported"
	case errors.Is(err, export.ErrNoData):
		return http.StatusNotFound, "no_data"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, selection.ErrInvalidClick),
		errors.Is(err, selection.ErrUnknownSource),
		errors.Is(err, session.ErrInvalidID),
		errors.Is(err, export.ErrUnknownFormat):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound),
		errors.Is(err, render.ErrUnknownFigure),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// selectionFromQuery reads ?country=&year=. Blank values mean unset.
func selectionFromQuery(r *http.Request) (selection.Selection, error) {
	q := r.URL.Query()
	sel := selection.Initial()
	if c := strings.TrimSpace(q.Get("country")); c != "" {
		sel = sel.WithCountry(c)
	}
	if y := strings.TrimSpace(q.Get("year")); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return sel, WrapKind("api.query", ErrBadRequest, errors.New("year must be an integer"))
		}
		sel = sel.WithYear(year)
	}
	return sel, nil
}
