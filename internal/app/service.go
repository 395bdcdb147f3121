// Package service wires the dataset, the renderers and the session store
// together and exposes the operations the HTTP API needs.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/okian/co2dash/internal/adapters/dataset"
	"github.com/okian/co2dash/internal/adapters/export"
	"github.com/okian/co2dash/internal/adapters/repository"
	"github.com/okian/co2dash/internal/adapters/session"
	"github.com/okian/co2dash/internal/domain/figure"
	"github.com/okian/co2dash/internal/domain/model"
	"github.com/okian/co2dash/internal/domain/render"
	"github.com/okian/co2dash/internal/domain/selection"
	"github.com/okian/co2dash/pkg/logger"
	"github.com/okian/co2dash/pkg/metrics"
)

// ClickResult is the outcome of one click: the session's new selection and
// the figures that depend on the clicked source.
type ClickResult struct {
	SessionID string                      `json:"session_id"`
	Selection selection.Selection         `json:"selection"`
	Figures   map[render.ID]figure.Figure `json:"figures"`
}

// YearSpan lists the years present in the emissions table.
type YearSpan struct {
	Min   int   `json:"min"`
	Max   int   `json:"max"`
	Years []int `json:"years"`
}

// Service implements the API dependencies for the dashboard.
type Service struct {
	mu sync.RWMutex
	// clickMu serializes click handling; each click is reduced and
	// re-rendered to completion before the next one starts.
	clickMu sync.Mutex

	store    repository.Store
	sessions *session.Store
	exporter *export.Exporter
	reports  []dataset.Report

	// Configuration
	emissionsPath   string
	sectorsPath     string
	delimiter       rune
	years           model.YearRange
	sessionCapacity int
	exportWidth     int
	exportHeight    int

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		emissionsPath:   "data/annual-co-emissions-by-region.csv",
		sectorsPath:     "data/co-emissions-by-sector.csv",
		delimiter:       ',',
		years:           model.YearRange{Min: 1990, Max: 2020},
		sessionCapacity: 10_000,
		exportWidth:     1024,
		exportHeight:    512,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the data files and prepares the session store. A load error
// is returned wrapped in ErrLoadData and leaves the service stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.logger.Info(ctx, "loading emission data",
			logger.String("emissions", s.emissionsPath),
			logger.String("sectors", s.sectorsPath),
		)
		loader := dataset.NewLoader(
			dataset.WithDelimiter(s.delimiter),
			dataset.WithYearRange(s.years),
			dataset.WithLogger(s.logger.Named("dataset")),
		)
		tables, err := loader.LoadFiles(ctx, s.emissionsPath, s.sectorsPath)
		if err != nil {
			metrics.RecordErrorByComponent("dataset", "load")
			return fmt.Errorf("%w: %w", ErrLoadData, err)
		}
		s.reports = tables.Reports
		s.store = repository.NewMemoryStore(tables.Emissions, tables.Sectors, repository.WithYearRange(s.years))
	}

	s.sessions = session.New(
		session.WithCapacity(s.sessionCapacity),
		session.WithLogger(s.logger.Named("session")),
	)
	s.exporter = export.New(export.WithSize(s.exportWidth, s.exportHeight))

	st := s.store.Stats()
	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("emission_rows", st.EmissionRows),
		logger.Int("sector_rows", st.SectorRows),
		logger.Int("countries", st.Countries),
		logger.Int("years", st.Years),
		logger.Int("session_capacity", s.sessionCapacity),
	)
	return nil
}

// Stop marks the service stopped. Loaded tables are kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func (s *Service) ready() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// NewSession issues a session holding the initial selection.
func (s *Service) NewSession(ctx context.Context) (string, error) {
	if _, err := s.ready(); err != nil {
		return "", err
	}
	id := s.sessions.Create()
	s.logger.Debug(ctx, "session created", logger.String("session_id", id))
	return id, nil
}

// Session returns the current selection of a session.
func (s *Service) Session(_ context.Context, id string) (selection.Selection, bool, error) {
	if _, err := s.ready(); err != nil {
		return selection.Initial(), false, err
	}
	sel, ok := s.sessions.Get(id)
	return sel, ok, nil
}

// Click applies a click to the session's selection and re-renders the
// figures that declare the clicked source as an input. An invalid click
// leaves the selection unchanged and returns the reducer's error.
func (s *Service) Click(ctx context.Context, sessionID string, c selection.Click) (ClickResult, error) {
	store, err := s.ready()
	if err != nil {
		return ClickResult{}, err
	}

	src, err := selection.ParseSource(string(c.Source))
	if err != nil {
		metrics.RecordInvalidClick("unknown_source")
		return ClickResult{}, err
	}
	c.Source = src

	s.clickMu.Lock()
	defer s.clickMu.Unlock()

	id, sel, err := s.sessions.Resolve(sessionID)
	if err != nil {
		metrics.RecordInvalidClick("invalid_session")
		return ClickResult{}, err
	}
	next, err := selection.Apply(sel, c)
	if err != nil {
		metrics.RecordInvalidClick(clickErrorReason(err))
		s.logger.Debug(ctx, "click rejected",
			logger.String("session_id", id),
			logger.String("source", string(src)),
			logger.Error(err),
		)
		return ClickResult{SessionID: id, Selection: sel}, err
	}
	s.sessions.Put(id, next)
	metrics.RecordClick(string(src))

	affected := render.Affected(src)
	figures := make(map[render.ID]figure.Figure, len(affected))
	for _, fid := range affected {
		f, err := s.render(store, fid, next)
		if err != nil {
			return ClickResult{}, err
		}
		figures[fid] = f
	}

	s.logger.Debug(ctx, "click applied",
		logger.String("session_id", id),
		logger.String("source", string(src)),
		logger.String("selection", next.String()),
		logger.Int("figures", len(figures)),
	)
	return ClickResult{SessionID: id, Selection: next, Figures: figures}, nil
}

func clickErrorReason(err error) string {
	if errors.Is(err, selection.ErrUnknownSource) {
		return "unknown_source"
	}
	return "invalid_click"
}

func (s *Service) render(store repository.Store, id render.ID, sel selection.Selection) (figure.Figure, error) {
	start := time.Now()
	f, err := render.Render(store, id, sel)
	if err != nil {
		return figure.Figure{}, err
	}
	metrics.RecordRender(string(id), float64(time.Since(start).Microseconds())/1000)
	return f, nil
}

// Figures renders every figure for an explicit selection.
func (s *Service) Figures(_ context.Context, sel selection.Selection) (map[render.ID]figure.Figure, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	out := make(map[render.ID]figure.Figure, len(render.IDs()))
	for _, id := range render.IDs() {
		f, err := s.render(store, id, sel)
		if err != nil {
			return nil, err
		}
		out[id] = f
	}
	return out, nil
}

// Figure renders one figure for an explicit selection.
func (s *Service) Figure(_ context.Context, id render.ID, sel selection.Selection) (figure.Figure, error) {
	store, err := s.ready()
	if err != nil {
		return figure.Figure{}, err
	}
	return s.render(store, id, sel)
}

// Export renders figure id for sel as an image written to w.
func (s *Service) Export(ctx context.Context, w io.Writer, id render.ID, format export.Format, sel selection.Selection) error {
	store, err := s.ready()
	if err != nil {
		return err
	}
	start := time.Now()
	outcome := "ok"
	defer func() {
		metrics.RecordExport(string(id), string(format), outcome, float64(time.Since(start).Microseconds())/1000)
	}()

	if id == render.MapID {
		outcome = "unsupported"
		return fmt.Errorf("%w: %s", export.ErrUnsupported, id)
	}
	f, err := s.render(store, id, sel)
	if err != nil {
		outcome = "error"
		return err
	}
	if err := s.exporter.Write(w, id, f, format); err != nil {
		switch {
		case errors.Is(err, export.ErrNoData):
			outcome = "no_data"
		case errors.Is(err, export.ErrUnsupported):
			outcome = "unsupported"
		default:
			outcome = "error"
			s.logger.Error(ctx, "export failed",
				logger.String("figure", string(id)),
				logger.String("format", string(format)),
				logger.Error(err),
			)
		}
		return err
	}
	return nil
}

// Countries returns every country with emissions data, sorted.
func (s *Service) Countries(_ context.Context) ([]string, error) {
	store, err := s.ready()
	if err != nil {
		return nil, err
	}
	return store.Countries(), nil
}

// Years returns the years of the emissions table.
func (s *Service) Years(_ context.Context) (YearSpan, error) {
	store, err := s.ready()
	if err != nil {
		return YearSpan{}, err
	}
	years := store.Years()
	span := YearSpan{Years: years}
	if len(years) > 0 {
		span.Min, span.Max = years[0], years[len(years)-1]
	}
	return span, nil
}

// Emission returns the emissions row of (country, year).
func (s *Service) Emission(ctx context.Context, country string, year int) (model.EmissionRecord, error) {
	store, err := s.ready()
	if err != nil {
		return model.EmissionRecord{}, err
	}
	return store.Lookup(ctx, country, year)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":          s.started,
		"emissions_path":   s.emissionsPath,
		"sectors_path":     s.sectorsPath,
		"year_min":         s.years.Min,
		"year_max":         s.years.Max,
		"session_capacity": s.sessionCapacity,
	}
	if s.started {
		stats["uptime_seconds"] = int(time.Since(s.startedAt).Seconds())
		stats["store"] = s.store.Stats()
		stats["sessions"] = s.sessions.Len()
		if len(s.reports) > 0 {
			stats["datasets"] = s.reports
		}
	}
	return stats
}
