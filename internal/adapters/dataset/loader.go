// Package dataset reads the two emission CSV sources and normalizes them to
// the canonical tables: headers are renamed, types coerced, negative values
// clamped to zero and rows restricted to the supported year range.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/co2dash/internal/domain/model"
	"github.com/okian/co2dash/pkg/logger"
	"github.com/okian/co2dash/pkg/metrics"
)

// Dataset names used in reports and metrics.
const (
	NameEmissions = "emissions"
	NameSectors   = "sectors"
)

const ctxCheckEvery = 1024

// Report counts what happened to the rows of one source.
type Report struct {
	Dataset    string `json:"dataset"`
	Source     string `json:"source"`
	Read       int    `json:"read"`
	Kept       int    `json:"kept"`
	Missing    int    `json:"missing"`
	Malformed  int    `json:"malformed"`
	OutOfRange int    `json:"out_of_range"`
	Clamped    int    `json:"clamped"`
	Coerced    int    `json:"coerced"`
}

// Tables is the loader's output.
type Tables struct {
	Emissions []model.EmissionRecord
	Sectors   []model.SectorRecord
	Reports   []Report
}

// Loader reads and normalizes the emission sources.
type Loader struct {
	delimiter rune
	years     model.YearRange
	logger    logger.Logger
}

// NewLoader creates a Loader for comma separated files covering 1990-2020.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		delimiter: ',',
		years:     model.YearRange{Min: 1990, Max: 2020},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFiles reads both sources concurrently. Any error is fatal for the caller.
func (l *Loader) LoadFiles(ctx context.Context, emissionsPath, sectorsPath string) (*Tables, error) {
	var (
		out       Tables
		emReport  Report
		secReport Report
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Emissions, emReport, err = loadFile(gctx, emissionsPath, l.LoadEmissions)
		return err
	})
	g.Go(func() error {
		var err error
		out.Sectors, secReport, err = loadFile(gctx, sectorsPath, l.LoadSectors)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.Reports = []Report{emReport, secReport}
	return &out, nil
}

func loadFile[T any](ctx context.Context, path string, parse func(context.Context, io.Reader, string) ([]T, Report, error)) ([]T, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()
	return parse(ctx, f, path)
}

// LoadEmissions parses the country-year table. Rows missing any required
// field, or whose year or total does not parse, are dropped.
func (l *Loader) LoadEmissions(ctx context.Context, r io.Reader, source string) ([]model.EmissionRecord, Report, error) {
	start := time.Now()
	rep := Report{Dataset: NameEmissions, Source: source}

	cr := l.newReader(r)
	cols, err := readHeader(cr, source, EmissionColumns, emissionRequired)
	if err != nil {
		return nil, rep, err
	}

	var out []model.EmissionRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, rep, fmt.Errorf("%w: %s: %w", ErrRead, source, err)
		}
		rep.Read++
		if rep.Read%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, rep, err
			}
		}

		country := cell(rec, cols[ColCountry])
		code := cell(rec, cols[ColCode])
		yearText := cell(rec, cols[ColYear])
		totalText := cell(rec, cols[ColTotalCO2])
		if country == "" || code == "" || yearText == "" || totalText == "" {
			rep.Missing++
			continue
		}
		year, ok := parseYear(yearText)
		if !ok {
			rep.Malformed++
			continue
		}
		total, ok := parseNumber(totalText)
		if !ok {
			rep.Malformed++
			continue
		}
		if !l.years.Contains(year) {
			rep.OutOfRange++
			continue
		}
		if total < 0 {
			rep.Clamped++
			total = 0
		}
		out = append(out, model.EmissionRecord{Country: country, Code: code, Year: year, TotalCO2: total})
	}
	rep.Kept = len(out)
	l.report(ctx, rep, time.Since(start))
	return out, rep, nil
}

// LoadSectors parses the country-year-sector table. Sector cells that are
// empty, non-numeric or negative become zero; rows without a country or a
// parseable year are dropped.
func (l *Loader) LoadSectors(ctx context.Context, r io.Reader, source string) ([]model.SectorRecord, Report, error) {
	start := time.Now()
	rep := Report{Dataset: NameSectors, Source: source}

	cr := l.newReader(r)
	cols, err := readHeader(cr, source, SectorColumns, sectorRequired())
	if err != nil {
		return nil, rep, err
	}
	sectorCols := make([]int, model.SectorCount)
	for _, s := range model.Sectors() {
		sectorCols[s] = cols[s.String()]
	}

	var out []model.SectorRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, rep, fmt.Errorf("%w: %s: %w", ErrRead, source, err)
		}
		rep.Read++
		if rep.Read%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, rep, err
			}
		}

		country := cell(rec, cols[ColCountry])
		yearText := cell(rec, cols[ColYear])
		if country == "" || yearText == "" {
			rep.Missing++
			continue
		}
		year, ok := parseYear(yearText)
		if !ok {
			rep.Malformed++
			continue
		}
		if !l.years.Contains(year) {
			rep.OutOfRange++
			continue
		}

		row := model.SectorRecord{Country: country, Year: year}
		for s, col := range sectorCols {
			v, ok := parseNumber(cell(rec, col))
			switch {
			case !ok:
				rep.Coerced++
			case v < 0:
				rep.Clamped++
			default:
				row.Values[s] = v
			}
		}
		out = append(out, row)
	}
	rep.Kept = len(out)
	l.report(ctx, rep, time.Since(start))
	return out, rep, nil
}

func (l *Loader) newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = l.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

func (l *Loader) report(ctx context.Context, rep Report, took time.Duration) {
	metrics.RecordDatasetLoad(rep.Dataset, float64(took.Milliseconds()))
	metrics.RecordDatasetRows(rep.Dataset, "kept", rep.Kept)
	metrics.RecordDatasetRows(rep.Dataset, "missing", rep.Missing)
	metrics.RecordDatasetRows(rep.Dataset, "malformed", rep.Malformed)
	metrics.RecordDatasetRows(rep.Dataset, "out_of_range", rep.OutOfRange)

	if l.logger == nil {
		return
	}
	l.logger.Info(ctx, "dataset loaded",
		logger.String("dataset", rep.Dataset),
		logger.String("source", rep.Source),
		logger.Int("read", rep.Read),
		logger.Int("kept", rep.Kept),
		logger.Int("missing", rep.Missing),
		logger.Int("malformed", rep.Malformed),
		logger.Int("out_of_range", rep.OutOfRange),
		logger.Int("clamped", rep.Clamped),
		logger.Int("coerced", rep.Coerced),
		logger.Duration("took", took),
	)
}

// readHeader maps canonical column names to their index in the file.
func readHeader(cr *csv.Reader, source string, rename map[string]string, required []string) (map[string]int, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: empty file", ErrMissingColumn, source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, source, err)
	}

	cols := make(map[string]int, len(required))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		name, ok := rename[h]
		if !ok {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s: %q", ErrMissingColumn, source, name)
		}
	}
	return cols, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseYear accepts integers and integral decimals such as "2005.0".
func parseYear(s string) (int, bool) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// parseNumber rejects empty, non-numeric and non-finite values.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
