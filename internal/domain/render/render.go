// Package render turns a selection and the loaded datasets into figure
// descriptions. Every renderer is a pure function of its inputs: nothing is
// cached and nothing is mutated, so a figure is recomputed from scratch each
// time one of its declared inputs changes.
package render

import (
	"errors"
	"fmt"
	"slices"

	"github.com/okian/co2dash/internal/domain/figure"
	"github.com/okian/co2dash/internal/domain/model"
	"github.com/okian/co2dash/internal/domain/selection"
)

// Fixed axis bounds shared across all selections so charts stay comparable.
const (
	ColorMax   = 15_000_000_000
	TrendYMax  = 15_000_000_000
	SectorYMax = 8_000_000_000
)

// Dataset is the read-only view of the loaded tables the renderers need.
type Dataset interface {
	// EmissionsForYear returns the rows of one year in source order.
	EmissionsForYear(year int) []model.EmissionRecord
	// EmissionsForCountry returns the rows of one country ordered by year.
	EmissionsForCountry(country string) []model.EmissionRecord
	// Sector returns the sector row of (country, year), if any.
	Sector(country string, year int) (model.SectorRecord, bool)
	// LatestYear returns the maximum year of the emissions table.
	LatestYear() (int, bool)
}

// ID names one of the dashboard figures.
type ID string

// Figure identifiers.
const (
	MapID    ID = "map"
	TrendID  ID = "trend"
	SectorID ID = "sector"
)

// ErrUnknownFigure is returned for an unrecognised figure id.
var ErrUnknownFigure = errors.New("unknown figure")

// Func renders one figure.
type Func func(ds Dataset, sel selection.Selection) figure.Figure

// Renderer binds a figure to the click sources it depends on.
type Renderer struct {
	ID     ID
	Inputs []selection.Source
	Render Func
}

// The map only reads the year but also lists the map click as an input, so
// it is re-evaluated on every click.
var renderers = []Renderer{
	{ID: MapID, Inputs: []selection.Source{selection.SourceTrend, selection.SourceMap}, Render: Map},
	{ID: TrendID, Inputs: []selection.Source{selection.SourceMap}, Render: Trend},
	{ID: SectorID, Inputs: []selection.Source{selection.SourceTrend, selection.SourceMap}, Render: Sector},
}

// IDs returns all figure ids in page order.
func IDs() []ID {
	out := make([]ID, len(renderers))
	for i, r := range renderers {
		out[i] = r.ID
	}
	return out
}

// ParseID validates a figure id.
func ParseID(name string) (ID, error) {
	for _, r := range renderers {
		if string(r.ID) == name {
			return r.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFigure, name)
}

// Affected returns the figures that declare src as an input, in page order.
func Affected(src selection.Source) []ID {
	var out []ID
	for _, r := range renderers {
		if slices.Contains(r.Inputs, src) {
			out = append(out, r.ID)
		}
	}
	return out
}

// Render evaluates the figure id for sel.
func Render(ds Dataset, id ID, sel selection.Selection) (figure.Figure, error) {
	for _, r := range renderers {
		if r.ID == id {
			return r.Render(ds, sel), nil
		}
	}
	return figure.Figure{}, fmt.Errorf("%w: %q", ErrUnknownFigure, id)
}

// All evaluates every figure for sel.
func All(ds Dataset, sel selection.Selection) map[ID]figure.Figure {
	out := make(map[ID]figure.Figure, len(renderers))
	for _, r := range renderers {
		out[r.ID] = r.Render(ds, sel)
	}
	return out
}
