// Package export renders trend and sector figures to SVG or PNG images.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/co2dash/internal/domain/figure"
	"github.com/okian/co2dash/internal/domain/render"
)

// Format is an image encoding.
type Format string

// Supported formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a format name such as "svg" or "PNG".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

var seriesColor = drawing.ColorFromHex("636EFA")

// Exporter draws figures with go-chart.
type Exporter struct {
	width  int
	height int
}

// New creates an Exporter producing 1024x512 images.
func New(opts ...Option) *Exporter {
	e := &Exporter{width: 1024, height: 512}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Write renders figure f, produced by the renderer id, to w.
func (e *Exporter) Write(w io.Writer, id render.ID, f figure.Figure, format Format) error {
	switch id {
	case render.TrendID:
		return e.trend(w, f, format)
	case render.SectorID:
		return e.sector(w, f, format)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, id)
	}
}

func (e *Exporter) trend(w io.Writer, f figure.Figure, format Format) error {
	if f.IsPlaceholder() || f.Points() == 0 {
		return ErrNoData
	}
	tr := f.Data[0]
	years, _ := tr.X.([]int)
	if len(years) != len(tr.Y) {
		return fmt.Errorf("%w: %d x values for %d y values", ErrRender, len(years), len(tr.Y))
	}
	xs := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y)
	}
	ys := tr.Y
	// go-chart needs two distinct x values
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}

	ch := chart.Chart{
		Title:      f.Layout.Title.Text,
		Width:      e.width,
		Height:     e.height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           axisTitle(f.Layout.XAxis),
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			Name:           axisTitle(f.Layout.YAxis),
			Range:          axisRange(f.Layout.YAxis),
			ValueFormatter: tonnesFormatter,
		},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    tr.Name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: seriesColor, StrokeWidth: 2},
		}},
	}
	if err := ch.Render(format.provider(), w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func (e *Exporter) sector(w io.Writer, f figure.Figure, format Format) error {
	bars := render.SectorBars(f)
	if len(bars) == 0 {
		return ErrNoData
	}
	values := make([]chart.Value, len(bars))
	for i, b := range bars {
		values[i] = chart.Value{
			Label: b.Sector,
			Value: b.Value,
			Style: chart.Style{FillColor: seriesColor, StrokeColor: seriesColor},
		}
	}

	bc := chart.BarChart{
		Title:      f.Layout.Title.Text,
		Width:      e.width,
		Height:     e.height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16}},
		BarWidth:   e.width / (2 * len(values)),
		YAxis: chart.YAxis{
			Name:           axisTitle(f.Layout.YAxis),
			Range:          axisRange(f.Layout.YAxis),
			ValueFormatter: tonnesFormatter,
		},
		Bars: values,
	}
	if err := bc.Render(format.provider(), w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func axisTitle(a *figure.Axis) string {
	if a == nil || a.Title == nil {
		return ""
	}
	return a.Title.Text
}

func axisRange(a *figure.Axis) chart.Range {
	if a == nil || len(a.Range) != 2 {
		return nil
	}
	return &chart.ContinuousRange{Min: a.Range[0], Max: a.Range[1]}
}

func yearFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(f))
	}
	return fmt.Sprint(v)
}

// tonnesFormatter prints tick values in billions of tonnes.
func tonnesFormatter(v any) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f/1e9, 'f', 1, 64) + "B"
}
