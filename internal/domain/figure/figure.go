// Package figure describes renderable figures. The JSON encoding follows the
// plotly.js figure schema so the dashboard page can hand it straight to
// Plotly.react.
package figure

// Trace types.
const (
	TypeChoropleth = "choropleth"
	TypeScatter    = "scatter"
	TypeBar        = "bar"
)

// Figure is a complete figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one data series. X holds a typed slice ([]int or []string); a
// non-nil empty X encodes as [] so "no points" stays distinguishable from
// "no series".
type Trace struct {
	Type          string    `json:"type"`
	Mode          string    `json:"mode,omitempty"`
	Name          string    `json:"name,omitempty"`
	X             any       `json:"x,omitempty"`
	Y             []float64 `json:"y,omitempty"`
	Locations     []string  `json:"locations,omitempty"`
	Z             []float64 `json:"z,omitempty"`
	LocationMode  string    `json:"locationmode,omitempty"`
	ColorAxis     string    `json:"coloraxis,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
	Line          *Line     `json:"line,omitempty"`
}

// Marker styles bars and points.
type Marker struct {
	Color string `json:"color,omitempty"`
}

// Line styles line series.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Layout holds titles, axes and geo settings.
type Layout struct {
	Title        Title      `json:"title"`
	XAxis        *Axis      `json:"xaxis,omitempty"`
	YAxis        *Axis      `json:"yaxis,omitempty"`
	Geo          *Geo       `json:"geo,omitempty"`
	ColorAxis    *ColorAxis `json:"coloraxis,omitempty"`
	Margin       *Margin    `json:"margin,omitempty"`
	PaperBGColor string     `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string     `json:"plot_bgcolor,omitempty"`
}

// Title is a text title.
type Title struct {
	Text string `json:"text"`
}

// Axis configures a cartesian axis.
type Axis struct {
	Title     *Title    `json:"title,omitempty"`
	Range     []float64 `json:"range,omitempty"`
	GridColor string    `json:"gridcolor,omitempty"`
	Type      string    `json:"type,omitempty"`
}

// Geo configures the map projection and base layers.
type Geo struct {
	Projection     Projection `json:"projection"`
	ShowCoastlines bool       `json:"showcoastlines"`
	CoastlineColor string     `json:"coastlinecolor,omitempty"`
	ShowLand       bool       `json:"showland"`
	LandColor      string     `json:"landcolor,omitempty"`
	ShowOcean      bool       `json:"showocean"`
	OceanColor     string     `json:"oceancolor,omitempty"`
}

// Projection names a geo projection.
type Projection struct {
	Type string `json:"type"`
}

// ColorAxis is a shared continuous colour scale.
type ColorAxis struct {
	CMin       float64  `json:"cmin"`
	CMax       float64  `json:"cmax"`
	ColorScale string   `json:"colorscale"`
	ColorBar   ColorBar `json:"colorbar"`
}

// ColorBar labels a colour axis.
type ColorBar struct {
	Title Title `json:"title"`
}

// Margin in pixels.
type Margin struct {
	R int `json:"r"`
	T int `json:"t"`
	L int `json:"l"`
	B int `json:"b"`
}

// Placeholder returns a figure with only a title, used to prompt for a click.
func Placeholder(title string) Figure {
	return Figure{Data: []Trace{}, Layout: Layout{Title: Title{Text: title}}}
}

// IsPlaceholder reports whether the figure has no series at all.
func (f Figure) IsPlaceholder() bool { return len(f.Data) == 0 }

// Points counts data points across all traces.
func (f Figure) Points() int {
	n := 0
	for _, t := range f.Data {
		if t.Type == TypeChoropleth {
			n += len(t.Locations)
			continue
		}
		n += len(t.Y)
	}
	return n
}
