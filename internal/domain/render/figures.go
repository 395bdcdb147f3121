package render

import (
	"fmt"

	"github.com/okian/co2dash/internal/domain/figure"
	"github.com/okian/co2dash/internal/domain/model"
	"github.com/okian/co2dash/internal/domain/selection"
)

// Figure titles and labels.
const (
	TrendPlaceholderTitle  = "Click a country to see its CO₂ trend!"
	SectorPlaceholderTitle = "Click on a year to see sector breakdown!"
	MapEmptyTitle          = "No emissions data loaded"

	mapTitleFmt    = "Global CO₂ Emissions in %d"
	trendTitleFmt  = "Total CO₂ Emissions Over Time: %s"
	sectorTitleFmt = "Sector Breakdown of CO₂ Emissions: %s (%d)"

	emissionsLabel = "CO₂ Emissions (Tonnes)"
	colorBarLabel  = "Total CO₂ Emissions (Tonnes)"
)

// plotly_white template colours.
const (
	white     = "white"
	gridColor = "#EBF0F8"
	lineColor = "#636EFA"
)

// MapYear resolves the year the map shows: the selected one, else the latest loaded.
func MapYear(ds Dataset, sel selection.Selection) (int, bool) {
	if y, ok := sel.Year(); ok {
		return y, true
	}
	return ds.LatestYear()
}

// Map renders the choropleth for the selected year, or the latest year when
// none is selected. The colour domain is [min of that year, ColorMax].
func Map(ds Dataset, sel selection.Selection) figure.Figure {
	year, ok := MapYear(ds, sel)
	if !ok {
		return figure.Placeholder(MapEmptyTitle)
	}

	rows := ds.EmissionsForYear(year)
	locations := make([]string, len(rows))
	z := make([]float64, len(rows))
	for i, r := range rows {
		locations[i] = r.Country
		z[i] = r.TotalCO2
	}

	return figure.Figure{
		Data: []figure.Trace{{
			Type:          figure.TypeChoropleth,
			Locations:     locations,
			Z:             z,
			LocationMode:  "country names",
			ColorAxis:     "coloraxis",
			HoverTemplate: "<b>%{location}</b><br>total_co2=%{z:,.0f}<extra></extra>",
		}},
		Layout: figure.Layout{
			Title: figure.Title{Text: fmt.Sprintf(mapTitleFmt, year)},
			Geo: &figure.Geo{
				Projection:     figure.Projection{Type: "natural earth"},
				ShowCoastlines: true,
				CoastlineColor: "gray",
				ShowLand:       true,
				LandColor:      "lightgray",
				ShowOcean:      true,
				OceanColor:     "lightblue",
			},
			ColorAxis: &figure.ColorAxis{
				CMin:       minOrZero(z),
				CMax:       ColorMax,
				ColorScale: "Reds",
				ColorBar:   figure.ColorBar{Title: figure.Title{Text: colorBarLabel}},
			},
			Margin:       &figure.Margin{R: 0, T: 40, L: 0, B: 0},
			PaperBGColor: white,
			PlotBGColor:  white,
		},
	}
}

// Trend renders total emissions over time for the selected country.
func Trend(ds Dataset, sel selection.Selection) figure.Figure {
	country, ok := sel.Country()
	if !ok {
		return figure.Placeholder(TrendPlaceholderTitle)
	}

	rows := ds.EmissionsForCountry(country)
	years := make([]int, len(rows))
	totals := make([]float64, len(rows))
	for i, r := range rows {
		years[i] = r.Year
		totals[i] = r.TotalCO2
	}

	return figure.Figure{
		Data: []figure.Trace{{
			Type: figure.TypeScatter,
			Mode: "lines",
			Name: country,
			X:    years,
			Y:    totals,
			Line: &figure.Line{Color: lineColor},
		}},
		Layout: figure.Layout{
			Title:        figure.Title{Text: fmt.Sprintf(trendTitleFmt, country)},
			XAxis:        &figure.Axis{Title: &figure.Title{Text: "Year"}, GridColor: gridColor},
			YAxis:        &figure.Axis{Title: &figure.Title{Text: emissionsLabel}, Range: []float64{0, TrendYMax}, GridColor: gridColor},
			PaperBGColor: white,
			PlotBGColor:  white,
		},
	}
}

// Sector renders the sector breakdown of the selected (country, year). The
// two fields may come from clicks made while different countries were shown.
func Sector(ds Dataset, sel selection.Selection) figure.Figure {
	country, hasCountry := sel.Country()
	year, hasYear := sel.Year()
	if !hasCountry || !hasYear {
		return figure.Placeholder(SectorPlaceholderTitle)
	}

	sectors := []string{}
	values := []float64{}
	if rec, ok := ds.Sector(country, year); ok {
		for _, row := range rec.Melt() {
			sectors = append(sectors, row.Sector)
			values = append(values, row.Value)
		}
	}

	return figure.Figure{
		Data: []figure.Trace{{
			Type:   figure.TypeBar,
			X:      sectors,
			Y:      values,
			Marker: &figure.Marker{Color: lineColor},
		}},
		Layout: figure.Layout{
			Title:        figure.Title{Text: fmt.Sprintf(sectorTitleFmt, country, year)},
			XAxis:        &figure.Axis{Title: &figure.Title{Text: "Sector"}, Type: "category"},
			YAxis:        &figure.Axis{Title: &figure.Title{Text: emissionsLabel}, Range: []float64{0, SectorYMax}, GridColor: gridColor},
			PaperBGColor: white,
			PlotBGColor:  white,
		},
	}
}

func minOrZero(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := vs[0]
	for _, v := range vs[1:] {
		m = min(m, v)
	}
	return m
}

// SectorBars returns the bars of a sector figure as long rows.
func SectorBars(f figure.Figure) []model.SectorValue {
	if f.IsPlaceholder() {
		return nil
	}
	names, _ := f.Data[0].X.([]string)
	out := make([]model.SectorValue, 0, len(names))
	for i, n := range names {
		out = append(out, model.SectorValue{Sector: n, Value: f.Data[0].Y[i]})
	}
	return out
}
