package dashcheck

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/co2dash/internal/domain/figure"
	"github.com/okian/co2dash/internal/domain/render"
)

func ptr[T any](v T) *T { return &v }

func TestVerifyMapClick(t *testing.T) {
	Convey("Given a map click response", t, func() {
		res := callbackResponse{
			Selection: wireSelection{Country: ptr("France")},
			Figures: map[string]figure.Figure{
				figureMap: {Data: []figure.Trace{{Type: figure.TypeChoropleth}}},
				figureTrend: {
					Data:   []figure.Trace{{Type: figure.TypeScatter, X: []any{1990.0, 2000.0}}},
					Layout: figure.Layout{Title: figure.Title{Text: "Total CO₂ Emissions Over Time: France"}, YAxis: &figure.Axis{Range: []float64{0, render.TrendYMax}}},
				},
				figureSector: figure.Placeholder(render.SectorPlaceholderTitle),
			},
		}

		Convey("When it satisfies every invariant", func() {
			v := &violations{country: "France"}
			verifyMapClick(v, res, "France")

			Convey("Then nothing is reported", func() {
				So(v.list, ShouldBeEmpty)
				So(trendYears(res.Figures[figureTrend]), ShouldResemble, []int{1990, 2000})
			})
		})

		Convey("When the sector figure is rendered without a year", func() {
			res.Figures[figureSector] = figure.Figure{Data: []figure.Trace{{Type: figure.TypeBar}}}
			v := &violations{country: "France"}
			verifyMapClick(v, res, "France")

			Convey("Then the placeholder violation is reported", func() {
				So(v.list, ShouldHaveLength, 1)
				So(v.list[0], ShouldStartWith, "France: sector figure")
			})
		})

		Convey("When a figure is missing", func() {
			delete(res.Figures, figureTrend)
			v := &violations{country: "France"}
			verifyMapClick(v, res, "France")

			Convey("Then the figure set is reported", func() {
				So(v.list, ShouldHaveLength, 1)
				So(v.list[0], ShouldContainSubstring, "returned figures")
			})
		})
	})
}

func TestVerifyTrendClick(t *testing.T) {
	Convey("Given a trend click response", t, func() {
		sector := figure.Figure{
			Data:   []figure.Trace{{Type: figure.TypeBar}},
			Layout: figure.Layout{Title: figure.Title{Text: "Sector Breakdown of CO₂ Emissions: France (2000)"}, YAxis: &figure.Axis{Range: []float64{0, render.SectorYMax}}},
		}
		res := callbackResponse{
			Selection: wireSelection{Country: ptr("France"), Year: ptr(2000)},
			Figures: map[string]figure.Figure{
				figureMap:    {Layout: figure.Layout{Title: figure.Title{Text: "Global CO₂ Emissions in 2000"}}},
				figureSector: sector,
			},
		}

		Convey("When it satisfies every invariant", func() {
			v := &violations{country: "France"}
			verifyTrendClick(v, res, "France", 2000)
			So(v.list, ShouldBeEmpty)
		})

		Convey("When the trend figure is re-rendered and the y axis drifts", func() {
			res.Figures[figureTrend] = figure.Figure{}
			sector.Layout.YAxis = &figure.Axis{Range: []float64{0, 1}}
			res.Figures[figureSector] = sector
			v := &violations{country: "France"}
			verifyTrendClick(v, res, "France", 2000)

			Convey("Then both are reported", func() {
				So(v.list, ShouldHaveLength, 2)
			})
		})

		Convey("When a later map click dropped the year", func() {
			res.Selection.Year = nil
			v := &violations{country: "France"}
			verifyStaleYear(v, res, "France", 2000)

			Convey("Then the stale year violation is reported", func() {
				So(v.list, ShouldHaveLength, 1)
				So(v.list[0], ShouldContainSubstring, "dropped year 2000")
			})
		})
	})
}
