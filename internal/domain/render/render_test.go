package render_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/okian/co2dash/internal/domain/figure"
	"github.com/okian/co2dash/internal/domain/model"
	"github.com/okian/co2dash/internal/domain/render"
	"github.com/okian/co2dash/internal/domain/selection"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeDataset is a minimal in-memory Dataset.
type fakeDataset struct {
	emissions []model.EmissionRecord
	sectors   []model.SectorRecord
}

func (f *fakeDataset) EmissionsForYear(year int) []model.EmissionRecord {
	var out []model.EmissionRecord
	for _, r := range f.emissions {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeDataset) EmissionsForCountry(country string) []model.EmissionRecord {
	var out []model.EmissionRecord
	for _, r := range f.emissions {
		if r.Country == country {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func (f *fakeDataset) Sector(country string, year int) (model.SectorRecord, bool) {
	for _, r := range f.sectors {
		if r.Country == country && r.Year == year {
			return r, true
		}
	}
	return model.SectorRecord{}, false
}

func (f *fakeDataset) LatestYear() (int, bool) {
	if len(f.emissions) == 0 {
		return 0, false
	}
	m := f.emissions[0].Year
	for _, r := range f.emissions {
		m = max(m, r.Year)
	}
	return m, true
}

func newFakeDataset() *fakeDataset {
	ds := &fakeDataset{}
	for y := 1990; y <= 2020; y++ {
		ds.emissions = append(ds.emissions,
			model.EmissionRecord{Country: "France", Code: "FRA", Year: y, TotalCO2: float64(300_000_000 + y)},
			model.EmissionRecord{Country: "Germany", Code: "DEU", Year: y, TotalCO2: float64(800_000_000 + y)},
		)
	}
	// Chile only has a few, unordered years.
	for _, y := range []int{2010, 1995, 2001} {
		ds.emissions = append(ds.emissions, model.EmissionRecord{Country: "Chile", Code: "CHL", Year: y, TotalCO2: 7e7})
	}
	ds.sectors = append(ds.sectors, model.SectorRecord{
		Country: "France", Year: 2005,
		Values: [model.SectorCount]float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
	})
	return ds
}

func TestMapRenderer(t *testing.T) {
	Convey("Given the loaded tables", t, func() {
		ds := newFakeDataset()

		Convey("When no year is selected", func() {
			f := render.Map(ds, selection.Initial())

			Convey("Then the latest year is shown", func() {
				So(f.Layout.Title.Text, ShouldEqual, "Global CO₂ Emissions in 2020")
				So(f.Data, ShouldHaveLength, 1)
				So(f.Data[0].Type, ShouldEqual, figure.TypeChoropleth)
				So(f.Data[0].Locations, ShouldResemble, []string{"France", "Germany"})
				So(f.Data[0].LocationMode, ShouldEqual, "country names")
			})
		})

		Convey("When any year in range is selected", func() {
			Convey("Then the colour upper bound is fixed and the lower bound is the year's minimum", func() {
				for y := 1990; y <= 2020; y++ {
					f := render.Map(ds, selection.Initial().WithYear(y))
					So(f.Layout.ColorAxis.CMax, ShouldEqual, 15_000_000_000)
					So(f.Layout.ColorAxis.CMin, ShouldEqual, minZ(f.Data[0].Z))
				}
			})
		})

		Convey("When the selected year has no rows", func() {
			f := render.Map(ds, selection.Initial().WithYear(1850))

			Convey("Then the map is empty with a zero lower bound", func() {
				So(f.Layout.Title.Text, ShouldEqual, "Global CO₂ Emissions in 1850")
				So(f.Points(), ShouldEqual, 0)
				So(f.Layout.ColorAxis.CMin, ShouldEqual, 0)
				So(f.Layout.ColorAxis.CMax, ShouldEqual, render.ColorMax)
			})
		})

		Convey("When a country is selected but no year", func() {
			f := render.Map(ds, selection.Initial().WithCountry("Chile"))

			Convey("Then the country does not affect the map", func() {
				So(f.Layout.Title.Text, ShouldEqual, "Global CO₂ Emissions in 2020")
			})
		})

		Convey("When nothing is loaded", func() {
			f := render.Map(&fakeDataset{}, selection.Initial())

			Convey("Then a placeholder is returned", func() {
				So(f.IsPlaceholder(), ShouldBeTrue)
				So(f.Layout.Title.Text, ShouldEqual, render.MapEmptyTitle)
			})
		})
	})
}

func TestTrendRenderer(t *testing.T) {
	Convey("Given the loaded tables", t, func() {
		ds := newFakeDataset()

		Convey("When no country is selected", func() {
			f := render.Trend(ds, selection.Initial().WithYear(2005))

			Convey("Then a prompting placeholder with no series is returned", func() {
				So(f.IsPlaceholder(), ShouldBeTrue)
				So(f.Layout.Title.Text, ShouldEqual, "Click a country to see its CO₂ trend!")
			})
		})

		Convey("When France is clicked on the map", func() {
			sel, err := selection.Apply(selection.Initial(), selection.MapClick("France"))
			So(err, ShouldBeNil)
			f := render.Trend(ds, sel)

			Convey("Then the title names the country and the y range is fixed", func() {
				So(f.Layout.Title.Text, ShouldEqual, "Total CO₂ Emissions Over Time: France")
				So(f.Layout.YAxis.Range, ShouldResemble, []float64{0, 15_000_000_000})
				So(f.Layout.XAxis.Title.Text, ShouldEqual, "Year")
			})

			Convey("Then x holds every year once in increasing order", func() {
				years := f.Data[0].X.([]int)
				So(years, ShouldHaveLength, 31)
				So(years[0], ShouldEqual, 1990)
				So(years[30], ShouldEqual, 2020)
				So(f.Data[0].Y, ShouldHaveLength, 31)
			})
		})

		Convey("When a country with sparse years is selected", func() {
			f := render.Trend(ds, selection.Initial().WithCountry("Chile"))

			Convey("Then x is exactly its years, strictly increasing", func() {
				So(f.Data[0].X, ShouldResemble, []int{1995, 2001, 2010})
			})
		})

		Convey("When a country without rows is selected", func() {
			f := render.Trend(ds, selection.Initial().WithCountry("Atlantis"))

			Convey("Then one empty series is returned", func() {
				So(f.IsPlaceholder(), ShouldBeFalse)
				So(f.Points(), ShouldEqual, 0)
				So(f.Data[0].X, ShouldResemble, []int{})
			})
		})
	})
}

func TestSectorRenderer(t *testing.T) {
	Convey("Given the loaded tables", t, func() {
		ds := newFakeDataset()

		Convey("When either field is missing", func() {
			for _, sel := range []selection.Selection{
				selection.Initial(),
				selection.Initial().WithCountry("France"),
				selection.Initial().WithYear(2005),
			} {
				f := render.Sector(ds, sel)
				So(f.IsPlaceholder(), ShouldBeTrue)
				So(f.Layout.Title.Text, ShouldEqual, "Click on a year to see sector breakdown!")
			}
		})

		Convey("When a (country, year) with a sector row is selected", func() {
			f := render.Sector(ds, selection.Initial().WithCountry("France").WithYear(2005))

			Convey("Then nine bars are drawn in fixed sector order", func() {
				So(f.Layout.Title.Text, ShouldEqual, "Sector Breakdown of CO₂ Emissions: France (2005)")
				So(f.Layout.YAxis.Range, ShouldResemble, []float64{0, 8_000_000_000})
				names := f.Data[0].X.([]string)
				So(names, ShouldHaveLength, 9)
				So(names[0], ShouldEqual, "Buildings")
				So(names[8], ShouldEqual, "Bunker Fuels")
				So(f.Data[0].Y, ShouldResemble, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
			})

			Convey("Then the bars pivot back into the stored record", func() {
				rec, err := model.Pivot("France", 2005, render.SectorBars(f))
				So(err, ShouldBeNil)
				stored, _ := ds.Sector("France", 2005)
				So(rec.Values, ShouldResemble, stored.Values)
			})
		})

		Convey("When the (country, year) has no sector row", func() {
			f := render.Sector(ds, selection.Initial().WithCountry("Chile").WithYear(2005))

			Convey("Then the chart has zero bars and no error", func() {
				So(f.IsPlaceholder(), ShouldBeFalse)
				So(f.Points(), ShouldEqual, 0)
				So(f.Layout.Title.Text, ShouldEqual, "Sector Breakdown of CO₂ Emissions: Chile (2005)")
			})
		})

		Convey("When the year was picked on France's trend and the map then moves to Germany", func() {
			sel := selection.Initial()
			var err error
			sel, err = selection.Apply(sel, selection.MapClick("France"))
			So(err, ShouldBeNil)
			sel, err = selection.Apply(sel, selection.TrendClick(2005))
			So(err, ShouldBeNil)
			sel, err = selection.Apply(sel, selection.MapClick("Germany"))
			So(err, ShouldBeNil)

			f := render.Sector(ds, sel)

			Convey("Then the breakdown shows Germany with the stale year", func() {
				So(f.Layout.Title.Text, ShouldEqual, "Sector Breakdown of CO₂ Emissions: Germany (2005)")
				So(f.Points(), ShouldEqual, 0)
			})
		})
	})
}

func TestCallbackGraph(t *testing.T) {
	Convey("Given the renderer dependency graph", t, func() {
		Convey("Then a map click re-evaluates every figure", func() {
			So(render.Affected(selection.SourceMap), ShouldResemble,
				[]render.ID{render.MapID, render.TrendID, render.SectorID})
		})

		Convey("Then a trend click re-evaluates the map and the sector chart", func() {
			So(render.Affected(selection.SourceTrend), ShouldResemble,
				[]render.ID{render.MapID, render.SectorID})
		})

		Convey("Then figure ids parse", func() {
			id, err := render.ParseID("sector")
			So(err, ShouldBeNil)
			So(id, ShouldEqual, render.SectorID)
			_, err = render.ParseID("pie")
			So(errors.Is(err, render.ErrUnknownFigure), ShouldBeTrue)
			So(render.IDs(), ShouldResemble, []render.ID{render.MapID, render.TrendID, render.SectorID})
		})

		Convey("Then Render dispatches by id", func() {
			ds := newFakeDataset()
			f, err := render.Render(ds, render.TrendID, selection.Initial())
			So(err, ShouldBeNil)
			So(f.Layout.Title.Text, ShouldEqual, render.TrendPlaceholderTitle)

			_, err = render.Render(ds, "pie", selection.Initial())
			So(errors.Is(err, render.ErrUnknownFigure), ShouldBeTrue)

			all := render.All(ds, selection.Initial())
			So(all, ShouldHaveLength, 3)
		})
	})
}

func minZ(z []float64) float64 {
	m := z[0]
	for _, v := range z {
		m = min(m, v)
	}
	return m
}
