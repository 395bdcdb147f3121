package model_test

import (
	"errors"
	"testing"

	"github.com/okian/co2dash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRecord() model.SectorRecord {
	return model.SectorRecord{
		Country: "France",
		Year:    2005,
		Values: [model.SectorCount]float64{
			1.1e7, 2.2e7, 0, 3.3e6, 1.23456789e8, 4.4e7, 0.5, 5.5e7, 9.75e6,
		},
	}
}

func TestSectors(t *testing.T) {
	Convey("Given the fixed sector set", t, func() {
		sectors := model.Sectors()

		Convey("Then there are nine sectors in display order", func() {
			So(len(sectors), ShouldEqual, 9)
			So(sectors[0].String(), ShouldEqual, "Buildings")
			So(sectors[2].String(), ShouldEqual, "Land Use & Forestry")
			So(sectors[8].String(), ShouldEqual, "Bunker Fuels")
		})

		Convey("Then every name parses back to its sector", func() {
			for _, s := range sectors {
				got, err := model.ParseSector(s.String())
				So(err, ShouldBeNil)
				So(got, ShouldEqual, s)
			}
		})

		Convey("Then unknown names are rejected", func() {
			_, err := model.ParseSector("Aviation")
			So(errors.Is(err, model.ErrUnknownSector), ShouldBeTrue)
			So(model.Sector(42).Valid(), ShouldBeFalse)
			So(model.Sector(42).String(), ShouldEqual, "Sector(42)")
		})
	})
}

func TestMeltPivot(t *testing.T) {
	Convey("Given a wide sector record", t, func() {
		rec := sampleRecord()

		Convey("When it is melted to long form", func() {
			rows := rec.Melt()

			Convey("Then there is one row per sector carrying the identifiers", func() {
				So(len(rows), ShouldEqual, model.SectorCount)
				for i, row := range rows {
					So(row.Country, ShouldEqual, "France")
					So(row.Year, ShouldEqual, 2005)
					So(row.Sector, ShouldEqual, model.Sector(i).String())
					So(row.Value, ShouldEqual, rec.Values[i])
				}
			})

			Convey("And pivoted back", func() {
				back, err := model.Pivot(rec.Country, rec.Year, rows)

				Convey("Then all nine values survive exactly", func() {
					So(err, ShouldBeNil)
					So(back, ShouldResemble, rec)
				})
			})

			Convey("And pivoted back from shuffled rows", func() {
				shuffled := append([]model.SectorValue{}, rows[5:]...)
				shuffled = append(shuffled, rows[:5]...)
				back, err := model.Pivot(rec.Country, rec.Year, shuffled)

				Convey("Then the order of long rows does not matter", func() {
					So(err, ShouldBeNil)
					So(back, ShouldResemble, rec)
				})
			})
		})

		Convey("When long rows miss a sector", func() {
			_, err := model.Pivot("France", 2005, rec.Melt()[1:])

			Convey("Then pivot fails", func() {
				So(errors.Is(err, model.ErrMissingSector), ShouldBeTrue)
			})
		})

		Convey("When long rows repeat a sector", func() {
			rows := append(rec.Melt(), rec.Melt()[0])
			_, err := model.Pivot("France", 2005, rows)

			Convey("Then pivot fails", func() {
				So(errors.Is(err, model.ErrDuplicateSector), ShouldBeTrue)
			})
		})

		Convey("When reading a single sector value", func() {
			So(rec.Value(model.SectorTransport), ShouldEqual, 1.23456789e8)
			So(rec.Value(model.Sector(-1)), ShouldEqual, 0)
		})
	})
}

func TestYearRange(t *testing.T) {
	Convey("Given the supported year range", t, func() {
		r := model.YearRange{Min: 1990, Max: 2020}

		Convey("Then the bounds are inclusive", func() {
			So(r.Contains(1990), ShouldBeTrue)
			So(r.Contains(2020), ShouldBeTrue)
			So(r.Contains(1989), ShouldBeFalse)
			So(r.Contains(2021), ShouldBeFalse)
		})
	})
}
