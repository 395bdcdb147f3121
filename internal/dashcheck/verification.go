package dashcheck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/co2dash/internal/domain/figure"
	"github.com/okian/co2dash/internal/domain/render"
)

// violations collects invariant failures for one walk.
type violations struct {
	country string
	list    []string
}

func (v *violations) addf(format string, args ...any) {
	v.list = append(v.list, v.country+": "+fmt.Sprintf(format, args...))
}

// verifyMapClick checks the response to the first map click of a fresh session.
func verifyMapClick(v *violations, res callbackResponse, country string) {
	if res.Selection.Country == nil || *res.Selection.Country != country {
		v.addf("map click did not select the country")
	}
	if res.Selection.Year != nil {
		v.addf("fresh session has year %d after a map click", *res.Selection.Year)
	}
	if !hasFigures(res, figureMap, figureTrend, figureSector) {
		v.addf("map click returned figures %v", figureKeys(res))
		return
	}

	trend := res.Figures[figureTrend]
	if !strings.Contains(trend.Layout.Title.Text, country) {
		v.addf("trend title %q does not name the country", trend.Layout.Title.Text)
	}
	verifyYRange(v, figureTrend, trend, render.TrendYMax)

	if sector := res.Figures[figureSector]; sector.Layout.Title.Text != render.SectorPlaceholderTitle {
		v.addf("sector figure is %q without a year", sector.Layout.Title.Text)
	}
}

// verifyTrendClick checks the response to a year click.
func verifyTrendClick(v *violations, res callbackResponse, country string, year int) {
	if res.Selection.Year == nil || *res.Selection.Year != year {
		v.addf("trend click did not select year %d", year)
	}
	if res.Selection.Country == nil || *res.Selection.Country != country {
		v.addf("trend click changed the country")
	}
	if _, ok := res.Figures[figureTrend]; ok {
		v.addf("trend click re-rendered the trend figure")
	}
	if !hasFigures(res, figureMap, figureSector) {
		v.addf("trend click returned figures %v", figureKeys(res))
		return
	}

	y := strconv.Itoa(year)
	if title := res.Figures[figureMap].Layout.Title.Text; !strings.Contains(title, y) {
		v.addf("map title %q does not name year %d", title, year)
	}
	verifySector(v, res.Figures[figureSector], country, year)
}

// verifyStaleYear checks that a map click keeps the previously picked year.
func verifyStaleYear(v *violations, res callbackResponse, country string, year int) {
	if res.Selection.Year == nil || *res.Selection.Year != year {
		v.addf("map click to %s dropped year %d", country, year)
	}
	if !hasFigures(res, figureSector) {
		v.addf("map click returned figures %v", figureKeys(res))
		return
	}
	verifySector(v, res.Figures[figureSector], country, year)
}

func verifySector(v *violations, sector figure.Figure, country string, year int) {
	title := sector.Layout.Title.Text
	if !strings.Contains(title, country) || !strings.Contains(title, "("+strconv.Itoa(year)+")") {
		v.addf("sector title %q does not name %s (%d)", title, country, year)
	}
	if sector.IsPlaceholder() {
		v.addf("sector figure has no bar series")
		return
	}
	verifyYRange(v, figureSector, sector, render.SectorYMax)
}

func verifyYRange(v *violations, name string, f figure.Figure, upper float64) {
	if f.Layout.YAxis == nil || len(f.Layout.YAxis.Range) != 2 ||
		f.Layout.YAxis.Range[0] != 0 || f.Layout.YAxis.Range[1] != upper {
		v.addf("%s y axis is not fixed to [0, %g]", name, upper)
	}
}

func hasFigures(res callbackResponse, ids ...string) bool {
	for _, id := range ids {
		if _, ok := res.Figures[id]; !ok {
			return false
		}
	}
	return true
}

func figureKeys(res callbackResponse) []string {
	keys := make([]string, 0, len(res.Figures))
	for k := range res.Figures {
		keys = append(keys, k)
	}
	return keys
}

// trendYears extracts the x values of a decoded trend figure.
func trendYears(f figure.Figure) []int {
	if f.IsPlaceholder() {
		return nil
	}
	xs, _ := f.Data[0].X.([]any)
	years := make([]int, 0, len(xs))
	for _, x := range xs {
		if n, ok := x.(float64); ok {
			years = append(years, int(n))
		}
	}
	return years
}
