// Package model contains the emission records shared between the loader,
// the store and the renderers.
package model

// EmissionRecord is one row of the country-year emissions table.
type EmissionRecord struct {
	Country  string  `json:"country"`
	Code     string  `json:"code"`
	Year     int     `json:"year"`
	TotalCO2 float64 `json:"total_co2"`
}

// SectorRecord is one row of the country-year-sector table in wide form.
type SectorRecord struct {
	Country string               `json:"country"`
	Year    int                  `json:"year"`
	Values  [SectorCount]float64 `json:"values"`
}

// Value returns the emissions of sector s.
func (r SectorRecord) Value(s Sector) float64 {
	if !s.Valid() {
		return 0
	}
	return r.Values[s]
}

// YearRange is an inclusive range of years.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether year lies within the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}
