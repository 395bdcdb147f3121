package model

import (
	"errors"
	"fmt"
)

// Sector is one of the fixed emission categories of the sector table.
type Sector int

// The sector set is fixed; the order is the bar order of the breakdown chart.
const (
	SectorBuildings Sector = iota
	SectorIndustry
	SectorLandUseForestry
	SectorOtherFuelCombustion
	SectorTransport
	SectorManufacturingConstruction
	SectorFugitiveEnergy
	SectorElectricityHeat
	SectorBunkerFuels

	SectorCount = 9
)

var sectorNames = [SectorCount]string{
	SectorBuildings:                 "Buildings",
	SectorIndustry:                  "Industry",
	SectorLandUseForestry:           "Land Use & Forestry",
	SectorOtherFuelCombustion:       "Other Fuel Combustion",
	SectorTransport:                 "Transport",
	SectorManufacturingConstruction: "Manufacturing & Construction",
	SectorFugitiveEnergy:            "Fugitive Energy Emissions",
	SectorElectricityHeat:           "Electricity & Heat",
	SectorBunkerFuels:               "Bunker Fuels",
}

// Sentinel kinds for reshaping errors.
var (
	ErrUnknownSector   = errors.New("unknown sector")
	ErrDuplicateSector = errors.New("duplicate sector")
	ErrMissingSector   = errors.New("missing sector")
)

// Sectors returns all sectors in display order.
func Sectors() []Sector {
	out := make([]Sector, SectorCount)
	for i := range out {
		out[i] = Sector(i)
	}
	return out
}

// Valid reports whether s is one of the fixed sectors.
func (s Sector) Valid() bool { return s >= 0 && s < SectorCount }

// String returns the canonical display name.
func (s Sector) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Sector(%d)", int(s))
	}
	return sectorNames[s]
}

// ParseSector maps a canonical display name back to its Sector.
func ParseSector(name string) (Sector, error) {
	for i, n := range sectorNames {
		if n == name {
			return Sector(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSector, name)
}

// SectorValue is one row of the long form of a SectorRecord.
type SectorValue struct {
	Country string  `json:"country"`
	Year    int     `json:"year"`
	Sector  string  `json:"sector"`
	Value   float64 `json:"emissions"`
}

// Melt reshapes a wide record into one row per sector, in display order.
func (r SectorRecord) Melt() []SectorValue {
	out := make([]SectorValue, 0, SectorCount)
	for _, s := range Sectors() {
		out = append(out, SectorValue{
			Country: r.Country,
			Year:    r.Year,
			Sector:  s.String(),
			Value:   r.Values[s],
		})
	}
	return out
}

// Pivot rebuilds a wide record from long rows. Every sector must appear exactly once.
func Pivot(country string, year int, rows []SectorValue) (SectorRecord, error) {
	rec := SectorRecord{Country: country, Year: year}
	var seen [SectorCount]bool
	for _, row := range rows {
		s, err := ParseSector(row.Sector)
		if err != nil {
			return SectorRecord{}, err
		}
		if seen[s] {
			return SectorRecord{}, fmt.Errorf("%w: %s", ErrDuplicateSector, row.Sector)
		}
		seen[s] = true
		rec.Values[s] = row.Value
	}
	for s, ok := range seen {
		if !ok {
			return SectorRecord{}, fmt.Errorf("%w: %s", ErrMissingSector, Sector(s))
		}
	}
	return rec, nil
}
