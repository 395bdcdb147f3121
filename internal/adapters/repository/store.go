// Package repository holds the loaded emission tables behind a read-only,
// indexed store. Tables are immutable once the store is built, so reads need
// no locking.
package repository

import (
	"context"

	"github.com/okian/co2dash/internal/domain/model"
)

// Store provides read access to the emission tables.
type Store interface {
	// EmissionsForYear returns the rows of one year in source order.
	EmissionsForYear(year int) []model.EmissionRecord
	// EmissionsForCountry returns the rows of one country ordered by year.
	EmissionsForCountry(country string) []model.EmissionRecord
	// Sector returns the sector row of (country, year).
	Sector(country string, year int) (model.SectorRecord, bool)
	// LatestYear returns the maximum year of the emissions table.
	LatestYear() (int, bool)

	// Countries returns every country of the emissions table, sorted.
	Countries() []string
	// Years returns every year of the emissions table, ascending.
	Years() []int
	// Lookup returns the emissions row of (country, year) or ErrNotFound.
	Lookup(ctx context.Context, country string, year int) (model.EmissionRecord, error)
	// Stats reports table sizes.
	Stats() Stats
}

// Stats summarises the indexed tables.
type Stats struct {
	EmissionRows       int `json:"emission_rows"`
	SectorRows         int `json:"sector_rows"`
	Countries          int `json:"countries"`
	Years              int `json:"years"`
	DuplicateEmissions int `json:"duplicate_emissions"`
	DuplicateSectors   int `json:"duplicate_sectors"`
}
