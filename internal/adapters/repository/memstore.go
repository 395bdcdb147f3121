package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/okian/co2dash/internal/domain/model"
)

type countryYear struct {
	country string
	year    int
}

// MemoryStore is the in-memory Store built once at startup.
type MemoryStore struct {
	yearRange *model.YearRange

	emissions []model.EmissionRecord
	sectors   []model.SectorRecord

	byYear    map[int][]int
	byCountry map[string][]int
	byKey     map[countryYear]int
	sectorKey map[countryYear]int

	countries []string
	years     []int

	duplicateEmissions int
	duplicateSectors   int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore indexes the given tables. The first row of a duplicated
// (country, year) pair wins; later ones are counted and discarded. The input
// slices are copied.
func NewMemoryStore(emissions []model.EmissionRecord, sectors []model.SectorRecord, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byYear:    make(map[int][]int),
		byCountry: make(map[string][]int),
		byKey:     make(map[countryYear]int, len(emissions)),
		sectorKey: make(map[countryYear]int, len(sectors)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, r := range emissions {
		if !s.inRange(r.Year) {
			continue
		}
		k := countryYear{r.Country, r.Year}
		if _, dup := s.byKey[k]; dup {
			s.duplicateEmissions++
			continue
		}
		i := len(s.emissions)
		s.emissions = append(s.emissions, r)
		s.byKey[k] = i
		s.byYear[r.Year] = append(s.byYear[r.Year], i)
		s.byCountry[r.Country] = append(s.byCountry[r.Country], i)
	}

	for _, r := range sectors {
		if !s.inRange(r.Year) {
			continue
		}
		k := countryYear{r.Country, r.Year}
		if _, dup := s.sectorKey[k]; dup {
			s.duplicateSectors++
			continue
		}
		s.sectorKey[k] = len(s.sectors)
		s.sectors = append(s.sectors, r)
	}

	for country, idx := range s.byCountry {
		sort.SliceStable(idx, func(a, b int) bool {
			return s.emissions[idx[a]].Year < s.emissions[idx[b]].Year
		})
		s.countries = append(s.countries, country)
	}
	sort.Strings(s.countries)
	for year := range s.byYear {
		s.years = append(s.years, year)
	}
	slices.Sort(s.years)

	return s
}

func (s *MemoryStore) inRange(year int) bool {
	return s.yearRange == nil || s.yearRange.Contains(year)
}

func (s *MemoryStore) rows(idx []int) []model.EmissionRecord {
	out := make([]model.EmissionRecord, len(idx))
	for i, j := range idx {
		out[i] = s.emissions[j]
	}
	return out
}

// EmissionsForYear returns the rows of one year in source order.
func (s *MemoryStore) EmissionsForYear(year int) []model.EmissionRecord {
	return s.rows(s.byYear[year])
}

// EmissionsForCountry returns the rows of one country ordered by year.
func (s *MemoryStore) EmissionsForCountry(country string) []model.EmissionRecord {
	return s.rows(s.byCountry[country])
}

// Sector returns the sector row of (country, year).
func (s *MemoryStore) Sector(country string, year int) (model.SectorRecord, bool) {
	i, ok := s.sectorKey[countryYear{country, year}]
	if !ok {
		return model.SectorRecord{}, false
	}
	return s.sectors[i], true
}

// LatestYear returns the maximum year of the emissions table.
func (s *MemoryStore) LatestYear() (int, bool) {
	if len(s.years) == 0 {
		return 0, false
	}
	return s.years[len(s.years)-1], true
}

// Countries returns every country of the emissions table, sorted.
func (s *MemoryStore) Countries() []string { return slices.Clone(s.countries) }

// Years returns every year of the emissions table, ascending.
func (s *MemoryStore) Years() []int { return slices.Clone(s.years) }

// Lookup returns the emissions row of (country, year).
func (s *MemoryStore) Lookup(_ context.Context, country string, year int) (model.EmissionRecord, error) {
	i, ok := s.byKey[countryYear{country, year}]
	if !ok {
		return model.EmissionRecord{}, fmt.Errorf("%w: %s %d", ErrNotFound, country, year)
	}
	return s.emissions[i], nil
}

// Stats reports table sizes.
func (s *MemoryStore) Stats() Stats {
	return Stats{
		EmissionRows:       len(s.emissions),
		SectorRows:         len(s.sectors),
		Countries:          len(s.countries),
		Years:              len(s.years),
		DuplicateEmissions: s.duplicateEmissions,
		DuplicateSectors:   s.duplicateSectors,
	}
}

// Emissions returns a copy of the emissions table in source order.
func (s *MemoryStore) Emissions() []model.EmissionRecord { return slices.Clone(s.emissions) }

// Sectors returns a copy of the sector table in source order.
func (s *MemoryStore) Sectors() []model.SectorRecord { return slices.Clone(s.sectors) }
