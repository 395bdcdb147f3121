package repository

import "github.com/okian/co2dash/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithYearRange drops rows outside r while indexing.
func WithYearRange(r model.YearRange) Option {
	return func(s *MemoryStore) {
		if r.Min <= r.Max {
			s.yearRange = &r
		}
	}
}
