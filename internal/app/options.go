package service

import (
	"github.com/okian/co2dash/internal/adapters/repository"
	"github.com/okian/co2dash/internal/domain/model"
	"github.com/okian/co2dash/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataFiles sets the emissions and sector source paths.
func WithDataFiles(emissionsPath, sectorsPath string) Option {
	return func(s *Service) {
		if emissionsPath != "" {
			s.emissionsPath = emissionsPath
		}
		if sectorsPath != "" {
			s.sectorsPath = sectorsPath
		}
	}
}

// WithDelimiter sets the field separator of both sources.
func WithDelimiter(d rune) Option {
	return func(s *Service) {
		if d != 0 {
			s.delimiter = d
		}
	}
}

// WithYearRange sets the inclusive range of years loaded.
func WithYearRange(r model.YearRange) Option {
	return func(s *Service) {
		if r.Min <= r.Max {
			s.years = r
		}
	}
}

// WithSessionCapacity bounds the number of browser sessions held.
func WithSessionCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sessionCapacity = n
		}
	}
}

// WithExportSize sets the size of exported images.
func WithExportSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.exportWidth, s.exportHeight = width, height
		}
	}
}

// WithStore serves an already built store instead of loading the data files.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}
