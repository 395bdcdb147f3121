package dataset

import (
	"github.com/okian/co2dash/internal/domain/model"
	"github.com/okian/co2dash/pkg/logger"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithDelimiter sets the field separator.
func WithDelimiter(d rune) Option {
	return func(l *Loader) {
		if d != 0 {
			l.delimiter = d
		}
	}
}

// WithYearRange sets the inclusive range of years kept.
func WithYearRange(r model.YearRange) Option {
	return func(l *Loader) {
		if r.Min <= r.Max {
			l.years = r
		}
	}
}

// WithLogger sets the logger used for load reports.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}
