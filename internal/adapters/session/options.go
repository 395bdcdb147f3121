package session

import "github.com/okian/co2dash/pkg/logger"

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithCapacity bounds the number of sessions held.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithLogger sets the logger used for eviction messages.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.logger = log
		}
	}
}
