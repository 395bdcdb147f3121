// Package session keeps the latest selection of each browser session.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/google/uuid"

	"github.com/okian/co2dash/internal/domain/selection"
	"github.com/okian/co2dash/pkg/logger"
	"github.com/okian/co2dash/pkg/metrics"
)

const defaultCapacity = 10_000

// Store is a bounded map from session id to selection. When full, the least
// recently used session is evicted. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	cache    *lru.Cache
	capacity int
	logger   logger.Logger
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = lru.New(s.capacity)
	s.cache.OnEvicted = s.onEvicted
	return s
}

// onEvicted runs with mu held.
func (s *Store) onEvicted(key lru.Key, _ any) {
	metrics.RecordSessionEviction()
	if s.logger != nil {
		s.logger.Debug(context.Background(), "session evicted", logger.String("session_id", fmt.Sprint(key)))
	}
}

// Create registers a new session holding the initial selection.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.Put(id, selection.Initial())
	return id
}

// Get returns the selection of a session.
func (s *Store) Get(id string) (selection.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(id)
	if !ok {
		return selection.Initial(), false
	}
	return v.(selection.Selection), true
}

// Resolve returns the selection of id, creating the session when the id is
// unknown. An empty id gets a freshly issued one; a malformed id is rejected.
func (s *Store) Resolve(id string) (string, selection.Selection, error) {
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return "", selection.Initial(), fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.cache.Get(id); ok {
		return id, v.(selection.Selection), nil
	}
	sel := selection.Initial()
	s.add(id, sel)
	return id, sel, nil
}

// Put stores the selection of a session.
func (s *Store) Put(id string, sel selection.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(id, sel)
}

func (s *Store) add(id string, sel selection.Selection) {
	s.cache.Add(id, sel)
	metrics.UpdateSessionsActive(s.cache.Len())
}

// Len returns the number of sessions held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Capacity returns the maximum number of sessions held.
func (s *Store) Capacity() int {
	return s.capacity
}
