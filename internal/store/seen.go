package store

import (
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	lru "github.com/hashicorp/golang-lru/v2"
)

// SeenSet remembers the most recent update keys so redelivered updates can be dropped.
// The bloom filter answers most negative lookups without touching the map.
type SeenSet struct {
	mu     sync.Mutex
	keys   map[string]struct{}
	filter *bloom.BloomFilter
	order  *lru.Cache[string, struct{}]
}

// NewSeenSet creates a set holding at most capacity keys.
func NewSeenSet(capacity int, falsePositiveRate float64) (*SeenSet, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("seen set capacity must be positive, got %d", capacity)
	}
	if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
		return nil, fmt.Errorf("false positive rate must be in (0, 1), got %v", falsePositiveRate)
	}

	s := &SeenSet{
		keys:   make(map[string]struct{}),
		filter: bloom.NewWithEstimates(uint(capacity), falsePositiveRate),
	}

	// Evictions run inside Add, with mu already held.
	order, err := lru.NewWithEvict[string, struct{}](capacity, func(key string, _ struct{}) {
		delete(s.keys, key)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create seen set order: %w", err)
	}
	s.order = order

	return s, nil
}

// Mark records key and reports whether it had already been seen.
func (s *SeenSet) Mark(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter.TestString(key) {
		if _, ok := s.keys[key]; ok {
			return true
		}
	}

	s.keys[key] = struct{}{}
	s.filter.AddString(key)
	s.order.Add(key, struct{}{})
	return false
}
