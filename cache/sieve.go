package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

type entry[K comparable, V any] struct {
	key     K
	value   V
	visited atomic.Bool
	element *list.Element
}

// Sieve is a fixed capacity cache using SIEVE eviction. Entries are queued newest first. When the cache is full a
// hand walks from the oldest entry towards the newest, clearing the visited mark of every entry read since the hand
// last passed and evicting the first unmarked entry. The hand keeps its place between evictions.
//
// Sieve is safe for concurrent use.
type Sieve[K comparable, V any] struct {
	lock  sync.RWMutex
	store map[K]*entry[K, V]
	queue *list.List
	hand  *list.Element
	stats Stats
}

// NewSieve creates a SIEVE cache holding at most capacity entries. A non-positive capacity holds one entry.
func NewSieve[K comparable, V any](capacity int) Cache[K, V] {
	if capacity <= 0 {
		capacity = 1
	}

	return &Sieve[K, V]{
		store: make(map[K]*entry[K, V], capacity),
		queue: list.New(),
		stats: NewStats(capacity),
	}
}

func (s *Sieve[K, V]) Stats() Stats {
	return s.stats
}

// Put stores value under key. Replacing the value of a present key counts as a visit.
func (s *Sieve[K, V]) Put(key K, value V) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if existing, exists := s.store[key]; exists {
		existing.value = value
		existing.visited.Store(true)

		return
	}

	if s.queue.Len() >= s.stats.Capacity {
		s.evict()
	}

	s.store[key] = &entry[K, V]{
		key:     key,
		value:   value,
		element: s.queue.PushFront(key),
	}

	s.stats.put()
}

func (s *Sieve[K, V]) Get(key K) (V, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if found, exists := s.store[key]; exists {
		s.stats.hit()
		found.visited.Store(true)

		return found.value, true
	}

	s.stats.miss()

	var empty V
	return empty, false
}

// evict must be called with the write lock held.
func (s *Sieve[K, V]) evict() {
	hand := s.hand

	if hand == nil {
		hand = s.queue.Back()
	}

	victim := s.store[hand.Value.(K)]

	for victim.visited.Load() {
		victim.visited.Store(false)

		if hand = hand.Prev(); hand == nil {
			hand = s.queue.Back()
		}

		victim = s.store[hand.Value.(K)]
	}

	s.hand = hand.Prev()
	s.queue.Remove(victim.element)
	delete(s.store, victim.key)

	s.stats.evict()
}
