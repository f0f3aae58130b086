package engine

import "github.com/siana-blue/poufalouf/core"

// Store is an arena keyed by entity id
// Iteration follows insertion order so ticks are deterministic; removal preserves that order
// Not safe for concurrent use, the simulation goroutine owns it
type Store[T any] struct {
	items    map[core.Entity]T
	entities []core.Entity
}

// NewStore creates an empty store
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		items:    make(map[core.Entity]T),
		entities: make([]core.Entity, 0, 64),
	}
}

// Set inserts or replaces the value for e
func (s *Store[T]) Set(e core.Entity, val T) {
	if _, exists := s.items[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.items[e] = val
}

// Get returns the value for e, false once e has been removed
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	val, ok := s.items[e]
	return val, ok
}

// Has reports whether e is live
func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.items[e]
	return ok
}

// Remove deletes e, keeping the remaining iteration order
func (s *Store[T]) Remove(e core.Entity) bool {
	if _, exists := s.items[e]; !exists {
		return false
	}
	delete(s.items, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
	return true
}

// Entities returns a read-only view in insertion order
// The slice is invalidated by the next Set or Remove
func (s *Store[T]) Entities() []core.Entity {
	return s.entities
}

// Snapshot returns a copy of the ids, safe to range over while mutating the store
func (s *Store[T]) Snapshot() []core.Entity {
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Len returns the number of live entries
func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Clear removes every entry
func (s *Store[T]) Clear() {
	s.items = make(map[core.Entity]T)
	s.entities = s.entities[:0]
}
