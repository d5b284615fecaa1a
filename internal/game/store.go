package game

import (
	"fmt"

	"github.com/tomz197/asteroids-arena/internal/object"
)

// Store keeps entities in insertion order, keyed by id.
// Entities are never removed while iterating; callers collect ids and call
// Remove once after the pass.
type Store[T any] struct {
	ids   []object.ID
	items []T
	index map[object.ID]int
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{index: make(map[object.ID]int)}
}

// Add appends an entity. Adding an id that is already present is a bug in
// id allocation and panics.
func (s *Store[T]) Add(id object.ID, item T) {
	if _, ok := s.index[id]; ok {
		panic(fmt.Sprintf("game: duplicate id %d in store", id))
	}
	s.index[id] = len(s.items)
	s.ids = append(s.ids, id)
	s.items = append(s.items, item)
}

// Has reports whether id is present.
func (s *Store[T]) Has(id object.ID) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of entities.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Items returns the entities in insertion order. The slice is owned by the
// store and is valid until the next mutation.
func (s *Store[T]) Items() []T {
	return s.items
}

// Remove drops every id in set in a single pass, keeping the order of the
// remaining entities. Ids that are not present are ignored.
func (s *Store[T]) Remove(set map[object.ID]struct{}) {
	if len(set) == 0 {
		return
	}
	n := 0
	for i, id := range s.ids {
		if _, drop := set[id]; drop {
			delete(s.index, id)
			continue
		}
		s.ids[n] = id
		s.items[n] = s.items[i]
		s.index[id] = n
		n++
	}
	var zero T
	for i := n; i < len(s.items); i++ {
		s.items[i] = zero
	}
	s.ids = s.ids[:n]
	s.items = s.items[:n]
}

// Clear removes all entities.
func (s *Store[T]) Clear() {
	clear(s.index)
	clear(s.items)
	s.ids = s.ids[:0]
	s.items = s.items[:0]
}
