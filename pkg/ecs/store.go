package ecs

import (
	"iter"
	"reflect"
)

// TypedStore is the type-erased view of a Store used by the world and by
// query plans.
type TypedStore interface {
	Type() reflect.Type
	Entities() iter.Seq[Entity]
	HasEntity(e Entity) bool
	IsDirty(e Entity) bool
	Add(e Entity, value any)
	Remove(e Entity)
	Len() int
	clearDirty()
}

// Store is a sparse set holding one component type. Dense slices keep
// iteration order stable between structural changes.
type Store[T any] struct {
	typ    reflect.Type
	sparse map[Entity]int
	dense  []Entity
	data   []T
	dirty  []bool
}

func newStore[T any]() *Store[T] {
	return &Store[T]{
		typ:    reflect.TypeFor[T](),
		sparse: make(map[Entity]int),
	}
}

func (s *Store[T]) Type() reflect.Type {
	return s.typ
}

// Add inserts value for e, replacing a present value. Added and replaced
// values count as changed for the current tick.
func (s *Store[T]) Add(e Entity, value any) {
	initial, ok := value.(T)
	if !ok {
		return
	}
	s.Set(e, initial)
}

func (s *Store[T]) Set(e Entity, value T) {
	if idx, ok := s.sparse[e]; ok {
		s.data[idx] = value
		s.dirty[idx] = true
		return
	}

	newIndex := len(s.data)

	s.data = append(s.data, value)
	s.dense = append(s.dense, e)
	s.dirty = append(s.dirty, true)

	s.sparse[e] = newIndex
}

func (s *Store[T]) Remove(e Entity) {
	idx, exists := s.sparse[e]
	if !exists {
		return
	}

	lastIndex := len(s.data) - 1
	lastEntity := s.dense[lastIndex]

	if idx != lastIndex {
		s.data[idx] = s.data[lastIndex]
		s.dense[idx] = lastEntity
		s.dirty[idx] = s.dirty[lastIndex]

		s.sparse[lastEntity] = idx
	}

	var zero T
	s.data[lastIndex] = zero

	s.data = s.data[:lastIndex]
	s.dense = s.dense[:lastIndex]
	s.dirty = s.dirty[:lastIndex]

	delete(s.sparse, e)
}

func (s *Store[T]) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range s.dense {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

func (s *Store[T]) HasEntity(e Entity) bool {
	_, ok := s.sparse[e]
	return ok
}

// Get returns a pointer to the component of e, or nil.
func (s *Store[T]) Get(e Entity) *T {
	idx, ok := s.sparse[e]
	if !ok {
		return nil
	}
	return &s.data[idx]
}

// GetMutable is Get but marks the component as changed.
func (s *Store[T]) GetMutable(e Entity) *T {
	idx, ok := s.sparse[e]
	if !ok {
		return nil
	}
	s.dirty[idx] = true
	return &s.data[idx]
}

func (s *Store[T]) IsDirty(e Entity) bool {
	idx, ok := s.sparse[e]
	return ok && s.dirty[idx]
}

func (s *Store[T]) MarkDirty(e Entity) {
	if idx, ok := s.sparse[e]; ok {
		s.dirty[idx] = true
	}
}

func (s *Store[T]) clearDirty() {
	clear(s.dirty)
}
