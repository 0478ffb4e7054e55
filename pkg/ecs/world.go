// Package ecs provides the component store used by the physics pipeline:
// sparse-set component stores, deferred command buffers, query trees,
// singletons, messages and a staged scheduler.
package ecs

import (
	"fmt"
	"reflect"
)

type Entity uint64

type World struct {
	nextEntity Entity
	entities   map[Entity]struct{}
	stores     map[reflect.Type]TypedStore
	singletons map[reflect.Type]any
	messages   map[reflect.Type]TypedMessageStore
	tick       uint64
}

func NewWorld() *World {
	return &World{
		nextEntity: 1,
		entities:   make(map[Entity]struct{}),
		stores:     make(map[reflect.Type]TypedStore),
		singletons: make(map[reflect.Type]any),
		messages:   make(map[reflect.Type]TypedMessageStore),
	}
}

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 {
	return w.tick
}

// NewEntity reserves a fresh entity id. The entity exists once a
// create command for it has been applied.
func (w *World) NewEntity() Entity {
	e := w.nextEntity
	w.nextEntity++
	return e
}

// Spawn creates an entity with the given components immediately. It must
// not be called from inside a system; systems use their CommandBuffer.
func (w *World) Spawn(components ...any) Entity {
	e := w.NewEntity()
	w.createEntity(e, components)
	return e
}

// Insert adds or replaces components of e immediately.
func (w *World) Insert(e Entity, components ...any) {
	for _, c := range components {
		w.addComponent(e, reflect.TypeOf(c), c)
	}
}

// Detach removes the component types of the given zero values from e
// immediately.
func (w *World) Detach(e Entity, components ...any) {
	for _, c := range components {
		w.removeComponent(e, reflect.TypeOf(c))
	}
}

// Despawn destroys e immediately.
func (w *World) Despawn(e Entity) {
	w.destroyEntity(e)
}

func (w *World) EntityExists(e Entity) bool {
	_, ok := w.entities[e]
	return ok
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return len(w.entities)
}

// Apply executes and resets cb.
func (w *World) Apply(cb *CommandBuffer) {
	w.processCommands(cb.GetCommands())
	cb.Reset()
}

func (w *World) processCommands(commands []Command) {
	for _, cmd := range commands {
		switch cmd.Op {
		case CreateEntityCommand:
			w.createEntity(cmd.Entity, cmd.Values)
		case DestroyEntityCommand:
			w.destroyEntity(cmd.Entity)
		case AddComponentToEntity:
			w.addComponent(cmd.Entity, cmd.Type, cmd.Value)
		case RemoveComponentFromEntity:
			w.removeComponent(cmd.Entity, cmd.Type)
		}
	}
}

func (w *World) createEntity(e Entity, initial []any) {
	w.entities[e] = struct{}{}
	if e >= w.nextEntity {
		w.nextEntity = e + 1
	}

	for _, v := range initial {
		w.addComponent(e, reflect.TypeOf(v), v)
	}
}

func (w *World) destroyEntity(e Entity) {
	delete(w.entities, e)

	for _, store := range w.stores {
		if store.HasEntity(e) {
			store.Remove(e)
		}
	}
}

func (w *World) addComponent(e Entity, typ reflect.Type, value any) {
	if _, ok := w.entities[e]; !ok {
		return
	}
	w.storeFor(typ).Add(e, value)
}

func (w *World) removeComponent(e Entity, typ reflect.Type) {
	if s, ok := w.stores[typ]; ok {
		s.Remove(e)
	}
}

func (w *World) storeFor(typ reflect.Type) TypedStore {
	s, ok := w.stores[typ]
	if !ok {
		panic(fmt.Sprintf("ecs: component %s is not registered", typ))
	}
	return s
}

func (w *World) clearDirty() {
	for _, s := range w.stores {
		s.clearDirty()
	}
}

// ==================================================================
// Components
// ==================================================================

// RegisterComponent creates the store for T. Registering twice is a no-op.
func RegisterComponent[T any](w *World) {
	t := reflect.TypeFor[T]()
	if _, ok := w.stores[t]; ok {
		return
	}
	w.stores[t] = newStore[T]()
}

func getStoreFromWorld[T any](w *World) (*Store[T], bool) {
	s, ok := w.stores[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	store, ok := s.(*Store[T])
	return store, ok
}

// Get returns the component T of e for reading. The pointer addresses the
// store slot and is only valid until the next structural change: a later
// insert overwrites it in place and a removal may move another entity's
// component into it. Use Read to keep a value.
func Get[T any](w *World, e Entity) (*T, bool) {
	s, ok := getStoreFromWorld[T](w)
	if !ok {
		return nil, false
	}
	v := s.Get(e)
	return v, v != nil
}

// Read returns a copy of the component T of e.
func Read[T any](w *World, e Entity) (T, bool) {
	v, ok := Get[T](w, e)
	if !ok {
		var zero T
		return zero, false
	}
	return *v, true
}

// Mut returns the component T of e for writing and marks it changed.
func Mut[T any](w *World, e Entity) (*T, bool) {
	s, ok := getStoreFromWorld[T](w)
	if !ok {
		return nil, false
	}
	v := s.GetMutable(e)
	return v, v != nil
}

func Has[T any](w *World, e Entity) bool {
	s, ok := getStoreFromWorld[T](w)
	return ok && s.HasEntity(e)
}

// Changed reports whether T on e was added or written during the current
// or most recently completed tick.
func Changed[T any](w *World, e Entity) bool {
	s, ok := getStoreFromWorld[T](w)
	return ok && s.IsDirty(e)
}

// Count returns how many entities carry T.
func Count[T any](w *World) int {
	s, ok := getStoreFromWorld[T](w)
	if !ok {
		return 0
	}
	return s.Len()
}
