package ecs

import (
	"fmt"
	"reflect"
)

// ==================================================================
// Singletons
// ==================================================================

type SingletonStore[T any] struct {
	data T
}

// RegisterSingleton stores a world-wide value of type T. Registering the
// same type twice panics.
func RegisterSingleton[T any](w *World, initial T) {
	t := reflect.TypeFor[T]()
	if _, ok := w.singletons[t]; ok {
		panic(fmt.Sprintf("ecs: singleton %s already registered", t))
	}

	w.singletons[t] = &SingletonStore[T]{data: initial}
}

// GetSingleton returns the singleton of type T.
func GetSingleton[T any](w *World) (*T, bool) {
	store, ok := w.singletons[reflect.TypeFor[T]()].(*SingletonStore[T])
	if !ok {
		return nil, false
	}
	return &store.data, true
}

// ==================================================================
// Messages
// ==================================================================

type TypedMessageStore interface {
	swap()
}

// MessageStore double-buffers messages: values pushed during tick N are
// readable after tick N completes, until tick N+1 completes.
type MessageStore[T any] struct {
	read  []T
	write []T
}

func (s *MessageStore[T]) swap() {
	s.read, s.write = s.write, s.read[:0]
}

func RegisterMessage[T any](w *World) {
	t := reflect.TypeFor[T]()
	if _, ok := w.messages[t]; ok {
		return
	}

	w.messages[t] = &MessageStore[T]{
		read:  make([]T, 0),
		write: make([]T, 0),
	}
}

// PushMessage queues msg. Messages of unregistered types are dropped.
func PushMessage[T any](w *World, msg T) {
	store, ok := w.messages[reflect.TypeFor[T]()].(*MessageStore[T])
	if ok {
		store.write = append(store.write, msg)
	}
}

// CollectMessages returns the messages published during the last
// completed tick.
func CollectMessages[T any](w *World) []T {
	store, ok := w.messages[reflect.TypeFor[T]()].(*MessageStore[T])
	if !ok {
		return nil
	}
	return store.read
}

func (w *World) swapMessages() {
	for _, msgStore := range w.messages {
		msgStore.swap()
	}
}
