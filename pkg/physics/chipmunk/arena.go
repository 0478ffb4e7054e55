package chipmunk

import (
	"github.com/QYUbit/physync/pkg/physics"
)

type slot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// arena stores values under generational handles. Freed slots are reused
// last-in first-out with a bumped generation, so old handles stop
// resolving. Generation 0 is never issued, so no handle is zero.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
	max   int
}

func newArena[T any](limit int) *arena[T] {
	return &arena[T]{max: limit}
}

func (a *arena[T]) insert(v T) (physics.Handle, bool) {
	if a.max > 0 && a.count >= a.max {
		return physics.Handle{}, false
	}
	a.count++

	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.live = true
		s.val = v
		return physics.Handle{Index: idx, Generation: s.gen}, true
	}

	a.slots = append(a.slots, slot[T]{gen: 1, live: true, val: v})
	return physics.Handle{Index: uint32(len(a.slots) - 1), Generation: 1}, true
}

func (a *arena[T]) get(h physics.Handle) (*T, bool) {
	if int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.live || s.gen != h.Generation {
		return nil, false
	}
	return &s.val, true
}

func (a *arena[T]) remove(h physics.Handle) (T, bool) {
	var zero T
	if _, ok := a.get(h); !ok {
		return zero, false
	}

	s := &a.slots[h.Index]
	v := s.val
	s.val = zero
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, h.Index)
	a.count--
	return v, true
}

// handles returns the live handles in slot order.
func (a *arena[T]) handles() []physics.Handle {
	out := make([]physics.Handle, 0, a.count)
	for i, s := range a.slots {
		if s.live {
			out = append(out, physics.Handle{Index: uint32(i), Generation: s.gen})
		}
	}
	return out
}

func (a *arena[T]) len() int {
	return a.count
}
