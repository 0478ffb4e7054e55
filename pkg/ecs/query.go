package ecs

import (
	"iter"
	"math"
	"reflect"
	"sort"
)

type QNType int

const (
	QNAnd QNType = iota
	QNOr
	QNNot
	QNHas
)

// A QueryNode is a component-membership predicate. Trees are built with
// With, Without, AnyOf, And and Or and evaluated against a World.
type QueryNode struct {
	typ       QNType
	children  []*QueryNode
	component reflect.Type
}

// With matches entities carrying all given component types. Components are
// passed as zero values.
func With(components ...any) *QueryNode {
	if len(components) == 1 {
		return has(reflect.TypeOf(components[0]))
	}

	var children []*QueryNode
	for _, comp := range components {
		children = append(children, has(reflect.TypeOf(comp)))
	}

	return And(children...)
}

// Without matches entities carrying none of the given component types.
func Without(components ...any) *QueryNode {
	var children []*QueryNode
	for _, comp := range components {
		children = append(children, not(has(reflect.TypeOf(comp))))
	}

	if len(children) == 1 {
		return children[0]
	}
	return And(children...)
}

// AnyOf matches entities carrying at least one of the given component types.
func AnyOf(components ...any) *QueryNode {
	var children []*QueryNode
	for _, comp := range components {
		children = append(children, has(reflect.TypeOf(comp)))
	}

	return Or(children...)
}

func And(nodes ...*QueryNode) *QueryNode {
	return &QueryNode{
		typ:      QNAnd,
		children: nodes,
	}
}

func Or(nodes ...*QueryNode) *QueryNode {
	return &QueryNode{
		typ:      QNOr,
		children: nodes,
	}
}

func not(node *QueryNode) *QueryNode {
	return &QueryNode{
		typ:      QNNot,
		children: []*QueryNode{node},
	}
}

func has(t reflect.Type) *QueryNode {
	return &QueryNode{
		typ:       QNHas,
		component: t,
	}
}

// Each iterates the entities matching all nodes.
func Each(w *World, nodes ...*QueryNode) iter.Seq[Entity] {
	return And(nodes...).Query(w)
}

// Matches reports whether e satisfies all nodes.
func Matches(w *World, e Entity, nodes ...*QueryNode) bool {
	return And(nodes...).checkCondition(w, e)
}

type Row1[T any] struct {
	Entity Entity
	store  *Store[T]
}

// Query1 iterates entities carrying T and matching filters.
func Query1[T any](w *World, filters ...*QueryNode) iter.Seq[Row1[T]] {
	s, ok := getStoreFromWorld[T](w)
	if !ok {
		return func(yield func(Row1[T]) bool) {}
	}

	it := And(append(filters[:len(filters):len(filters)], has(s.typ))...).Query(w)

	return func(yield func(Row1[T]) bool) {
		for e := range it {
			if !yield(Row1[T]{Entity: e, store: s}) {
				return
			}
		}
	}
}

func (r Row1[T]) Get() *T {
	return r.store.Get(r.Entity)
}

func (r Row1[T]) Mut() *T {
	return r.store.GetMutable(r.Entity)
}

type Row2[T1, T2 any] struct {
	Entity Entity
	store1 *Store[T1]
	store2 *Store[T2]
}

// Query2 iterates entities carrying T1 and T2 and matching filters.
func Query2[T1, T2 any](w *World, filters ...*QueryNode) iter.Seq[Row2[T1, T2]] {
	s1, ok1 := getStoreFromWorld[T1](w)
	s2, ok2 := getStoreFromWorld[T2](w)

	if !ok1 || !ok2 {
		return func(yield func(Row2[T1, T2]) bool) {}
	}

	it := And(append(filters[:len(filters):len(filters)], has(s1.typ), has(s2.typ))...).Query(w)

	return func(yield func(Row2[T1, T2]) bool) {
		for e := range it {
			if !yield(Row2[T1, T2]{Entity: e, store1: s1, store2: s2}) {
				return
			}
		}
	}
}

func (r Row2[T1, T2]) Get1() *T1 {
	return r.store1.Get(r.Entity)
}

func (r Row2[T1, T2]) Mut1() *T1 {
	return r.store1.GetMutable(r.Entity)
}

func (r Row2[T1, T2]) Get2() *T2 {
	return r.store2.Get(r.Entity)
}

func (r Row2[T1, T2]) Mut2() *T2 {
	return r.store2.GetMutable(r.Entity)
}

type Row3[T1, T2, T3 any] struct {
	Entity Entity
	store1 *Store[T1]
	store2 *Store[T2]
	store3 *Store[T3]
}

// Query3 iterates entities carrying T1, T2 and T3 and matching filters.
func Query3[T1, T2, T3 any](w *World, filters ...*QueryNode) iter.Seq[Row3[T1, T2, T3]] {
	s1, ok1 := getStoreFromWorld[T1](w)
	s2, ok2 := getStoreFromWorld[T2](w)
	s3, ok3 := getStoreFromWorld[T3](w)

	if !ok1 || !ok2 || !ok3 {
		return func(yield func(Row3[T1, T2, T3]) bool) {}
	}

	it := And(append(filters[:len(filters):len(filters)], has(s1.typ), has(s2.typ), has(s3.typ))...).Query(w)

	return func(yield func(Row3[T1, T2, T3]) bool) {
		for e := range it {
			if !yield(Row3[T1, T2, T3]{Entity: e, store1: s1, store2: s2, store3: s3}) {
				return
			}
		}
	}
}

func (r Row3[T1, T2, T3]) Get1() *T1 {
	return r.store1.Get(r.Entity)
}

func (r Row3[T1, T2, T3]) Mut1() *T1 {
	return r.store1.GetMutable(r.Entity)
}

func (r Row3[T1, T2, T3]) Get2() *T2 {
	return r.store2.Get(r.Entity)
}

func (r Row3[T1, T2, T3]) Mut2() *T2 {
	return r.store2.GetMutable(r.Entity)
}

func (r Row3[T1, T2, T3]) Get3() *T3 {
	return r.store3.Get(r.Entity)
}

func (r Row3[T1, T2, T3]) Mut3() *T3 {
	return r.store3.GetMutable(r.Entity)
}

// Query evaluates the tree against w. The cheapest conjunct drives the
// iteration; the others are checked per entity.
func (qn *QueryNode) Query(w *World) iter.Seq[Entity] {
	optimized := qn.optimize(w)
	return optimized.queryPlan(w)
}

func (qn *QueryNode) optimize(w *World) *QueryNode {
	if qn == nil {
		return nil
	}

	out := &QueryNode{typ: qn.typ, component: qn.component}
	for _, child := range qn.children {
		out.children = append(out.children, child.optimize(w))
	}

	if out.typ == QNAnd {
		var flat []*QueryNode
		for _, child := range out.children {
			if child.typ == QNAnd {
				flat = append(flat, child.children...)
			} else {
				flat = append(flat, child)
			}
		}
		out.children = flat

		sort.SliceStable(out.children, func(i, j int) bool {
			return out.children[i].cost(w) < out.children[j].cost(w)
		})
	}
	return out
}

func (qn *QueryNode) cost(w *World) int {
	switch qn.typ {
	case QNHas:
		if store, ok := w.stores[qn.component]; ok {
			return store.Len()
		}
		return 0

	case QNAnd:
		minCost := math.MaxInt
		for _, child := range qn.children {
			c := child.cost(w)
			if c < minCost {
				minCost = c
			}
		}
		return minCost

	case QNOr:
		sum := 0
		for _, child := range qn.children {
			c := child.cost(w)
			if c == math.MaxInt {
				return math.MaxInt
			}
			sum += c
		}
		return sum
	}
	return math.MaxInt
}

func (qn *QueryNode) queryPlan(w *World) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		switch qn.typ {

		case QNHas:
			store, ok := w.stores[qn.component]
			if !ok {
				return
			}

			for e := range store.Entities() {
				if !yield(e) {
					return
				}
			}

		case QNAnd:
			if len(qn.children) == 0 {
				return
			}

			driverNode := qn.children[0]
			filterNodes := qn.children[1:]

			for e := range driverNode.queryPlan(w) {
				match := true
				for _, filter := range filterNodes {
					if !filter.checkCondition(w, e) {
						match = false
						break
					}
				}

				if match {
					if !yield(e) {
						return
					}
				}
			}

		case QNOr:
			visited := make(map[Entity]struct{})

			for _, child := range qn.children {
				for e := range child.queryPlan(w) {
					if _, alreadySeen := visited[e]; !alreadySeen {
						visited[e] = struct{}{}
						if !yield(e) {
							return
						}
					}
				}
			}

		case QNNot:
			// Only reached when nothing cheaper can drive; walk every entity
			// in a stable order.
			ids := make([]Entity, 0, len(w.entities))
			for e := range w.entities {
				ids = append(ids, e)
			}
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

			for _, e := range ids {
				if qn.checkCondition(w, e) {
					if !yield(e) {
						return
					}
				}
			}
		}
	}
}

func (qn *QueryNode) checkCondition(w *World, e Entity) bool {
	switch qn.typ {
	case QNHas:
		if store, ok := w.stores[qn.component]; ok {
			return store.HasEntity(e)
		}
		return false
	case QNAnd:
		for _, child := range qn.children {
			if !child.checkCondition(w, e) {
				return false
			}
		}
		return true
	case QNOr:
		for _, child := range qn.children {
			if child.checkCondition(w, e) {
				return true
			}
		}
		return false
	case QNNot:
		if len(qn.children) > 0 {
			return !qn.children[0].checkCondition(w, e)
		}
		return true
	}
	return false
}
