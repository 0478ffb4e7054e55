package physics

import (
	"fmt"
	"math"

	"github.com/QYUbit/physync/pkg/ecs"
)

// Validate checks every physics entity against the body and collider
// invariants. Non-finite kinematics are rejected here, so nothing after it
// hands NaN or Inf to the backend. The first violation found is returned as an
// *InvariantViolation and ends the tick before any backend call.
func (p *Pipeline) Validate(ctx ecs.SystemContext) error {
	w := ctx.World

	for e := range ecs.Each(w, ecs.AnyOf(DynamicBody{}, StaticBody{}, DisabledBody{})) {
		if err := validateBody(w, e); err != nil {
			return err
		}
	}

	for e := range ecs.Each(w, ecs.AnyOf(CircleCollider{}, SquareCollider{}, ColliderHandle{})) {
		if err := validateCollider(w, e); err != nil {
			return err
		}
	}
	return nil
}

type requirement struct {
	name string
	has  func(*ecs.World, ecs.Entity) bool
}

var (
	dynamicRequires = []requirement{
		{"Position", ecs.Has[Position]},
		{"Velocity", ecs.Has[Velocity]},
		{"Orientation", ecs.Has[Orientation]},
	}
	dynamicExcludes = []requirement{
		{"StaticBody", ecs.Has[StaticBody]},
		{"DisabledBody", ecs.Has[DisabledBody]},
	}
	staticRequires = []requirement{
		{"Position", ecs.Has[Position]},
	}
	staticExcludes = []requirement{
		{"Velocity", ecs.Has[Velocity]},
		{"Speed", ecs.Has[Speed]},
		{"Acceleration", ecs.Has[Acceleration]},
		{"Force", ecs.Has[Force]},
		{"DisabledBody", ecs.Has[DisabledBody]},
	}
)

func validateBody(w *ecs.World, e ecs.Entity) error {
	kind := bodyKindOf(w, e)

	var requires, excludes []requirement
	switch kind {
	case Dynamic:
		requires, excludes = dynamicRequires, dynamicExcludes
	case Static:
		requires, excludes = staticRequires, staticExcludes
	}

	for _, r := range excludes {
		if r.has(w, e) {
			return &InvariantViolation{Entity: e, Kind: kind, Component: r.name, Reason: Conflicting}
		}
	}
	for _, r := range requires {
		if !r.has(w, e) {
			return &InvariantViolation{Entity: e, Kind: kind, Component: r.name, Reason: Missing}
		}
	}

	if name, value, ok := nonFiniteKinematics(w, e); ok {
		return &InvariantViolation{
			Entity:    e,
			Kind:      kind,
			Component: name,
			Reason:    Invalid,
			Detail:    fmt.Sprintf("non-finite value %v", value),
		}
	}

	if body, ok := ecs.Get[DynamicBody](w, e); ok && !positiveFinite(body.Mass) {
		return &InvariantViolation{
			Entity:    e,
			Kind:      kind,
			Component: "DynamicBody",
			Reason:    Invalid,
			Detail:    fmt.Sprintf("mass must be positive and finite, got %g", body.Mass),
		}
	}
	return nil
}

func validateCollider(w *ecs.World, e ecs.Entity) error {
	kind := bodyKindOf(w, e)

	if ecs.Has[ColliderHandle](w, e) && !ecs.Has[BodyHandle](w, e) {
		return &InvariantViolation{Entity: e, Kind: kind, Component: "BodyHandle", Reason: Missing, Owner: "ColliderHandle"}
	}

	circle, isCircle := ecs.Get[CircleCollider](w, e)
	square, isSquare := ecs.Get[SquareCollider](w, e)

	switch {
	case isCircle && isSquare:
		return &InvariantViolation{Entity: e, Kind: kind, Component: "SquareCollider", Reason: Conflicting, Owner: "CircleCollider"}
	case isCircle && !positiveFinite(circle.Radius):
		return &InvariantViolation{
			Entity:    e,
			Kind:      kind,
			Component: "CircleCollider",
			Reason:    Invalid,
			Detail:    fmt.Sprintf("radius must be positive and finite, got %g", circle.Radius),
		}
	case isSquare && !positiveFinite(square.SideLength):
		return &InvariantViolation{
			Entity:    e,
			Kind:      kind,
			Component: "SquareCollider",
			Reason:    Invalid,
			Detail:    fmt.Sprintf("side length must be positive and finite, got %g", square.SideLength),
		}
	}
	return nil
}

// nonFiniteKinematics returns the first kinematic component of e holding a
// NaN or infinite value.
func nonFiniteKinematics(w *ecs.World, e ecs.Entity) (string, any, bool) {
	if pos, ok := ecs.Get[Position](w, e); ok && !finiteVec(pos.Vec2) {
		return "Position", pos.Vec2, true
	}
	if vel, ok := ecs.Get[Velocity](w, e); ok && !finiteVec(vel.Vec2) {
		return "Velocity", vel.Vec2, true
	}
	if o, ok := ecs.Get[Orientation](w, e); ok && !finite(o.Angle) {
		return "Orientation", o.Angle, true
	}
	if f, ok := ecs.Get[Force](w, e); ok && !finiteVec(f.Vec2) {
		return "Force", f.Vec2, true
	}
	return "", nil, false
}

// bodyKindOf returns the body kind tag of e. With conflicting tags the
// first of Dynamic, Static, Disabled wins; Validate rejects such entities.
func bodyKindOf(w *ecs.World, e ecs.Entity) BodyKind {
	switch {
	case ecs.Has[DynamicBody](w, e):
		return Dynamic
	case ecs.Has[StaticBody](w, e):
		return Static
	case ecs.Has[DisabledBody](w, e):
		return Disabled
	}
	return NoBody
}

// shapeOf returns the collider shape tagged on e.
func shapeOf(w *ecs.World, e ecs.Entity) Shape {
	if c, ok := ecs.Get[CircleCollider](w, e); ok {
		return Shape{Kind: Circle, Size: c.Radius}
	}
	if s, ok := ecs.Get[SquareCollider](w, e); ok {
		return Shape{Kind: Square, Size: s.SideLength}
	}
	return Shape{}
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
