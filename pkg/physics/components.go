// Package physics keeps an ecs.World consistent with a rigid-body Backend.
//
// Handle components are derived from tag components every tick: a body-kind
// tag yields a BodyHandle, a collider tag on an entity with a BodyHandle
// yields a ColliderHandle. Dynamic bodies are backend-authoritative after
// stepping; static and disabled bodies are ECS-authoritative.
package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

type Position struct{ mgl64.Vec2 }

type Velocity struct{ mgl64.Vec2 }

// Orientation is the body angle in radians.
type Orientation struct{ Angle float64 }

// Force is applied to a dynamic body for the next step only.
type Force struct{ mgl64.Vec2 }

// Speed and Acceleration are steering limits produced by external
// collaborators. Static bodies must not carry them.
type Speed struct{ Value float64 }

type Acceleration struct{ Value float64 }

type DynamicBody struct{ Mass float64 }

type StaticBody struct{}

type DisabledBody struct{}

type CircleCollider struct{ Radius float64 }

type SquareCollider struct{ SideLength float64 }

type BodyKind uint8

const (
	NoBody BodyKind = iota
	Dynamic
	Static
	Disabled
)

func (k BodyKind) String() string {
	switch k {
	case Dynamic:
		return "DynamicBody"
	case Static:
		return "StaticBody"
	case Disabled:
		return "DisabledBody"
	}
	return "NoBody"
}

type ShapeKind uint8

const (
	NoShape ShapeKind = iota
	Circle
	Square
)

func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "CircleCollider"
	case Square:
		return "SquareCollider"
	}
	return "NoShape"
}

// Shape describes a collider. Size is the radius of a circle or the side
// length of a square.
type Shape struct {
	Kind ShapeKind
	Size float64
}

func (s Shape) String() string {
	return fmt.Sprintf("%s(%g)", s.Kind, s.Size)
}

// BodyHandle links an entity to its backend body. Kind and Mass record what
// the body was built for; Mass is zero for static and disabled bodies.
type BodyHandle struct {
	Handle Handle
	Kind   BodyKind
	Mass   float64
}

// ColliderHandle links an entity to its backend collider. Shape is the shape
// the collider was built for.
type ColliderHandle struct {
	Handle Handle
	Shape  Shape
}
