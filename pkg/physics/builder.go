package physics

import (
	"github.com/QYUbit/physync/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// Builder assembles the components of a physics entity.
//
//	e := physics.NewBuilder().
//		At(mgl64.Vec2{0, 10}).
//		Dynamic(2).
//		Circle(0.5).
//		Spawn(w)
//
// Dynamic fills in Velocity and Orientation so the result passes
// validation. A Builder can be reused after Spawn or Stage.
type Builder struct {
	kind     BodyKind
	mass     float64
	position mgl64.Vec2
	velocity mgl64.Vec2
	angle    float64
	force    *mgl64.Vec2
	shape    Shape
	extra    []any
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) At(pos mgl64.Vec2) *Builder {
	b.position = pos
	return b
}

func (b *Builder) Moving(vel mgl64.Vec2) *Builder {
	b.velocity = vel
	return b
}

func (b *Builder) Facing(angle float64) *Builder {
	b.angle = angle
	return b
}

func (b *Builder) Pushed(f mgl64.Vec2) *Builder {
	b.force = &f
	return b
}

func (b *Builder) Dynamic(mass float64) *Builder {
	b.kind = Dynamic
	b.mass = mass
	return b
}

func (b *Builder) Static() *Builder {
	b.kind = Static
	return b
}

func (b *Builder) Disabled() *Builder {
	b.kind = Disabled
	return b
}

func (b *Builder) Circle(radius float64) *Builder {
	b.shape = Shape{Kind: Circle, Size: radius}
	return b
}

func (b *Builder) Square(side float64) *Builder {
	b.shape = Shape{Kind: Square, Size: side}
	return b
}

// With adds components the builder does not know about.
func (b *Builder) With(components ...any) *Builder {
	b.extra = append(b.extra, components...)
	return b
}

// Components returns the component values of the entity.
func (b *Builder) Components() []any {
	comps := []any{Position{b.position}}

	switch b.kind {
	case Dynamic:
		comps = append(comps,
			DynamicBody{Mass: b.mass},
			Velocity{b.velocity},
			Orientation{Angle: b.angle},
		)
		if b.force != nil {
			comps = append(comps, Force{*b.force})
		}
	case Static:
		comps = append(comps, StaticBody{}, Orientation{Angle: b.angle})
	case Disabled:
		comps = append(comps, DisabledBody{}, Orientation{Angle: b.angle})
	}

	switch b.shape.Kind {
	case Circle:
		comps = append(comps, CircleCollider{Radius: b.shape.Size})
	case Square:
		comps = append(comps, SquareCollider{SideLength: b.shape.Size})
	}

	return append(comps, b.extra...)
}

// Spawn creates the entity in w immediately. It must not be used inside a
// system.
func (b *Builder) Spawn(w *ecs.World) ecs.Entity {
	return w.Spawn(b.Components()...)
}

// Stage records the creation of the entity on cb and returns its id.
func (b *Builder) Stage(w *ecs.World, cb *ecs.CommandBuffer) ecs.Entity {
	e := w.NewEntity()
	cb.CreateEntity(e, b.Components()...)
	return e
}
