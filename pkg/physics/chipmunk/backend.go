// Package chipmunk implements physics.Backend on a Chipmunk2D space.
//
// Dynamic and static bodies live in the space. Disabled bodies are kinematic
// bodies kept outside of it, so they neither move nor collide; their
// colliders are created but never added to the space.
package chipmunk

import (
	"errors"
	"fmt"

	"github.com/QYUbit/physync/pkg/physics"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

var (
	ErrCapacity     = errors.New("chipmunk: capacity exceeded")
	ErrInvalidBody  = errors.New("chipmunk: invalid body")
	ErrInvalidShape = errors.New("chipmunk: invalid shape")
)

type Options struct {
	// Timestep is the fixed duration of one Step in seconds.
	Timestep   float64
	Iterations uint
	// Damping is the fraction of velocity kept per second; 1 disables it.
	Damping float64
	Gravity mgl64.Vec2
	// MaxBodies and MaxColliders bound the tables; zero means unbounded.
	MaxBodies    int
	MaxColliders int
}

var DefaultOptions = Options{
	Timestep:   1.0 / 60.0,
	Iterations: 10,
	Damping:    1,
}

type body struct {
	body      *cp.Body
	kind      physics.BodyKind
	inSpace   bool
	colliders []physics.Handle
}

type collider struct {
	shape   *cp.Shape
	body    physics.Handle
	inSpace bool
}

type Backend struct {
	space     *cp.Space
	opts      Options
	bodies    *arena[body]
	colliders *arena[collider]
}

var _ physics.Backend = (*Backend)(nil)

func New() *Backend {
	return NewWithOptions(DefaultOptions)
}

func NewWithOptions(opts Options) *Backend {
	if opts.Timestep <= 0 {
		opts.Timestep = DefaultOptions.Timestep
	}
	if opts.Iterations == 0 {
		opts.Iterations = DefaultOptions.Iterations
	}
	if opts.Damping <= 0 {
		opts.Damping = DefaultOptions.Damping
	}

	space := cp.NewSpace()
	space.Iterations = opts.Iterations
	space.SetDamping(opts.Damping)
	space.SetGravity(vec(opts.Gravity))

	return &Backend{
		space:     space,
		opts:      opts,
		bodies:    newArena[body](opts.MaxBodies),
		colliders: newArena[collider](opts.MaxColliders),
	}
}

func (b *Backend) Options() Options {
	return b.opts
}

func (b *Backend) InsertBody(desc physics.BodyDesc) (physics.Handle, error) {
	var cb *cp.Body

	switch desc.Kind {
	case physics.Dynamic:
		if !(desc.Mass > 0) {
			return physics.Handle{}, fmt.Errorf("%w: mass %g", ErrInvalidBody, desc.Mass)
		}
		cb = cp.NewBody(desc.Mass, cp.MomentForCircle(desc.Mass, 0, 1, cp.Vector{}))
		if !desc.GravityEnabled {
			cb.SetVelocityUpdateFunc(withoutGravity)
		}
	case physics.Static:
		cb = cp.NewStaticBody()
	case physics.Disabled:
		cb = cp.NewKinematicBody()
	default:
		return physics.Handle{}, fmt.Errorf("%w: kind %s", ErrInvalidBody, desc.Kind)
	}

	cb.SetPosition(vec(desc.State.Position))
	cb.SetAngle(desc.State.Angle)
	if desc.Kind == physics.Dynamic {
		cb.SetVelocityVector(vec(desc.State.Velocity))
	}

	h, ok := b.bodies.insert(body{body: cb, kind: desc.Kind})
	if !ok {
		return physics.Handle{}, fmt.Errorf("%w: %d bodies", ErrCapacity, b.opts.MaxBodies)
	}

	if desc.Kind != physics.Disabled {
		b.space.AddBody(cb)
		entry, _ := b.bodies.get(h)
		entry.inSpace = true
	}
	return h, nil
}

// RemoveBody removes the body and every collider attached to it.
func (b *Backend) RemoveBody(h physics.Handle) error {
	entry, ok := b.bodies.remove(h)
	if !ok {
		return physics.ErrStaleHandle
	}

	for _, ch := range entry.colliders {
		b.dropCollider(ch)
	}
	if entry.inSpace {
		b.space.RemoveBody(entry.body)
	}
	return nil
}

func (b *Backend) InsertCollider(shape physics.Shape, bh physics.Handle) (physics.Handle, error) {
	owner, ok := b.bodies.get(bh)
	if !ok {
		return physics.Handle{}, physics.ErrStaleHandle
	}
	if !(shape.Size > 0) {
		return physics.Handle{}, fmt.Errorf("%w: %s", ErrInvalidShape, shape)
	}

	var cs *cp.Shape
	switch shape.Kind {
	case physics.Circle:
		cs = cp.NewCircle(owner.body, shape.Size, cp.Vector{})
	case physics.Square:
		cs = cp.NewBox(owner.body, shape.Size, shape.Size, 0)
	default:
		return physics.Handle{}, fmt.Errorf("%w: %s", ErrInvalidShape, shape)
	}

	h, ok := b.colliders.insert(collider{shape: cs, body: bh, inSpace: owner.inSpace})
	if !ok {
		return physics.Handle{}, fmt.Errorf("%w: %d colliders", ErrCapacity, b.opts.MaxColliders)
	}

	if owner.inSpace {
		b.space.AddShape(cs)
	}
	owner.colliders = append(owner.colliders, h)
	return h, nil
}

func (b *Backend) RemoveCollider(h physics.Handle) error {
	c, ok := b.colliders.get(h)
	if !ok {
		return physics.ErrStaleHandle
	}

	if owner, ok := b.bodies.get(c.body); ok {
		owner.colliders = removeHandle(owner.colliders, h)
	}
	b.dropCollider(h)
	return nil
}

func (b *Backend) dropCollider(h physics.Handle) {
	c, ok := b.colliders.remove(h)
	if ok && c.inSpace {
		b.space.RemoveShape(c.shape)
	}
}

func (b *Backend) SetKinematicState(h physics.Handle, s physics.KinematicState) error {
	entry, ok := b.bodies.get(h)
	if !ok {
		return physics.ErrStaleHandle
	}

	cb := entry.body
	cb.SetPosition(vec(s.Position))
	cb.SetAngle(s.Angle)

	switch entry.kind {
	case physics.Dynamic:
		cb.SetVelocityVector(vec(s.Velocity))
	case physics.Static:
		b.reindex(entry)
	}
	return nil
}

// reindex re-adds the colliders of a moved static body so the space sees
// their new bounds.
func (b *Backend) reindex(entry *body) {
	if !entry.inSpace {
		return
	}
	for _, h := range entry.colliders {
		c, ok := b.colliders.get(h)
		if !ok || !c.inSpace {
			continue
		}
		b.space.RemoveShape(c.shape)
		b.space.AddShape(c.shape)
	}
}

func (b *Backend) KinematicState(h physics.Handle) (physics.KinematicState, error) {
	entry, ok := b.bodies.get(h)
	if !ok {
		return physics.KinematicState{}, physics.ErrStaleHandle
	}

	cb := entry.body
	return physics.KinematicState{
		Position: mgl(cb.Position()),
		Velocity: mgl(cb.Velocity()),
		Angle:    cb.Angle(),
	}, nil
}

// ApplyForce adds f to the force acting on a dynamic body during the next
// Step. Forces are cleared after every Step.
func (b *Backend) ApplyForce(h physics.Handle, f mgl64.Vec2) error {
	entry, ok := b.bodies.get(h)
	if !ok {
		return physics.ErrStaleHandle
	}
	if entry.kind != physics.Dynamic {
		return nil
	}

	cb := entry.body
	cb.SetForce(cb.Force().Add(vec(f)))
	return nil
}

func (b *Backend) Step() {
	b.space.Step(b.opts.Timestep)

	for _, h := range b.bodies.handles() {
		entry, _ := b.bodies.get(h)
		if entry.kind == physics.Dynamic {
			entry.body.SetForce(cp.Vector{})
		}
	}
}

func (b *Backend) ContainsBody(h physics.Handle) bool {
	_, ok := b.bodies.get(h)
	return ok
}

func (b *Backend) ContainsCollider(h physics.Handle) bool {
	_, ok := b.colliders.get(h)
	return ok
}

func (b *Backend) Bodies() []physics.Handle {
	return b.bodies.handles()
}

func (b *Backend) Colliders() []physics.Handle {
	return b.colliders.handles()
}

// BodyCount and ColliderCount report the live table sizes.
func (b *Backend) BodyCount() int {
	return b.bodies.len()
}

func (b *Backend) ColliderCount() int {
	return b.colliders.len()
}

func withoutGravity(body *cp.Body, _ cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
}

func removeHandle(hs []physics.Handle, h physics.Handle) []physics.Handle {
	for i, x := range hs {
		if x == h {
			return append(hs[:i], hs[i+1:]...)
		}
	}
	return hs
}

func vec(v mgl64.Vec2) cp.Vector {
	return cp.Vector{X: v[0], Y: v[1]}
}

func mgl(v cp.Vector) mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}
