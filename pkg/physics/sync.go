package physics

import (
	"errors"
	"math"

	"github.com/QYUbit/physync/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// PushKinematics writes the ECS state of every dynamic body into the
// backend and applies its Force for the coming step. Static and disabled
// bodies are never pushed.
func (p *Pipeline) PushKinematics(ctx ecs.SystemContext) error {
	w := ctx.World

	for row := range ecs.Query1[BodyHandle](w, ecs.With(DynamicBody{})) {
		e := row.Entity
		h := row.Get()
		if h.Kind != Dynamic {
			continue
		}

		state, ok := ecsState(w, e)
		if !ok {
			continue
		}
		if !finiteState(state) {
			// Validate rejects these; reached only when the stage runs on
			// its own.
			p.logger.Warn("not pushing non-finite kinematic state", "entity", e, "handle", h.Handle)
			continue
		}

		err := p.backend.SetKinematicState(h.Handle, state)
		if errors.Is(err, ErrStaleHandle) {
			continue
		}
		if err != nil {
			p.logger.Error("failed to push kinematic state", "entity", e, "handle", h.Handle, "err", err)
			continue
		}

		if f, ok := ecs.Get[Force](w, e); ok && finiteVec(f.Vec2) {
			if err := p.backend.ApplyForce(h.Handle, f.Vec2); err != nil && !errors.Is(err, ErrStaleHandle) {
				p.logger.Error("failed to apply force", "entity", e, "handle", h.Handle, "err", err)
			}
		}
	}
	return nil
}

// Step advances the backend by one fixed timestep.
func (p *Pipeline) Step(ecs.SystemContext) error {
	p.backend.Step()
	return nil
}

// PullKinematics copies the stepped state of every dynamic body back into
// the ECS. Components are only written when the value differs, so
// ecs.Changed reports the bodies that moved this tick.
//
// A non-finite velocity is clamped to zero in the ECS and the position is
// kept. The backend body is reset to the ECS state so the next step starts
// from finite values.
func (p *Pipeline) PullKinematics(ctx ecs.SystemContext) error {
	w := ctx.World

	for row := range ecs.Query1[BodyHandle](w, ecs.With(DynamicBody{})) {
		e := row.Entity
		h := row.Get()
		if h.Kind != Dynamic {
			continue
		}

		state, err := p.backend.KinematicState(h.Handle)
		if errors.Is(err, ErrStaleHandle) {
			continue
		}
		if err != nil {
			p.logger.Error("failed to pull kinematic state", "entity", e, "handle", h.Handle, "err", err)
			continue
		}

		if !finiteState(state) {
			p.clamp(w, e, h.Handle, state)
			continue
		}
		writeState(w, e, state)
	}
	return nil
}

// clamp handles a non-finite backend state. A non-finite velocity becomes
// zero and keeps the ECS position; a non-finite position or angle is not
// copied.
func (p *Pipeline) clamp(w *ecs.World, e ecs.Entity, h Handle, got KinematicState) {
	prev, _ := ecsState(w, e)
	if !finiteVec(prev.Position) {
		prev.Position = mgl64.Vec2{}
	}
	if !finite(prev.Angle) {
		prev.Angle = 0
	}

	fixed := KinematicState{Position: prev.Position, Angle: prev.Angle}
	if finiteVec(got.Velocity) {
		fixed.Velocity = got.Velocity
		if finiteVec(got.Position) {
			fixed.Position = got.Position
		}
	}
	if finite(got.Angle) {
		fixed.Angle = got.Angle
	}

	p.logger.Warn("non-finite kinematic state clamped",
		"entity", e,
		"handle", h,
		"position", got.Position,
		"velocity", got.Velocity,
		"angle", got.Angle,
	)
	p.report(w, Anomaly{Kind: NonFinite, Entity: e, Handle: h})

	writeState(w, e, fixed)

	if err := p.backend.SetKinematicState(h, fixed); err != nil && !errors.Is(err, ErrStaleHandle) {
		p.logger.Error("failed to reset body", "entity", e, "handle", h, "err", err)
	}
}

func ecsState(w *ecs.World, e ecs.Entity) (KinematicState, bool) {
	pos, ok1 := ecs.Get[Position](w, e)
	vel, ok2 := ecs.Get[Velocity](w, e)
	o, ok3 := ecs.Get[Orientation](w, e)
	if !ok1 || !ok2 || !ok3 {
		return KinematicState{}, false
	}
	return KinematicState{Position: pos.Vec2, Velocity: vel.Vec2, Angle: o.Angle}, true
}

func writeState(w *ecs.World, e ecs.Entity, s KinematicState) {
	if pos, ok := ecs.Get[Position](w, e); ok && pos.Vec2 != s.Position {
		m, _ := ecs.Mut[Position](w, e)
		m.Vec2 = s.Position
	}
	if vel, ok := ecs.Get[Velocity](w, e); ok && vel.Vec2 != s.Velocity {
		m, _ := ecs.Mut[Velocity](w, e)
		m.Vec2 = s.Velocity
	}
	if o, ok := ecs.Get[Orientation](w, e); ok && o.Angle != s.Angle {
		m, _ := ecs.Mut[Orientation](w, e)
		m.Angle = s.Angle
	}
}

func finiteState(s KinematicState) bool {
	return finiteVec(s.Position) && finiteVec(s.Velocity) && finite(s.Angle)
}

func finiteVec(v mgl64.Vec2) bool {
	return finite(v[0]) && finite(v[1])
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
