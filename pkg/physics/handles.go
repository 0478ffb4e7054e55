package physics

import (
	"github.com/QYUbit/physync/pkg/ecs"
)

// CreateBodyHandles inserts a backend body for every entity whose body
// kind tag has no matching BodyHandle. A handle built for another kind or
// mass is released first; the backend drops the colliders of that body with
// it, so the ColliderHandle is removed too and rebuilt after the next
// barrier. The new body starts from the current ECS state.
func (p *Pipeline) CreateBodyHandles(ctx ecs.SystemContext) error {
	w := ctx.World

	for e := range ecs.Each(w, ecs.AnyOf(DynamicBody{}, StaticBody{}, DisabledBody{})) {
		kind := bodyKindOf(w, e)
		desc := bodyDesc(w, e, kind)

		current, hasHandle := ecs.Read[BodyHandle](w, e)
		if hasHandle && current.Kind == kind && current.Mass == desc.Mass {
			continue
		}

		if hasHandle {
			p.logger.Debug("rebuilding body", "entity", e,
				"fromKind", current.Kind, "toKind", kind,
				"fromMass", current.Mass, "toMass", desc.Mass,
			)
			p.releaseBody(e, current.Handle)
			ecs.RemoveComponentFor[ColliderHandle](ctx.Commands, e)
		}

		h, err := p.backend.InsertBody(desc)
		if err != nil {
			p.logger.Error("failed to insert body", "entity", e, "kind", kind, "err", err)
			p.report(w, Anomaly{Kind: InsertFailed, Entity: e, Err: err})
			if hasHandle {
				ecs.RemoveComponentFor[BodyHandle](ctx.Commands, e)
			}
			continue
		}

		ctx.Commands.AddComponent(e, BodyHandle{Handle: h, Kind: kind, Mass: desc.Mass})
	}
	return nil
}

// RemoveBodyHandles releases the bodies of entities that lost their body
// kind tag.
func (p *Pipeline) RemoveBodyHandles(ctx ecs.SystemContext) error {
	w := ctx.World

	for row := range ecs.Query1[BodyHandle](w, ecs.Without(DynamicBody{}, StaticBody{}, DisabledBody{})) {
		p.releaseBody(row.Entity, row.Get().Handle)
		ecs.RemoveComponentFor[BodyHandle](ctx.Commands, row.Entity)
		ecs.RemoveComponentFor[ColliderHandle](ctx.Commands, row.Entity)
	}
	return nil
}

// CreateColliderHandles attaches a collider to every entity with a collider
// tag and a BodyHandle whose ColliderHandle is missing or was built for a
// different shape. The old collider is released before the new one is
// requested.
func (p *Pipeline) CreateColliderHandles(ctx ecs.SystemContext) error {
	w := ctx.World

	for row := range ecs.Query1[BodyHandle](w, ecs.AnyOf(CircleCollider{}, SquareCollider{})) {
		e := row.Entity
		shape := shapeOf(w, e)

		current, hasHandle := ecs.Read[ColliderHandle](w, e)
		if hasHandle && current.Shape == shape {
			continue
		}

		if hasHandle {
			p.logger.Debug("collider shape switched", "entity", e, "from", current.Shape, "to", shape)
			p.releaseCollider(e, current.Handle)
		}

		h, err := p.backend.InsertCollider(shape, row.Get().Handle)
		if err != nil {
			p.logger.Error("failed to insert collider", "entity", e, "shape", shape, "err", err)
			p.report(w, Anomaly{Kind: InsertFailed, Entity: e, Err: err})
			if hasHandle {
				ecs.RemoveComponentFor[ColliderHandle](ctx.Commands, e)
			}
			continue
		}

		ctx.Commands.AddComponent(e, ColliderHandle{Handle: h, Shape: shape})
	}
	return nil
}

// RemoveColliderHandles releases the colliders of entities that lost their
// collider tag.
func (p *Pipeline) RemoveColliderHandles(ctx ecs.SystemContext) error {
	w := ctx.World

	for row := range ecs.Query1[ColliderHandle](w, ecs.Without(CircleCollider{}, SquareCollider{})) {
		p.releaseCollider(row.Entity, row.Get().Handle)
		ecs.RemoveComponentFor[ColliderHandle](ctx.Commands, row.Entity)
	}
	return nil
}

func (p *Pipeline) releaseBody(e ecs.Entity, h Handle) {
	if err := p.backend.RemoveBody(h); err != nil {
		p.logger.Warn("failed to remove body", "entity", e, "handle", h, "err", err)
	}
}

func (p *Pipeline) releaseCollider(e ecs.Entity, h Handle) {
	if err := p.backend.RemoveCollider(h); err != nil {
		p.logger.Warn("failed to remove collider", "entity", e, "handle", h, "err", err)
	}
}

// bodyDesc builds the backend descriptor from the current components of e.
// Static and disabled bodies carry no velocity.
func bodyDesc(w *ecs.World, e ecs.Entity, kind BodyKind) BodyDesc {
	desc := BodyDesc{Kind: kind}

	if pos, ok := ecs.Get[Position](w, e); ok {
		desc.State.Position = pos.Vec2
	}
	if o, ok := ecs.Get[Orientation](w, e); ok {
		desc.State.Angle = o.Angle
	}

	if kind == Dynamic {
		if body, ok := ecs.Get[DynamicBody](w, e); ok {
			desc.Mass = body.Mass
		}
		if v, ok := ecs.Get[Velocity](w, e); ok {
			desc.State.Velocity = v.Vec2
		}
	}
	return desc
}
