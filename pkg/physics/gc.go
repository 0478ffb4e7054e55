package physics

import (
	"github.com/QYUbit/physync/pkg/ecs"
)

// CollectGarbage reconciles the handle components with the backend tables.
// Backend resources no live handle component references are released, and
// handle components whose resource is gone are removed. Both cases are
// recoverable and reported once.
func (p *Pipeline) CollectGarbage(ctx ecs.SystemContext) error {
	w := ctx.World

	bodies := make(map[Handle]struct{})
	for row := range ecs.Query1[BodyHandle](w) {
		h := row.Get().Handle
		if !p.backend.ContainsBody(h) {
			p.logger.Warn("stale body handle", "entity", row.Entity, "handle", h)
			p.report(w, Anomaly{Kind: StaleHandle, Entity: row.Entity, Handle: h, Err: ErrStaleHandle})
			ecs.RemoveComponentFor[BodyHandle](ctx.Commands, row.Entity)
			ecs.RemoveComponentFor[ColliderHandle](ctx.Commands, row.Entity)
			continue
		}
		bodies[h] = struct{}{}
	}

	colliders := make(map[Handle]struct{})
	for row := range ecs.Query1[ColliderHandle](w) {
		h := row.Get().Handle
		if !p.backend.ContainsCollider(h) {
			p.logger.Warn("stale collider handle", "entity", row.Entity, "handle", h)
			p.report(w, Anomaly{Kind: StaleHandle, Entity: row.Entity, Handle: h, Err: ErrStaleHandle})
			ecs.RemoveComponentFor[ColliderHandle](ctx.Commands, row.Entity)
			continue
		}
		colliders[h] = struct{}{}
	}

	for _, h := range p.backend.Bodies() {
		if _, ok := bodies[h]; ok {
			continue
		}
		p.logger.Warn("releasing orphaned body", "handle", h)
		p.report(w, Anomaly{Kind: Orphan, Handle: h})
		p.releaseBody(0, h)
	}

	// Releasing a body drops its colliders, so the table is read again.
	for _, h := range p.backend.Colliders() {
		if _, ok := colliders[h]; ok {
			continue
		}
		p.logger.Warn("releasing orphaned collider", "handle", h)
		p.report(w, Anomaly{Kind: Orphan, Handle: h})
		p.releaseCollider(0, h)
	}
	return nil
}
