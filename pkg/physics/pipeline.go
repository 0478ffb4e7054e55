package physics

import (
	"github.com/QYUbit/physync/pkg/ecs"
	"github.com/QYUbit/physync/pkg/pslog"
)

// Stage names, as they appear in errors returned from a tick.
const (
	StageValidate        = "physics.validate"
	StageCreateBodies    = "physics.create-bodies"
	StageRemoveBodies    = "physics.remove-bodies"
	StageCreateColliders = "physics.create-colliders"
	StageRemoveColliders = "physics.remove-colliders"
	StageCollectGarbage  = "physics.gc"
	StagePush            = "physics.push"
	StageStep            = "physics.step"
	StagePull            = "physics.pull"
)

// Stats counts recoverable anomalies since the pipeline was installed. It is
// registered as a singleton.
type Stats struct {
	InsertFailures  uint64
	NonFiniteClamps uint64
	StaleHandles    uint64
	Orphans         uint64
}

type AnomalyKind uint8

const (
	InsertFailed AnomalyKind = iota
	NonFinite
	StaleHandle
	Orphan
)

func (k AnomalyKind) String() string {
	switch k {
	case InsertFailed:
		return "insert-failed"
	case NonFinite:
		return "non-finite"
	case StaleHandle:
		return "stale-handle"
	case Orphan:
		return "orphan"
	}
	return "unknown"
}

// Anomaly is published as a message for every recoverable problem. Entity is
// zero for orphaned backend resources.
type Anomaly struct {
	Kind   AnomalyKind
	Entity ecs.Entity
	Handle Handle
	Err    error
}

// Pipeline keeps an ecs.World in step with a Backend. Its stages run in
// the order of Install; the backend must not be mutated by anything else.
type Pipeline struct {
	backend Backend
	logger  pslog.Logger
}

type Option func(*Pipeline)

func WithLogger(l pslog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewPipeline(backend Backend, opts ...Option) *Pipeline {
	p := &Pipeline{
		backend: backend,
		logger:  pslog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Backend() Backend {
	return p.backend
}

// Plugin returns an ecs.Plugin installing a new pipeline.
func Plugin(backend Backend, opts ...Option) ecs.Plugin {
	return func(e *ecs.Engine) {
		NewPipeline(backend, opts...).Install(e)
	}
}

// RegisterComponents registers every component the pipeline reads or
// writes. Install calls it; it is exported for worlds built without an
// Engine.
func RegisterComponents(w *ecs.World) {
	ecs.RegisterComponent[Position](w)
	ecs.RegisterComponent[Velocity](w)
	ecs.RegisterComponent[Orientation](w)
	ecs.RegisterComponent[Force](w)
	ecs.RegisterComponent[Speed](w)
	ecs.RegisterComponent[Acceleration](w)
	ecs.RegisterComponent[DynamicBody](w)
	ecs.RegisterComponent[StaticBody](w)
	ecs.RegisterComponent[DisabledBody](w)
	ecs.RegisterComponent[CircleCollider](w)
	ecs.RegisterComponent[SquareCollider](w)
	ecs.RegisterComponent[BodyHandle](w)
	ecs.RegisterComponent[ColliderHandle](w)
}

// Install registers components, the Stats singleton, the Anomaly message
// and the stages. Systems registered before Install run in an earlier phase;
// systems registered after it observe the pulled state.
func (p *Pipeline) Install(e *ecs.Engine) {
	w := e.World()
	RegisterComponents(w)
	ecs.RegisterSingleton(w, Stats{})
	ecs.RegisterMessage[Anomaly](w)

	e.Barrier()
	e.RegisterSystemFunc(p.Validate, ecs.Name(StageValidate))
	e.RegisterSystemFunc(p.CreateBodyHandles, ecs.Name(StageCreateBodies))
	e.RegisterSystemFunc(p.RemoveBodyHandles, ecs.Name(StageRemoveBodies))
	e.Barrier()
	e.RegisterSystemFunc(p.CreateColliderHandles, ecs.Name(StageCreateColliders))
	e.RegisterSystemFunc(p.RemoveColliderHandles, ecs.Name(StageRemoveColliders))
	e.Barrier()
	e.RegisterSystemFunc(p.CollectGarbage, ecs.Name(StageCollectGarbage))
	e.RegisterSystemFunc(p.PushKinematics, ecs.Name(StagePush))
	e.RegisterSystemFunc(p.Step, ecs.Name(StageStep))
	e.RegisterSystemFunc(p.PullKinematics, ecs.Name(StagePull))
	e.Barrier()
}

func (p *Pipeline) report(w *ecs.World, a Anomaly) {
	if stats, ok := ecs.GetSingleton[Stats](w); ok {
		switch a.Kind {
		case InsertFailed:
			stats.InsertFailures++
		case NonFinite:
			stats.NonFiniteClamps++
		case StaleHandle:
			stats.StaleHandles++
		case Orphan:
			stats.Orphans++
		}
	}
	ecs.PushMessage(w, a)
}
