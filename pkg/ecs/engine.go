package ecs

// Engine couples a World with its Scheduler.
type Engine struct {
	world     *World
	scheduler *Scheduler
}

func NewEngine() *Engine {
	return &Engine{
		world:     NewWorld(),
		scheduler: NewScheduler(),
	}
}

func (e *Engine) World() *World {
	return e.world
}

func (e *Engine) Scheduler() *Scheduler {
	return e.scheduler
}

type Plugin func(e *Engine)

func (e *Engine) RegisterPlugin(plugin Plugin) {
	plugin(e)
}

func (e *Engine) RegisterSystemFunc(sys SystemFunc, opts ...SystemOption) {
	e.scheduler.AddSystemFunc(sys, opts...)
}

func (e *Engine) RegisterSystem(sys System, opts ...SystemOption) {
	e.scheduler.AddSystem(sys, opts...)
}

// Barrier ends the current phase of update systems.
func (e *Engine) Barrier() {
	e.scheduler.Barrier()
}

func (e *Engine) RunInit() error {
	return e.scheduler.RunInit(e.world)
}

// ExecuteTick runs every update phase once with the given timestep.
func (e *Engine) ExecuteTick(dt float64) error {
	return e.scheduler.RunUpdate(e.world, dt)
}
