package ecs

import (
	"fmt"
)

type SystemTrigger int

const (
	OnUpdate SystemTrigger = iota
	OnStartup
	OnEndOfTick
)

// SystemFunc is one stage of a tick. A returned error aborts the tick.
type SystemFunc func(ctx SystemContext) error

type System interface {
	Run(ctx SystemContext) error
}

type SystemContext struct {
	*World
	Dt       float64
	Commands *CommandBuffer
}

type systemNode struct {
	name     string
	runner   SystemFunc
	commands *CommandBuffer
}

// Scheduler runs update systems in registration order. Barriers split the
// update systems into phases; the command buffers of a phase are applied
// when the phase ends, so no system observes structural changes made by
// itself or by a peer of the same phase. Every tick ends with an implicit
// barrier.
type Scheduler struct {
	initSystems []*systemNode
	phases      [][]*systemNode
	endSystems  []*systemNode
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		phases: [][]*systemNode{nil},
	}
}

type SystemConfig struct {
	System  SystemFunc
	Trigger SystemTrigger
	Name    string
}

type SystemOption func(*SystemConfig)

func Trigger(trigger SystemTrigger) SystemOption {
	return func(config *SystemConfig) {
		config.Trigger = trigger
	}
}

// Name labels the system in errors returned from a tick.
func Name(name string) SystemOption {
	return func(config *SystemConfig) {
		config.Name = name
	}
}

func buildSystemConfig(sys SystemFunc, opts []SystemOption) SystemConfig {
	config := SystemConfig{
		System:  sys,
		Trigger: OnUpdate,
	}

	for _, opt := range opts {
		opt(&config)
	}

	return config
}

func (s *Scheduler) AddSystemFunc(sys SystemFunc, opts ...SystemOption) {
	config := buildSystemConfig(sys, opts)

	node := &systemNode{
		name:     config.Name,
		runner:   config.System,
		commands: &CommandBuffer{},
	}
	if node.name == "" {
		node.name = fmt.Sprintf("system#%d", s.systemCount())
	}

	switch config.Trigger {
	case OnStartup:
		s.initSystems = append(s.initSystems, node)
	case OnEndOfTick:
		s.endSystems = append(s.endSystems, node)
	default:
		last := len(s.phases) - 1
		s.phases[last] = append(s.phases[last], node)
	}
}

func (s *Scheduler) AddSystem(sys System, opts ...SystemOption) {
	s.AddSystemFunc(sys.Run, opts...)
}

// Barrier closes the current phase. Consecutive barriers collapse.
func (s *Scheduler) Barrier() {
	if len(s.phases[len(s.phases)-1]) == 0 {
		return
	}
	s.phases = append(s.phases, nil)
}

func (s *Scheduler) systemCount() int {
	n := len(s.initSystems) + len(s.endSystems)
	for _, phase := range s.phases {
		n += len(phase)
	}
	return n
}

// RunInit runs every startup system once, applying its commands directly
// after it returns.
func (s *Scheduler) RunInit(w *World) error {
	for _, sys := range s.initSystems {
		err := sys.runner(SystemContext{
			World:    w,
			Commands: sys.commands,
		})
		if err != nil {
			sys.commands.Reset()
			return fmt.Errorf("system %s: %w", sys.name, err)
		}

		w.Apply(sys.commands)
	}
	return nil
}

// RunUpdate executes one tick. On error the commands pending in the
// failing phase are discarded and the remaining phases do not run.
func (s *Scheduler) RunUpdate(w *World, dt float64) error {
	w.clearDirty()

	for _, phase := range s.phases {
		if err := s.runPhase(w, dt, phase); err != nil {
			return err
		}
	}

	for _, sys := range s.endSystems {
		err := sys.runner(SystemContext{
			World:    w,
			Dt:       dt,
			Commands: sys.commands,
		})
		if err != nil {
			sys.commands.Reset()
			return fmt.Errorf("system %s: %w", sys.name, err)
		}
		w.Apply(sys.commands)
	}

	w.swapMessages()
	w.tick++

	return nil
}

func (s *Scheduler) runPhase(w *World, dt float64, phase []*systemNode) error {
	for _, sys := range phase {
		err := sys.runner(SystemContext{
			World:    w,
			Dt:       dt,
			Commands: sys.commands,
		})
		if err != nil {
			for _, node := range phase {
				node.commands.Reset()
			}
			return fmt.Errorf("system %s: %w", sys.name, err)
		}
	}

	for _, sys := range phase {
		w.Apply(sys.commands)
	}
	return nil
}
