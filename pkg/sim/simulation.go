// Package sim drives an engine at a fixed tick rate.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/QYUbit/physync/pkg/pslog"
	"github.com/google/uuid"
)

var (
	ErrSimulationRunning    = errors.New("simulation is already running")
	ErrSimulationNotRunning = errors.New("simulation is not running")
)

// Engine executes one tick. *ecs.Engine implements it.
type Engine interface {
	ExecuteTick(dt float64) error
}

type Options struct {
	TickRate time.Duration
	Logger   pslog.Logger
}

var DefaultOptions = Options{
	TickRate: time.Second / 60,
}

// Simulation runs ticks one after another; a tick never starts before the
// previous one returned. The first tick error stops it.
type Simulation struct {
	id       uuid.UUID
	engine   Engine
	tickRate time.Duration
	logger   pslog.Logger

	mu        sync.Mutex
	isRunning bool
	cancel    context.CancelFunc
	ticks     uint64
}

func NewSimulation(engine Engine, opts Options) *Simulation {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultOptions.TickRate
	}
	if opts.Logger == nil {
		opts.Logger = pslog.Nop()
	}

	id := uuid.New()
	return &Simulation{
		id:       id,
		engine:   engine,
		tickRate: opts.TickRate,
		logger:   pslog.With(opts.Logger, "sim", id.String()),
	}
}

func (s *Simulation) ID() uuid.UUID {
	return s.id
}

// Dt is the fixed timestep passed to every tick, in seconds. A backend
// stepping on its own clock should be configured with it, since TickRate
// is truncated to whole nanoseconds.
func (s *Simulation) Dt() float64 {
	return s.tickRate.Seconds()
}

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Simulation) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Start ticks the engine until ctx is done, Stop is called or a tick
// fails. It blocks and returns nil unless a tick failed.
func (s *Simulation) Start(ctx context.Context) error {
	ctx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer s.end()

	t := time.NewTicker(s.tickRate)
	defer t.Stop()

	s.logger.Info("simulation started", "tickRate", s.tickRate)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("simulation stopped", "ticks", s.Ticks())
			return nil
		case <-t.C:
			if err := s.step(); err != nil {
				return err
			}
		}
	}
}

// Stop ends a running Start.
func (s *Simulation) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return ErrSimulationNotRunning
	}
	s.cancel()
	return nil
}

// Steps runs n ticks back to back without waiting for the tick rate.
func (s *Simulation) Steps(n int) error {
	if _, err := s.begin(context.Background()); err != nil {
		return err
	}
	defer s.end()

	for i := 0; i < n; i++ {
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) begin(ctx context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil, ErrSimulationRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	s.isRunning = true
	s.cancel = cancel
	return ctx, nil
}

func (s *Simulation) end() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	s.cancel = nil
	s.isRunning = false
}

func (s *Simulation) step() error {
	tick := s.Ticks()

	if err := s.engine.ExecuteTick(s.Dt()); err != nil {
		s.logger.Error("tick failed", "tick", tick, "err", err)
		return fmt.Errorf("tick %d: %w", tick, err)
	}

	s.mu.Lock()
	s.ticks++
	s.mu.Unlock()
	return nil
}
