package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/QYUbit/physync/pkg/ecs"
	"github.com/QYUbit/physync/pkg/physics"
	"github.com/QYUbit/physync/pkg/physics/chipmunk"
	"github.com/QYUbit/physync/pkg/pslog"
	"github.com/QYUbit/physync/pkg/pslog/slogadapter"
	"github.com/QYUbit/physync/pkg/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/profile"
)

type Orbiter struct {
	Center mgl64.Vec2
	Pull   float64
}

func SetupSystem(ctx ecs.SystemContext) error {
	physics.NewBuilder().
		Static().
		At(mgl64.Vec2{0, -4}).
		Square(4).
		Stage(ctx.World, ctx.Commands)

	for i := 0; i < 8; i++ {
		angle := float64(i) * math.Pi / 4
		physics.NewBuilder().
			Dynamic(1 + float64(i%3)).
			At(mgl64.Vec2{6 * math.Cos(angle), 6 * math.Sin(angle)}).
			Moving(mgl64.Vec2{-2 * math.Sin(angle), 2 * math.Cos(angle)}).
			Circle(0.4).
			With(Orbiter{Pull: 3}).
			Stage(ctx.World, ctx.Commands)
	}
	return nil
}

// SteeringSystem produces the Force of every orbiter for the coming step.
func SteeringSystem(ctx ecs.SystemContext) error {
	for row := range ecs.Query3[Orbiter, physics.Position, physics.DynamicBody](ctx.World) {
		o := row.Get1()
		toCenter := o.Center.Sub(row.Get2().Vec2)
		if toCenter.Len() == 0 {
			continue
		}
		f := toCenter.Normalize().Mul(o.Pull * row.Get3().Mass)
		ctx.Commands.AddComponent(row.Entity, physics.Force{Vec2: f})
	}
	return nil
}

func reportSystem(logger pslog.Logger, every uint64) ecs.SystemFunc {
	return func(ctx ecs.SystemContext) error {
		for _, a := range ecs.CollectMessages[physics.Anomaly](ctx.World) {
			logger.Warn("physics anomaly", "kind", a.Kind, "entity", a.Entity, "handle", a.Handle, "err", a.Err)
		}

		if ctx.Tick()%every != 0 {
			return nil
		}
		for row := range ecs.Query2[physics.Position, physics.Velocity](ctx.World, ecs.With(Orbiter{})) {
			logger.Info("orbiter",
				"tick", ctx.Tick(),
				"entity", row.Entity,
				"position", fmt.Sprintf("%.2f,%.2f", row.Get1().X(), row.Get1().Y()),
				"speed", fmt.Sprintf("%.2f", row.Get2().Len()),
			)
		}
		return nil
	}
}

func main() {
	ticks := flag.Int("ticks", 600, "ticks to run back to back; 0 runs in real time until interrupted")
	rate := flag.Int("rate", 60, "ticks per second")
	prof := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	switch *prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slogadapter.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	tickRate := time.Second / time.Duration(*rate)

	engine := ecs.NewEngine()
	s := sim.NewSimulation(engine, sim.Options{TickRate: tickRate, Logger: logger})

	opts := chipmunk.DefaultOptions
	opts.Timestep = s.Dt()
	backend := chipmunk.NewWithOptions(opts)

	ecs.RegisterComponent[Orbiter](engine.World())
	engine.RegisterSystemFunc(SetupSystem, ecs.Trigger(ecs.OnStartup), ecs.Name("setup"))
	engine.RegisterSystemFunc(SteeringSystem, ecs.Name("steering"))
	engine.RegisterPlugin(physics.Plugin(backend, physics.WithLogger(logger)))
	engine.RegisterSystemFunc(reportSystem(logger, uint64(*rate)), ecs.Trigger(ecs.OnEndOfTick), ecs.Name("report"))

	if err := engine.RunInit(); err != nil {
		logger.Error("setup failed", "err", err)
		os.Exit(1)
	}

	var err error
	if *ticks > 0 {
		err = s.Steps(*ticks)
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = s.Start(ctx)
	}

	if err != nil {
		logger.Error("simulation halted", "err", err)
		os.Exit(1)
	}

	stats, _ := ecs.GetSingleton[physics.Stats](engine.World())
	logger.Info("done",
		"ticks", s.Ticks(),
		"bodies", backend.BodyCount(),
		"colliders", backend.ColliderCount(),
		"insertFailures", stats.InsertFailures,
		"clamps", stats.NonFiniteClamps,
	)
}
