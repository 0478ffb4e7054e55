package physics_test

import (
	"testing"

	"github.com/QYUbit/physync/pkg/ecs"
	"github.com/QYUbit/physync/pkg/physics"
	"github.com/QYUbit/physync/pkg/physics/chipmunk"
	"github.com/go-gl/mathgl/mgl64"
)

// BenchmarkTick benchmarks a full pipeline tick over settled handles
func BenchmarkTick(b *testing.B) {
	engine := ecs.NewEngine()
	engine.RegisterPlugin(physics.Plugin(chipmunk.New()))
	w := engine.World()

	for i := 0; i < 500; i++ {
		physics.NewBuilder().
			Dynamic(1).
			At(mgl64.Vec2{float64(i % 25), float64(i / 25)}).
			Moving(mgl64.Vec2{1, 0}).
			Spawn(w)
	}
	if err := engine.ExecuteTick(dt); err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		engine.ExecuteTick(dt)
	}
}

// BenchmarkHandleChurn benchmarks creating and releasing bodies every tick
func BenchmarkHandleChurn(b *testing.B) {
	engine := ecs.NewEngine()
	engine.RegisterPlugin(physics.Plugin(chipmunk.New()))
	w := engine.World()

	entities := make([]ecs.Entity, 200)
	for i := range entities {
		entities[i] = physics.NewBuilder().Static().Square(1).Spawn(w)
	}

	on := true
	for b.Loop() {
		for _, e := range entities {
			if on {
				w.Detach(e, physics.StaticBody{})
			} else {
				w.Insert(e, physics.StaticBody{})
			}
		}
		on = !on
		engine.ExecuteTick(dt)
	}
}
