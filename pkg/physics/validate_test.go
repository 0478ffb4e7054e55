package physics

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/QYUbit/physync/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/mock/gomock"
)

// newMockEngine installs a pipeline over a strict mock: any backend call
// not expected by the test fails it.
func newMockEngine(t *testing.T) (*ecs.Engine, *MockBackend) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)

	engine := ecs.NewEngine()
	engine.RegisterPlugin(Plugin(backend))
	return engine, backend
}

// TestValidateMissingVelocity tests that a dynamic body without Velocity
// halts the tick before the backend is touched.
func TestValidateMissingVelocity(t *testing.T) {
	engine, _ := newMockEngine(t)
	w := engine.World()

	e := w.Spawn(
		DynamicBody{Mass: 1},
		Position{mgl64.Vec2{0, 0}},
		Orientation{Angle: 0},
	)

	err := engine.ExecuteTick(1.0 / 60)
	if err == nil {
		t.Fatal("expected an invariant violation")
	}

	var v *InvariantViolation
	if !errors.As(err, &v) {
		t.Fatalf("expected *InvariantViolation, got %T: %v", err, err)
	}
	if v.Entity != e || v.Component != "Velocity" || v.Reason != Missing || v.Kind != Dynamic {
		t.Errorf("unexpected violation %+v", v)
	}
	if !strings.Contains(err.Error(), "missing Velocity in DynamicBody") {
		t.Errorf("unexpected message %q", err)
	}
	if !strings.HasPrefix(err.Error(), "system "+StageValidate+": ") {
		t.Errorf("expected the stage name in %q", err)
	}
	if ecs.Has[BodyHandle](w, e) {
		t.Error("handle created despite the violation")
	}
}

// TestValidateStaticVelocity tests that a static body carrying Velocity is
// rejected naming the conflicting component.
func TestValidateStaticVelocity(t *testing.T) {
	engine, _ := newMockEngine(t)
	w := engine.World()

	e := w.Spawn(StaticBody{}, Position{}, Velocity{mgl64.Vec2{1, 0}})

	err := engine.ExecuteTick(1.0 / 60)

	var v *InvariantViolation
	if !errors.As(err, &v) {
		t.Fatalf("expected *InvariantViolation, got %v", err)
	}
	if v.Entity != e || v.Component != "Velocity" || v.Reason != Conflicting {
		t.Errorf("unexpected violation %+v", v)
	}
	want := "StaticBody can't have a Velocity component"
	if !strings.Contains(err.Error(), want) {
		t.Errorf("expected %q in %q", want, err)
	}
}

// TestValidateRules tests each invariant in isolation.
func TestValidateRules(t *testing.T) {
	dynamic := []any{DynamicBody{Mass: 1}, Position{}, Velocity{}, Orientation{}}

	tests := []struct {
		name       string
		components []any
		component  string
		reason     ViolationReason
		ok         bool
	}{
		{"valid dynamic", dynamic, "", 0, true},
		{"valid static", []any{StaticBody{}, Position{}, Orientation{}}, "", 0, true},
		{"valid disabled", []any{DisabledBody{}}, "", 0, true},
		{"collider without body", []any{CircleCollider{Radius: 1}}, "", 0, true},
		{"dynamic missing position", []any{DynamicBody{Mass: 1}, Velocity{}, Orientation{}}, "Position", Missing, false},
		{"dynamic missing orientation", []any{DynamicBody{Mass: 1}, Position{}, Velocity{}}, "Orientation", Missing, false},
		{"dynamic and static", append([]any{StaticBody{}}, dynamic...), "StaticBody", Conflicting, false},
		{"dynamic and disabled", append([]any{DisabledBody{}}, dynamic...), "DisabledBody", Conflicting, false},
		{"static and disabled", []any{StaticBody{}, DisabledBody{}, Position{}}, "DisabledBody", Conflicting, false},
		{"static missing position", []any{StaticBody{}}, "Position", Missing, false},
		{"static with speed", []any{StaticBody{}, Position{}, Speed{Value: 1}}, "Speed", Conflicting, false},
		{"static with acceleration", []any{StaticBody{}, Position{}, Acceleration{Value: 1}}, "Acceleration", Conflicting, false},
		{"static with force", []any{StaticBody{}, Position{}, Force{}}, "Force", Conflicting, false},
		{"zero mass", []any{DynamicBody{}, Position{}, Velocity{}, Orientation{}}, "DynamicBody", Invalid, false},
		{"infinite mass", []any{DynamicBody{Mass: math.Inf(1)}, Position{}, Velocity{}, Orientation{}}, "DynamicBody", Invalid, false},
		{"two shapes", append([]any{CircleCollider{Radius: 1}, SquareCollider{SideLength: 1}}, dynamic...), "SquareCollider", Conflicting, false},
		{"negative radius", append([]any{CircleCollider{Radius: -1}}, dynamic...), "CircleCollider", Invalid, false},
		{"nan side length", append([]any{SquareCollider{SideLength: math.NaN()}}, dynamic...), "SquareCollider", Invalid, false},
		{"nan position", []any{DynamicBody{Mass: 1}, Position{mgl64.Vec2{math.NaN(), 0}}, Velocity{}, Orientation{}}, "Position", Invalid, false},
		{"infinite velocity", []any{DynamicBody{Mass: 1}, Position{}, Velocity{mgl64.Vec2{0, math.Inf(-1)}}, Orientation{}}, "Velocity", Invalid, false},
		{"nan orientation", []any{DynamicBody{Mass: 1}, Position{}, Velocity{}, Orientation{Angle: math.NaN()}}, "Orientation", Invalid, false},
		{"nan force", []any{DynamicBody{Mass: 1}, Position{}, Velocity{}, Orientation{}, Force{mgl64.Vec2{math.NaN(), 1}}}, "Force", Invalid, false},
		{"static nan position", []any{StaticBody{}, Position{mgl64.Vec2{0, math.Inf(1)}}}, "Position", Invalid, false},
		{"collider handle without body handle", append([]any{ColliderHandle{}}, dynamic...), "BodyHandle", Missing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			RegisterComponents(w)
			e := w.Spawn(tt.components...)

			p := NewPipeline(nil)
			err := p.Validate(ecs.SystemContext{World: w, Commands: &ecs.CommandBuffer{}})

			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var v *InvariantViolation
			if !errors.As(err, &v) {
				t.Fatalf("expected *InvariantViolation, got %v", err)
			}
			if v.Entity != e || v.Component != tt.component || v.Reason != tt.reason {
				t.Errorf("expected %s/%d on entity %d, got %+v", tt.component, tt.reason, e, v)
			}
		})
	}
}

// TestValidationErrorStopsLaterTicks tests that fixing the entity lets the
// pipeline proceed.
func TestValidationErrorStopsLaterTicks(t *testing.T) {
	engine, backend := newMockEngine(t)
	w := engine.World()

	e := w.Spawn(DynamicBody{Mass: 1}, Position{}, Orientation{})
	if err := engine.ExecuteTick(1.0 / 60); err == nil {
		t.Fatal("expected an error")
	}

	h := Handle{Index: 0, Generation: 1}
	gomock.InOrder(
		backend.EXPECT().InsertBody(BodyDesc{Kind: Dynamic, Mass: 1}).Return(h, nil),
		backend.EXPECT().Bodies().Return(nil),
		backend.EXPECT().Colliders().Return(nil),
		backend.EXPECT().SetKinematicState(h, KinematicState{}).Return(nil),
		backend.EXPECT().Step(),
		backend.EXPECT().KinematicState(h).Return(KinematicState{}, nil),
	)
	backend.EXPECT().ContainsBody(h).Return(true).AnyTimes()

	w.Insert(e, Velocity{})
	if err := engine.ExecuteTick(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	if got, ok := ecs.Get[BodyHandle](w, e); !ok || got.Handle != h {
		t.Errorf("expected handle %v, got %+v", h, got)
	}
}
