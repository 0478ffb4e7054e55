package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrStaleHandle = errors.New("physics: stale handle")

// Handle addresses a slot in a backend arena. A slot is reused with a new
// generation, so a handle outliving its resource is detectable. The zero
// Handle is never issued.
type Handle struct {
	Index      uint32
	Generation uint32
}

func (h Handle) IsZero() bool {
	return h == Handle{}
}

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.Index, h.Generation)
}

// BodyDesc describes a body to insert. Dynamic bodies start from the given
// state; static and disabled bodies stay where they are placed.
type BodyDesc struct {
	Kind           BodyKind
	Mass           float64
	GravityEnabled bool
	State          KinematicState
}

type KinematicState struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Angle    float64
}

// Backend is the rigid-body simulation. Handles it returns stay valid until
// removed; RemoveBody also releases the colliders attached to the body.
type Backend interface {
	InsertBody(desc BodyDesc) (Handle, error)
	RemoveBody(h Handle) error
	InsertCollider(shape Shape, body Handle) (Handle, error)
	RemoveCollider(h Handle) error

	SetKinematicState(h Handle, s KinematicState) error
	KinematicState(h Handle) (KinematicState, error)
	ApplyForce(h Handle, f mgl64.Vec2) error

	// Step advances the simulation by one fixed timestep.
	Step()

	ContainsBody(h Handle) bool
	ContainsCollider(h Handle) bool
	Bodies() []Handle
	Colliders() []Handle
}
