package physics

import (
	"fmt"

	"github.com/QYUbit/physync/pkg/ecs"
)

type ViolationReason uint8

const (
	Missing ViolationReason = iota
	Conflicting
	Invalid
)

// InvariantViolation reports a malformed physics entity. It is fatal for the
// tick: no handle or backend mutation happens after it.
//
// Owner names the component the rule belongs to when it is not the body kind
// (a collider tag, a handle component). Detail explains an Invalid value.
type InvariantViolation struct {
	Entity    ecs.Entity
	Kind      BodyKind
	Component string
	Reason    ViolationReason
	Owner     string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	owner := e.Owner
	if owner == "" {
		owner = e.Kind.String()
	}

	switch e.Reason {
	case Missing:
		return fmt.Sprintf("entity %d: missing %s in %s", e.Entity, e.Component, owner)
	case Conflicting:
		return fmt.Sprintf("entity %d: %s can't have a %s component", e.Entity, owner, e.Component)
	}
	return fmt.Sprintf("entity %d: invalid %s: %s", e.Entity, e.Component, e.Detail)
}
