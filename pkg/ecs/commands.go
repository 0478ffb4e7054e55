package ecs

import "reflect"

type CommandOperation int

const (
	CreateEntityCommand CommandOperation = iota
	DestroyEntityCommand
	AddComponentToEntity
	RemoveComponentFromEntity
)

// Command represents a structural change instruction
// (create entity, destroy entity, add component, remove component).
type Command struct {
	Op     CommandOperation
	Entity Entity
	Type   reflect.Type
	Value  any
	Values []any
}

// A CommandBuffer collects commands from a system. The scheduler applies
// them at the next barrier in the order they were recorded.
type CommandBuffer struct {
	commands []Command
}

// Reset resets the command buffer.
func (cb *CommandBuffer) Reset() {
	clear(cb.commands)
	cb.commands = cb.commands[:0]
}

// GetCommands retrieves all queued commands from cb.
func (cb *CommandBuffer) GetCommands() []Command {
	return cb.commands
}

// Len returns the number of queued commands.
func (cb *CommandBuffer) Len() int {
	return len(cb.commands)
}

// CreateEntity inserts a create-entity-command to cb.
func (cb *CommandBuffer) CreateEntity(e Entity, initial ...any) {
	cb.commands = append(cb.commands, Command{
		Op:     CreateEntityCommand,
		Entity: e,
		Values: initial,
	})
}

// DestroyEntity inserts a destroy-entity-command to cb.
func (cb *CommandBuffer) DestroyEntity(e Entity) {
	cb.commands = append(cb.commands, Command{
		Op:     DestroyEntityCommand,
		Entity: e,
	})
}

// AddComponent inserts an add-component-command to cb. Applying it
// replaces a component of the same type.
func (cb *CommandBuffer) AddComponent(e Entity, v any) {
	cb.commands = append(cb.commands, Command{
		Op:     AddComponentToEntity,
		Entity: e,
		Type:   reflect.TypeOf(v),
		Value:  v, // ! Boxing
	})
}

// RemoveComponent inserts a remove-component-command to cb.
func (cb *CommandBuffer) RemoveComponent(e Entity, v any) {
	cb.commands = append(cb.commands, Command{
		Op:     RemoveComponentFromEntity,
		Entity: e,
		Type:   reflect.TypeOf(v),
	})
}

// RemoveComponentFor inserts a remove-component-command to cb.
func RemoveComponentFor[T any](cb *CommandBuffer, e Entity) {
	cb.commands = append(cb.commands, Command{
		Op:     RemoveComponentFromEntity,
		Entity: e,
		Type:   reflect.TypeFor[T](),
	})
}
