package ecs

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/spaghettifunk/rocketpartners/engine/core"
)

// GameEntity is a bag of components. Systems pick the entities whose
// components they need.
type GameEntity struct {
	id         uuid.UUID
	components map[reflect.Type]interface{}
	dead       bool
	spawned    bool

	Properties map[string]interface{}
	// OnSpawn runs once when the engine adds the entity to its systems.
	OnSpawn func(props core.Properties)
	// OnDestroy runs once when the engine purges the dead entity.
	OnDestroy func()
}

func NewGameEntity() *GameEntity {
	e := &GameEntity{
		components: make(map[reflect.Type]interface{}),
		Properties: make(map[string]interface{}),
	}
	e.id = core.IdentifierAcquireNewID(e)
	return e
}

func (e *GameEntity) ID() uuid.UUID { return e.id }

// Kill marks the entity; the engine removes it at the end of the frame.
func (e *GameEntity) Kill()        { e.dead = true }
func (e *GameEntity) IsDead() bool { return e.dead }

func (e *GameEntity) IsSpawned() bool { return e.spawned }

// AddComponent stores c under its dynamic type, replacing a previous one.
func (e *GameEntity) AddComponent(c interface{}) {
	e.components[reflect.TypeOf(c)] = c
}

func (e *GameEntity) HasComponent(t reflect.Type) bool {
	_, ok := e.components[t]
	return ok
}

func (e *GameEntity) RemoveComponent(t reflect.Type) {
	delete(e.components, t)
}

// ComponentType returns the key a component of type T is stored under.
func ComponentType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent returns the component of type T, usually a pointer type.
func GetComponent[T any](e *GameEntity) (T, bool) {
	c, ok := e.components[ComponentType[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return c.(T), true
}
