package ecs

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/rocketpartners/engine/core"
)

type spawnRequest struct {
	entity *GameEntity
	props  core.Properties
}

// GameEngine runs its systems in the order they were given, once per Update.
type GameEngine struct {
	systems  []GameSystem
	entities []*GameEntity
	spawns   []spawnRequest
	updating bool
}

func NewGameEngine(systems ...GameSystem) *GameEngine {
	return &GameEngine{
		systems: slices.Clone(systems),
	}
}

// Systems returns the systems in update order.
func (ge *GameEngine) Systems() []GameSystem {
	return slices.Clone(ge.systems)
}

// Entities returns the number of live entities.
func (ge *GameEngine) Entities() int {
	return len(ge.entities)
}

// Spawn adds the entity to every system it qualifies for and calls its OnSpawn
// hook. During an Update the entity joins at the start of the next one.
func (ge *GameEngine) Spawn(e *GameEntity, props core.Properties) bool {
	if e.IsSpawned() || slices.ContainsFunc(ge.spawns, func(r spawnRequest) bool { return r.entity == e }) {
		return false
	}
	if ge.updating {
		ge.spawns = append(ge.spawns, spawnRequest{entity: e, props: props})
		return true
	}
	ge.spawn(e, props)
	return true
}

func (ge *GameEngine) spawn(e *GameEntity, props core.Properties) {
	if props == nil {
		props = core.Properties{}
	}
	e.dead = false
	e.spawned = true
	ge.entities = append(ge.entities, e)
	if e.OnSpawn != nil {
		e.OnSpawn(props)
	}
	for _, s := range ge.systems {
		if s.Qualifies(e) {
			s.Add(e)
		}
	}
}

// Update spawns the pending entities, runs every system that is on and then
// purges the dead entities. The first system error stops the frame.
func (ge *GameEngine) Update(delta float64) error {
	pending := ge.spawns
	ge.spawns = nil
	for _, r := range pending {
		ge.spawn(r.entity, r.props)
	}

	ge.updating = true
	defer func() { ge.updating = false }()

	for _, s := range ge.systems {
		if !s.On() {
			continue
		}
		if err := s.Update(delta); err != nil {
			return fmt.Errorf("system %s: %w", s.Name(), err)
		}
	}

	ge.purge()
	return nil
}

func (ge *GameEngine) purge() {
	var dead []*GameEntity
	ge.entities = slices.DeleteFunc(ge.entities, func(e *GameEntity) bool {
		if e.IsDead() {
			dead = append(dead, e)
			return true
		}
		return false
	})
	for _, e := range dead {
		ge.destroy(e)
	}
}

func (ge *GameEngine) destroy(e *GameEntity) {
	for _, s := range ge.systems {
		s.Remove(e)
	}
	e.spawned = false
	if e.OnDestroy != nil {
		e.OnDestroy()
	}
}

// Reset destroys every entity and resets every system.
func (ge *GameEngine) Reset() {
	for _, e := range ge.entities {
		e.Kill()
		ge.destroy(e)
	}
	ge.entities = nil
	ge.spawns = nil
	for _, s := range ge.systems {
		s.Reset()
	}
}

// Shutdown resets the engine and shuts every system down.
func (ge *GameEngine) Shutdown() error {
	ge.Reset()
	var errs []error
	for _, s := range ge.systems {
		if err := s.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("system %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
