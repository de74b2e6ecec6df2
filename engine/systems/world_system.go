package systems

import (
	"fmt"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
	"github.com/spaghettifunk/rocketpartners/engine/graph"
	"github.com/spaghettifunk/rocketpartners/engine/world"
)

// Upper bound of fixed steps run by a single Update, so a long frame does not
// stall the loop.
const MAX_WORLD_STEPS_PER_UPDATE = 16

type BodyComponent struct {
	Body *world.Body
}

/** @brief The world system configuration. */
type WorldSystemConfig struct {
	ContactListener world.ContactListener
	/** @brief Returns the graph map rebuilt on every step, may return nil. */
	GraphMap         func() *graph.GraphMap
	FixedStep        float32
	CollisionHandler world.CollisionHandler
	FilterMap        *world.FilterMap
	Debug            bool
}

// WorldSystem steps every body at a fixed rate, resolves body collisions and
// reports fixture contacts to the contact listener.
type WorldSystem struct {
	*ecs.BaseGameSystem
	config      *WorldSystemConfig
	accumulator float32
	contacts    []world.Contact
}

func NewWorldSystem(config *WorldSystemConfig) (*WorldSystem, error) {
	if config == nil {
		err := fmt.Errorf("func NewWorldSystem - config cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	if config.FixedStep <= 0 {
		err := fmt.Errorf("func NewWorldSystem - config.FixedStep must be > 0")
		core.LogError("%s", err)
		return nil, err
	}
	if config.ContactListener == nil {
		err := fmt.Errorf("func NewWorldSystem - config.ContactListener cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	if config.CollisionHandler == nil {
		config.CollisionHandler = world.StandardCollisionHandler{}
	}
	return &WorldSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(WORLD_SYSTEM, ecs.ComponentType[*BodyComponent]()),
		config:         config,
	}, nil
}

// Contacts returns the contacts found by the last step.
func (ws *WorldSystem) Contacts() []world.Contact {
	out := make([]world.Contact, len(ws.contacts))
	copy(out, ws.contacts)
	return out
}

func (ws *WorldSystem) Update(delta float64) error {
	if !ws.On() {
		return nil
	}
	ws.accumulator += float32(delta)
	steps := 0
	for ws.accumulator >= ws.config.FixedStep {
		if steps == MAX_WORLD_STEPS_PER_UPDATE {
			core.LogWarn("world system fell behind, dropping %.4fs", ws.accumulator)
			ws.accumulator = 0
			break
		}
		ws.accumulator -= ws.config.FixedStep
		ws.step(ws.config.FixedStep)
		steps++
	}
	return nil
}

func (ws *WorldSystem) Reset() {
	ws.BaseGameSystem.Reset()
	ws.accumulator = 0
	ws.contacts = nil
}

func (ws *WorldSystem) bodies() []*world.Body {
	entities := ws.Entities()
	bodies := make([]*world.Body, 0, len(entities))
	for _, e := range entities {
		if e.IsDead() {
			continue
		}
		if c, ok := ecs.GetComponent[*BodyComponent](e); ok && c.Body != nil {
			bodies = append(bodies, c.Body)
		}
	}
	return bodies
}

func (ws *WorldSystem) step(dt float32) {
	bodies := ws.bodies()

	for _, b := range bodies {
		if b.PreProcess != nil {
			b.PreProcess(dt)
		}
		b.Step(dt)
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.Type == world.ABSTRACT || b.Type == world.ABSTRACT {
				continue
			}
			if a.Type != world.DYNAMIC && b.Type != world.DYNAMIC {
				continue
			}
			if a.Bounds.Overlaps(b.Bounds) {
				ws.config.CollisionHandler.HandleCollision(a, b)
			}
		}
	}

	if ws.config.GraphMap != nil {
		if g := ws.config.GraphMap(); g != nil {
			g.Reset()
			for _, b := range bodies {
				g.Add(b, b.Bounds)
			}
		}
	}

	current := ws.findContacts(bodies)
	ws.notifyContacts(current, dt)
	ws.contacts = current

	for _, b := range bodies {
		if b.PostProcess != nil {
			b.PostProcess(dt)
		}
	}

	if ws.config.Debug {
		core.LogDebug("world step: %d bodies, %d contacts", len(bodies), len(current))
	}
}

func (ws *WorldSystem) findContacts(bodies []*world.Body) []world.Contact {
	var contacts []world.Contact
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			for _, fa := range bodies[i].Fixtures {
				if !fa.Active {
					continue
				}
				for _, fb := range bodies[j].Fixtures {
					if !fb.Active || !ws.config.FilterMap.Allows(fa.Type, fb.Type) {
						continue
					}
					if fa.Bounds().Overlaps(fb.Bounds()) {
						contacts = append(contacts, world.Contact{A: fa, B: fb})
					}
				}
			}
		}
	}
	return contacts
}

func (ws *WorldSystem) notifyContacts(current []world.Contact, dt float32) {
	prior := make(map[[2]*world.Fixture]struct{}, len(ws.contacts))
	for _, c := range ws.contacts {
		prior[c.Key()] = struct{}{}
	}
	seen := make(map[[2]*world.Fixture]struct{}, len(current))
	for _, c := range current {
		key := c.Key()
		reversed := [2]*world.Fixture{key[1], key[0]}
		seen[key] = struct{}{}
		seen[reversed] = struct{}{}
		_, ok := prior[key]
		if _, rok := prior[reversed]; ok || rok {
			ws.config.ContactListener.ContinueContact(c, dt)
		} else {
			ws.config.ContactListener.BeginContact(c, dt)
		}
	}
	for _, c := range ws.contacts {
		if _, ok := seen[c.Key()]; !ok {
			ws.config.ContactListener.EndContact(c, dt)
		}
	}
}
