package systems

import (
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
)

// Cullable reports whether its entity should be removed this frame.
type Cullable func(delta float64) bool

type CullablesComponent struct {
	Cullables []Cullable
}

// CullablesSystem kills every entity having at least one cullable that asks for it.
type CullablesSystem struct {
	*ecs.BaseGameSystem
}

func NewCullablesSystem() *CullablesSystem {
	cs := &CullablesSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(CULLABLES_SYSTEM, ecs.ComponentType[*CullablesComponent]()),
	}
	cs.Process = func(e *ecs.GameEntity, delta float64) error {
		c, _ := ecs.GetComponent[*CullablesComponent](e)
		for _, cull := range c.Cullables {
			if cull != nil && cull(delta) {
				e.Kill()
				return nil
			}
		}
		return nil
	}
	return cs
}
