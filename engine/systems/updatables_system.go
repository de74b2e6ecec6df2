package systems

import (
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
)

type Updatable func(delta float64)

type UpdatablesComponent struct {
	Updatables []Updatable
}

type UpdatablesSystem struct {
	*ecs.BaseGameSystem
}

func NewUpdatablesSystem() *UpdatablesSystem {
	us := &UpdatablesSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(UPDATABLES_SYSTEM, ecs.ComponentType[*UpdatablesComponent]()),
	}
	us.Process = func(e *ecs.GameEntity, delta float64) error {
		c, _ := ecs.GetComponent[*UpdatablesComponent](e)
		for _, u := range c.Updatables {
			if u != nil {
				u(delta)
			}
		}
		return nil
	}
	return us
}
