package systems

import (
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
)

// Behavior runs Act every frame its Evaluate holds. Init fires on the frame
// it starts holding and End on the frame it stops.
type Behavior struct {
	Evaluate func(delta float64) bool
	Init     func()
	Act      func(delta float64)
	End      func()

	running bool
}

func (b *Behavior) Running() bool { return b.running }

func (b *Behavior) update(delta float64) {
	should := b.Evaluate != nil && b.Evaluate(delta)
	switch {
	case should && !b.running:
		b.running = true
		if b.Init != nil {
			b.Init()
		}
	case !should && b.running:
		b.running = false
		if b.End != nil {
			b.End()
		}
		return
	case !should:
		return
	}
	if b.Act != nil {
		b.Act(delta)
	}
}

type BehaviorsComponent struct {
	Behaviors []*Behavior
}

type BehaviorsSystem struct {
	*ecs.BaseGameSystem
}

func NewBehaviorsSystem() *BehaviorsSystem {
	bs := &BehaviorsSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(BEHAVIORS_SYSTEM, ecs.ComponentType[*BehaviorsComponent]()),
	}
	bs.Process = func(e *ecs.GameEntity, delta float64) error {
		c, _ := ecs.GetComponent[*BehaviorsComponent](e)
		for _, b := range c.Behaviors {
			b.update(delta)
		}
		return nil
	}
	return bs
}
