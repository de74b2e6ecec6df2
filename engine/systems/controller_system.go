package systems

import (
	"fmt"

	"github.com/spaghettifunk/rocketpartners/engine/controller"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
)

// ButtonActuator reacts to the status of one controller button. Nil callbacks
// are skipped.
type ButtonActuator struct {
	OnJustPressed      func(poller *controller.ControllerPoller)
	OnPressContinued   func(poller *controller.ControllerPoller, delta float64)
	OnJustReleased     func(poller *controller.ControllerPoller)
	OnReleaseContinued func(poller *controller.ControllerPoller, delta float64)
}

type ControllerComponent struct {
	Actuators map[interface{}]*ButtonActuator
}

func NewControllerComponent() *ControllerComponent {
	return &ControllerComponent{Actuators: make(map[interface{}]*ButtonActuator)}
}

// ControllerSystem polls the controller once per frame and then drives the
// actuators of every controlled entity.
type ControllerSystem struct {
	*ecs.BaseGameSystem
	poller *controller.ControllerPoller
}

func NewControllerSystem(poller *controller.ControllerPoller) (*ControllerSystem, error) {
	if poller == nil {
		err := fmt.Errorf("func NewControllerSystem - poller cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	cs := &ControllerSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(CONTROLLER_SYSTEM, ecs.ComponentType[*ControllerComponent]()),
		poller:         poller,
	}
	cs.PreProcess = func(float64) { cs.poller.Run() }
	cs.Process = cs.process
	return cs, nil
}

func (cs *ControllerSystem) process(e *ecs.GameEntity, delta float64) error {
	c, _ := ecs.GetComponent[*ControllerComponent](e)
	for button, actuator := range c.Actuators {
		if actuator == nil {
			continue
		}
		switch cs.poller.Status(button) {
		case controller.JUST_PRESSED:
			if actuator.OnJustPressed != nil {
				actuator.OnJustPressed(cs.poller)
			}
		case controller.PRESSED:
			if actuator.OnPressContinued != nil {
				actuator.OnPressContinued(cs.poller, delta)
			}
		case controller.JUST_RELEASED:
			if actuator.OnJustReleased != nil {
				actuator.OnJustReleased(cs.poller)
			}
		default:
			if actuator.OnReleaseContinued != nil {
				actuator.OnReleaseContinued(cs.poller, delta)
			}
		}
	}
	return nil
}
