package systems

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/rocketpartners/engine/controller"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
)

const (
	CONTROLLER_SYSTEM      = "ControllerSystem"
	BEHAVIORS_SYSTEM       = "BehaviorsSystem"
	WORLD_SYSTEM           = "WorldSystem"
	CULLABLES_SYSTEM       = "CullablesSystem"
	PATHFINDING_SYSTEM     = "PathfindingSystem"
	POINTS_SYSTEM          = "PointsSystem"
	UPDATABLES_SYSTEM      = "UpdatablesSystem"
	FONTS_SYSTEM           = "FontsSystem"
	ANIMATIONS_SYSTEM      = "AnimationsSystem"
	SPRITES_SYSTEM         = "SpritesSystem"
	DRAWABLE_SHAPES_SYSTEM = "DrawableShapesSystem"
	AUDIO_SYSTEM           = "AudioSystem"
)

/** @brief Everything the game systems are wired to. */
type SystemManagerConfig struct {
	Poller      *controller.ControllerPoller
	World       *WorldSystemConfig
	Pathfinding *PathfindingSystemConfig
	// Receives the fonts and sprites to draw this frame.
	Drawables DrawableConsumer
	// Receives the shapes to draw this frame.
	Shapes      ShapeConsumer
	DebugShapes bool
	Audio       *AudioSystemConfig
}

// SystemManager owns the game systems, in update order, and indexes them by name.
type SystemManager struct {
	ordered []ecs.GameSystem
	byName  map[string]ecs.GameSystem
}

func NewSystemManager(config *SystemManagerConfig) (*SystemManager, error) {
	if config == nil {
		err := fmt.Errorf("func NewSystemManager - config cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	controllerSystem, err := NewControllerSystem(config.Poller)
	if err != nil {
		return nil, err
	}
	worldSystem, err := NewWorldSystem(config.World)
	if err != nil {
		return nil, err
	}
	pathfindingSystem, err := NewPathfindingSystem(config.Pathfinding)
	if err != nil {
		return nil, err
	}
	fontsSystem, err := NewFontsSystem(config.Drawables)
	if err != nil {
		return nil, err
	}
	spritesSystem, err := NewSpritesSystem(config.Drawables)
	if err != nil {
		return nil, err
	}
	shapesSystem, err := NewDrawableShapesSystem(config.Shapes, config.DebugShapes)
	if err != nil {
		return nil, err
	}
	audioSystem, err := NewAudioSystem(config.Audio)
	if err != nil {
		return nil, err
	}

	sm := &SystemManager{byName: make(map[string]ecs.GameSystem)}
	for _, s := range []ecs.GameSystem{
		controllerSystem,
		NewBehaviorsSystem(),
		worldSystem,
		NewCullablesSystem(),
		pathfindingSystem,
		NewPointsSystem(),
		NewUpdatablesSystem(),
		fontsSystem,
		NewAnimationsSystem(),
		spritesSystem,
		shapesSystem,
		audioSystem,
	} {
		sm.ordered = append(sm.ordered, s)
		sm.byName[s.Name()] = s
	}
	return sm, nil
}

// Systems returns the systems in update order.
func (sm *SystemManager) Systems() []ecs.GameSystem {
	out := make([]ecs.GameSystem, len(sm.ordered))
	copy(out, sm.ordered)
	return out
}

func (sm *SystemManager) Get(name string) (ecs.GameSystem, bool) {
	s, ok := sm.byName[name]
	return s, ok
}

// Names returns the system names in update order.
func (sm *SystemManager) Names() []string {
	names := make([]string, 0, len(sm.ordered))
	for _, s := range sm.ordered {
		names = append(names, s.Name())
	}
	return names
}

// GetSystem returns the named system as its concrete type.
func GetSystem[T ecs.GameSystem](sm *SystemManager, name string) (T, bool) {
	s, ok := sm.byName[name]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := s.(T)
	return t, ok
}

// Shutdown stops the systems in reverse update order.
func (sm *SystemManager) Shutdown() error {
	var errs []error
	for i := len(sm.ordered) - 1; i >= 0; i-- {
		if err := sm.ordered[i].Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", sm.ordered[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}
