package systems

import (
	"context"
	"fmt"
	"time"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
	"github.com/spaghettifunk/rocketpartners/engine/graph"
	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// PathfindingComponent asks for a path from Start to Target every frame
// ShouldUpdate allows it. The outcome goes to Consumer.
type PathfindingComponent struct {
	Start        func() math.Vec2
	Target       func() math.Vec2
	Consumer     func(path []*graph.GraphNode, err error)
	ShouldUpdate func(delta float64) bool
	// Params are handed to the pathfinder factory untouched.
	Params interface{}
}

// PathfinderFactory builds the pathfinder serving a request, nil skips it.
type PathfinderFactory func(c *PathfindingComponent) *graph.Pathfinder

/** @brief The pathfinding system configuration. */
type PathfindingSystemConfig struct {
	Factory PathfinderFactory
	/** @brief Upper bound of a single search. */
	Timeout time.Duration
}

type PathfindingSystem struct {
	*ecs.BaseGameSystem
	config *PathfindingSystemConfig
}

func NewPathfindingSystem(config *PathfindingSystemConfig) (*PathfindingSystem, error) {
	if config == nil || config.Factory == nil {
		err := fmt.Errorf("func NewPathfindingSystem - config.Factory cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	if config.Timeout <= 0 {
		err := fmt.Errorf("func NewPathfindingSystem - config.Timeout must be > 0")
		core.LogError("%s", err)
		return nil, err
	}
	ps := &PathfindingSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(PATHFINDING_SYSTEM, ecs.ComponentType[*PathfindingComponent]()),
		config:         config,
	}
	ps.Process = ps.process
	return ps, nil
}

func (ps *PathfindingSystem) process(e *ecs.GameEntity, delta float64) error {
	c, _ := ecs.GetComponent[*PathfindingComponent](e)
	if c.Start == nil || c.Target == nil || c.Consumer == nil {
		return nil
	}
	if c.ShouldUpdate != nil && !c.ShouldUpdate(delta) {
		return nil
	}
	pathfinder := ps.config.Factory(c)
	if pathfinder == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ps.config.Timeout)
	defer cancel()

	path, err := pathfinder.Find(ctx, c.Start(), c.Target())
	if err != nil {
		core.LogDebug("pathfinding for entity %s: %s", e.ID(), err)
	}
	c.Consumer(path, err)
	return nil
}
