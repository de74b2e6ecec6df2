package engine

import (
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	// Set by the engine before FnInitialize runs.
	Events *core.EventSystem
	Input  *core.Input
	State  interface{}

	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	FnShutdown   Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(batch *drawables.ImageBatch, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
