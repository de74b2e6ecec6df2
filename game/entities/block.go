package entities

import (
	"image/color"

	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
	"github.com/spaghettifunk/rocketpartners/engine/math"
	"github.com/spaghettifunk/rocketpartners/engine/systems"
	engineworld "github.com/spaghettifunk/rocketpartners/engine/world"
	"github.com/spaghettifunk/rocketpartners/game/world"
)

// NewBlock returns a static, solid box of the level.
func NewBlock(bounds math.Rect) *ecs.GameEntity {
	e := ecs.NewGameEntity()
	body := engineworld.NewBody(engineworld.STATIC, bounds)
	body.Properties[world.PROP_OWNER] = e
	body.AddFixture(engineworld.NewFixture(world.BLOCK, bounds.Width, bounds.Height))
	e.AddComponent(&systems.BodyComponent{Body: body})
	e.AddComponent(&systems.DrawableShapesComponent{
		DebugShapes: []systems.ShapeSupplier{
			func() drawables.DrawableShape {
				return drawables.NewRectShape(body.Bounds, color.RGBA{B: 0xff, A: 0xff}, drawables.LINE)
			},
		},
	})
	return e
}
