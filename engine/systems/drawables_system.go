package systems

import (
	"fmt"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
)

// DrawableConsumer receives the drawables to render this frame.
type DrawableConsumer func(d drawables.ComparableDrawable)

// ShapeConsumer receives the shapes to render this frame.
type ShapeConsumer func(s drawables.DrawableShape)

type FontsComponent struct {
	Fonts []*drawables.FontHandle
}

// FontsSystem hands every visible font of its entities to the consumer.
type FontsSystem struct {
	*ecs.BaseGameSystem
	consumer DrawableConsumer
}

func NewFontsSystem(consumer DrawableConsumer) (*FontsSystem, error) {
	if consumer == nil {
		err := fmt.Errorf("func NewFontsSystem - consumer cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	fs := &FontsSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(FONTS_SYSTEM, ecs.ComponentType[*FontsComponent]()),
		consumer:       consumer,
	}
	fs.Process = func(e *ecs.GameEntity, _ float64) error {
		c, _ := ecs.GetComponent[*FontsComponent](e)
		for _, f := range c.Fonts {
			if f != nil && !f.Hidden {
				fs.consumer(f)
			}
		}
		return nil
	}
	return fs, nil
}

type SpritesComponent struct {
	Sprites []*drawables.Sprite
	// Called before the sprites are handed out, usually to follow a body.
	UpdateFunc func(delta float64)
}

// SpritesSystem hands every visible sprite of its entities to the consumer.
type SpritesSystem struct {
	*ecs.BaseGameSystem
	consumer DrawableConsumer
}

func NewSpritesSystem(consumer DrawableConsumer) (*SpritesSystem, error) {
	if consumer == nil {
		err := fmt.Errorf("func NewSpritesSystem - consumer cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	ss := &SpritesSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(SPRITES_SYSTEM, ecs.ComponentType[*SpritesComponent]()),
		consumer:       consumer,
	}
	ss.Process = func(e *ecs.GameEntity, delta float64) error {
		c, _ := ecs.GetComponent[*SpritesComponent](e)
		if c.UpdateFunc != nil {
			c.UpdateFunc(delta)
		}
		for _, s := range c.Sprites {
			if s != nil && !s.Hidden && s.Region != nil {
				ss.consumer(s)
			}
		}
		return nil
	}
	return ss, nil
}

// ShapeSupplier returns the shape to draw this frame, nil for none.
type ShapeSupplier func() drawables.DrawableShape

type DrawableShapesComponent struct {
	// Always drawn.
	Shapes []ShapeSupplier
	// Drawn only while the system runs in debug mode.
	DebugShapes []ShapeSupplier
}

type DrawableShapesSystem struct {
	*ecs.BaseGameSystem
	consumer ShapeConsumer
	debug    bool
}

func NewDrawableShapesSystem(consumer ShapeConsumer, debug bool) (*DrawableShapesSystem, error) {
	if consumer == nil {
		err := fmt.Errorf("func NewDrawableShapesSystem - consumer cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	ds := &DrawableShapesSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(DRAWABLE_SHAPES_SYSTEM, ecs.ComponentType[*DrawableShapesComponent]()),
		consumer:       consumer,
		debug:          debug,
	}
	ds.Process = func(e *ecs.GameEntity, _ float64) error {
		c, _ := ecs.GetComponent[*DrawableShapesComponent](e)
		ds.supply(c.Shapes)
		if ds.debug {
			ds.supply(c.DebugShapes)
		}
		return nil
	}
	return ds, nil
}

func (ds *DrawableShapesSystem) Debug() bool          { return ds.debug }
func (ds *DrawableShapesSystem) SetDebug(debug bool) { ds.debug = debug }

func (ds *DrawableShapesSystem) supply(suppliers []ShapeSupplier) {
	for _, supplier := range suppliers {
		if supplier == nil {
			continue
		}
		if shape := supplier(); shape != nil {
			ds.consumer(shape)
		}
	}
}
