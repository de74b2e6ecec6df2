package systems

import (
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// Points is a counter kept inside [Min, Max].
type Points struct {
	min     int
	max     int
	current int
	changed bool
}

func NewPoints(min, max, current int) *Points {
	p := &Points{min: min, max: max}
	p.current = math.Clamp(current, min, max)
	return p
}

func (p *Points) Min() int     { return p.min }
func (p *Points) Max() int     { return p.max }
func (p *Points) Current() int { return p.current }
func (p *Points) IsMin() bool  { return p.current == p.min }
func (p *Points) IsMax() bool  { return p.current == p.max }

func (p *Points) Set(value int) {
	value = math.Clamp(value, p.min, p.max)
	if value != p.current {
		p.current = value
		p.changed = true
	}
}

func (p *Points) Translate(delta int) {
	p.Set(p.current + delta)
}

func (p *Points) SetToMax() { p.Set(p.max) }

// PointsListener is told about points that changed since the last frame.
type PointsListener func(p *Points)

type PointsComponent struct {
	Points    map[interface{}]*Points
	Listeners map[interface{}]PointsListener
}

func NewPointsComponent() *PointsComponent {
	return &PointsComponent{
		Points:    make(map[interface{}]*Points),
		Listeners: make(map[interface{}]PointsListener),
	}
}

// PutPoints registers points under key with an optional listener.
func (c *PointsComponent) PutPoints(key interface{}, points *Points, listener PointsListener) {
	c.Points[key] = points
	if listener != nil {
		c.Listeners[key] = listener
	}
}

type PointsSystem struct {
	*ecs.BaseGameSystem
}

func NewPointsSystem() *PointsSystem {
	ps := &PointsSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(POINTS_SYSTEM, ecs.ComponentType[*PointsComponent]()),
	}
	ps.Process = func(e *ecs.GameEntity, _ float64) error {
		c, _ := ecs.GetComponent[*PointsComponent](e)
		for key, points := range c.Points {
			if !points.changed {
				continue
			}
			points.changed = false
			if listener, ok := c.Listeners[key]; ok {
				listener(points)
			}
		}
		return nil
	}
	return ps
}
