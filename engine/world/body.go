package world

import (
	"github.com/spaghettifunk/rocketpartners/engine/math"
)

type BodyType uint8

const (
	// Never collides with other bodies, only its fixtures take part in contacts.
	ABSTRACT BodyType = iota
	// Never moves, pushes dynamic bodies out.
	STATIC
	// Moved by its velocity and gravity.
	DYNAMIC
)

// Body is an axis aligned box simulated by the world system.
type Body struct {
	Type       BodyType
	Bounds     math.Rect
	Velocity   math.Vec2
	Gravity    math.Vec2
	GravityOn  bool
	Fixtures   []*Fixture
	Properties map[string]interface{}
	// Called before and after every fixed step.
	PreProcess  func(step float32)
	PostProcess func(step float32)

	prior math.Vec2
}

func NewBody(bodyType BodyType, bounds math.Rect) *Body {
	return &Body{
		Type:       bodyType,
		Bounds:     bounds,
		Properties: make(map[string]interface{}),
	}
}

// AddFixture attaches the fixture to the body and returns it.
func (b *Body) AddFixture(f *Fixture) *Fixture {
	f.Body = b
	b.Fixtures = append(b.Fixtures, f)
	return f
}

func (b *Body) Position() math.Vec2 {
	return math.NewVec2(b.Bounds.X, b.Bounds.Y)
}

func (b *Body) SetPosition(p math.Vec2) {
	b.Bounds.X = p.X
	b.Bounds.Y = p.Y
}

func (b *Body) Translate(offset math.Vec2) {
	b.Bounds = b.Bounds.Translate(offset)
}

// PositionDelta is how far the body moved during the last step.
func (b *Body) PositionDelta() math.Vec2 {
	return b.Position().Sub(b.prior)
}

// Step stores the current position as the prior one and integrates velocity
// and gravity over dt seconds.
func (b *Body) Step(dt float32) {
	b.prior = b.Position()
	if b.Type != DYNAMIC {
		return
	}
	if b.GravityOn {
		b.Velocity = b.Velocity.Add(b.Gravity.MulScalar(dt))
	}
	b.Translate(b.Velocity.MulScalar(dt))
}

// Fixture is a typed sensor box attached to a body. Its type is a game
// defined category compared with ==.
type Fixture struct {
	Type       interface{}
	Offset     math.Vec2
	Width      float32
	Height     float32
	Active     bool
	Body       *Body
	Properties map[string]interface{}
}

func NewFixture(fixtureType interface{}, width, height float32) *Fixture {
	return &Fixture{
		Type:       fixtureType,
		Width:      width,
		Height:     height,
		Active:     true,
		Properties: make(map[string]interface{}),
	}
}

// Bounds returns the fixture box centered on the body center plus its offset.
func (f *Fixture) Bounds() math.Rect {
	center := math.NewVec2Zero()
	if f.Body != nil {
		center = f.Body.Bounds.Center()
	}
	center = center.Add(f.Offset)
	return math.NewRect(center.X-f.Width/2, center.Y-f.Height/2, f.Width, f.Height)
}
