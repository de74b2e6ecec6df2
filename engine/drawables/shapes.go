package drawables

import (
	"image/color"

	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// ShapeType is the shape renderer mode. The queue of shapes is ordered by
// this value so that every mode is switched at most once per frame.
type ShapeType uint8

const (
	POINT ShapeType = iota
	LINE
	FILLED
)

type ShapeRenderer interface {
	Begin(viewport *Viewport, shapeType ShapeType)
	SetShapeType(shapeType ShapeType)
	Point(p math.Vec2, c color.Color)
	Line(a, b math.Vec2, c color.Color)
	Rect(r math.Rect, c color.Color)
	End()
}

type DrawableShape interface {
	ShapeType() ShapeType
	Draw(renderer ShapeRenderer)
}

// LessShape is the ordering used by the shape queue.
func LessShape(a, b DrawableShape) bool {
	return a.ShapeType() < b.ShapeType()
}

// RectShape draws the outline (or the filled area) of a rectangle.
type RectShape struct {
	Bounds math.Rect
	Color  color.Color
	Type   ShapeType
}

func NewRectShape(bounds math.Rect, c color.Color, shapeType ShapeType) *RectShape {
	return &RectShape{Bounds: bounds, Color: c, Type: shapeType}
}

func (s *RectShape) ShapeType() ShapeType { return s.Type }

func (s *RectShape) Draw(renderer ShapeRenderer) {
	renderer.SetShapeType(s.Type)
	if s.Type == POINT {
		renderer.Point(s.Bounds.Center(), s.Color)
		return
	}
	renderer.Rect(s.Bounds, s.Color)
}

// LineShape draws a segment between two world points.
type LineShape struct {
	From, To math.Vec2
	Color    color.Color
}

func (s *LineShape) ShapeType() ShapeType { return LINE }

func (s *LineShape) Draw(renderer ShapeRenderer) {
	renderer.SetShapeType(LINE)
	renderer.Line(s.From, s.To, s.Color)
}
