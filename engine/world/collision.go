package world

import (
	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// StandardCollisionHandler pushes a dynamic body out of a static one along
// the axis of least overlap and stops its velocity on that axis.
type StandardCollisionHandler struct{}

func (StandardCollisionHandler) HandleCollision(a, b *Body) bool {
	var static, dynamic *Body
	switch {
	case a.Type == STATIC && b.Type == DYNAMIC:
		static, dynamic = a, b
	case a.Type == DYNAMIC && b.Type == STATIC:
		static, dynamic = b, a
	default:
		return false
	}
	if !static.Bounds.Overlaps(dynamic.Bounds) {
		return false
	}

	s := static.Bounds.Extents()
	d := dynamic.Bounds.Extents()
	pushLeft := d.Max.X - s.Min.X
	pushRight := s.Max.X - d.Min.X
	pushDown := d.Max.Y - s.Min.Y
	pushUp := s.Max.Y - d.Min.Y

	minX, dirX := pushLeft, float32(-1)
	if pushRight < pushLeft {
		minX, dirX = pushRight, 1
	}
	minY, dirY := pushDown, float32(-1)
	if pushUp < pushDown {
		minY, dirY = pushUp, 1
	}

	if minX < minY {
		dynamic.Translate(math.NewVec2(minX*dirX, 0))
		dynamic.Velocity.X = 0
	} else {
		dynamic.Translate(math.NewVec2(0, minY*dirY))
		dynamic.Velocity.Y = 0
	}
	return true
}
