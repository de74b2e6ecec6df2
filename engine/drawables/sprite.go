package drawables

import (
	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// Sprite draws a texture region stretched over world bounds.
type Sprite struct {
	Region  *TextureRegion
	Bounds  math.Rect
	FlipX   bool
	Hidden  bool
	Section DrawingSection
	Value   int
}

func NewSprite(section DrawingSection, value int) *Sprite {
	return &Sprite{Section: section, Value: value}
}

func (s *Sprite) Priority() DrawingPriority {
	return DrawingPriority{Section: s.Section, Value: s.Value}
}

// SetCenter moves the sprite so its bounds are centered on p.
func (s *Sprite) SetCenter(p math.Vec2) {
	s.Bounds.X = p.X - s.Bounds.Width/2
	s.Bounds.Y = p.Y - s.Bounds.Height/2
}

func (s *Sprite) Draw(batch Batch) {
	if s.Hidden || s.Region == nil {
		return
	}
	batch.DrawRegion(s.Region, s.Bounds, s.FlipX)
}
