package drawables

import (
	"fmt"
	"image/color"

	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// DrawingSection is the rendering phase a drawable belongs to. Sections are
// drawn in ascending order.
type DrawingSection uint8

const (
	BACKGROUND DrawingSection = iota
	PLAYGROUND
	FOREGROUND
)

// AllDrawingSections returns every section in drawing order.
func AllDrawingSections() []DrawingSection {
	return []DrawingSection{BACKGROUND, PLAYGROUND, FOREGROUND}
}

func (s DrawingSection) String() string {
	switch s {
	case BACKGROUND:
		return "BACKGROUND"
	case PLAYGROUND:
		return "PLAYGROUND"
	case FOREGROUND:
		return "FOREGROUND"
	default:
		return fmt.Sprintf("DrawingSection(%d)", uint8(s))
	}
}

// DrawingPriority orders drawables first by section, then by value ascending.
type DrawingPriority struct {
	Section DrawingSection
	Value   int
}

func (p DrawingPriority) Less(other DrawingPriority) bool {
	if p.Section != other.Section {
		return p.Section < other.Section
	}
	return p.Value < other.Value
}

// Batch collects textured quads and text for a single viewport.
type Batch interface {
	Begin(viewport *Viewport)
	DrawRegion(region *TextureRegion, bounds math.Rect, flipX bool)
	DrawText(face Typeface, text string, position math.Vec2, c color.Color)
	End() int
}

// ComparableDrawable is anything that can be drawn through a Batch and
// ordered by its priority.
type ComparableDrawable interface {
	Priority() DrawingPriority
	Draw(batch Batch)
}

// LessDrawable is the ordering used by the per-section drawable queues.
func LessDrawable(a, b ComparableDrawable) bool {
	return a.Priority().Less(b.Priority())
}
