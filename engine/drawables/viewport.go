package drawables

import (
	"image"

	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// Viewport maps a world area centered on its camera to a screen area in pixels.
// World Y grows upwards, screen Y grows downwards.
type Viewport struct {
	Name        string
	WorldWidth  float32
	WorldHeight float32
	Camera      math.Vec2

	screen image.Rectangle
}

func NewViewport(name string, worldWidth, worldHeight float32) *Viewport {
	return &Viewport{
		Name:        name,
		WorldWidth:  worldWidth,
		WorldHeight: worldHeight,
		Camera:      math.NewVec2(worldWidth/2, worldHeight/2),
		screen:      image.Rect(0, 0, int(worldWidth), int(worldHeight)),
	}
}

// Update fits the world area into a screen of the given size, keeping the
// aspect ratio and centering the result (letterboxing).
func (v *Viewport) Update(screenWidth, screenHeight int) {
	if screenWidth <= 0 || screenHeight <= 0 || v.WorldWidth <= 0 || v.WorldHeight <= 0 {
		return
	}
	scale := float32(screenWidth) / v.WorldWidth
	if s := float32(screenHeight) / v.WorldHeight; s < scale {
		scale = s
	}
	w := int(v.WorldWidth * scale)
	h := int(v.WorldHeight * scale)
	x := (screenWidth - w) / 2
	y := (screenHeight - h) / 2
	v.screen = image.Rect(x, y, x+w, y+h)
}

// Screen returns the pixel area covered by the viewport.
func (v *Viewport) Screen() image.Rectangle {
	return v.screen
}

// WorldBounds returns the world area currently visible through the camera.
func (v *Viewport) WorldBounds() math.Rect {
	return math.NewRect(v.Camera.X-v.WorldWidth/2, v.Camera.Y-v.WorldHeight/2, v.WorldWidth, v.WorldHeight)
}

func (v *Viewport) scale() (float32, float32) {
	return float32(v.screen.Dx()) / v.WorldWidth, float32(v.screen.Dy()) / v.WorldHeight
}

// Project converts a world point into a pixel position.
func (v *Viewport) Project(p math.Vec2) image.Point {
	sx, sy := v.scale()
	origin := v.WorldBounds()
	x := v.screen.Min.X + int((p.X-origin.X)*sx)
	y := v.screen.Max.Y - int((p.Y-origin.Y)*sy)
	return image.Pt(x, y)
}

// ProjectRect converts a world rectangle into pixel bounds.
func (v *Viewport) ProjectRect(r math.Rect) image.Rectangle {
	bottomLeft := v.Project(math.NewVec2(r.X, r.Y))
	topRight := v.Project(math.NewVec2(r.X+r.Width, r.Y+r.Height))
	return image.Rect(bottomLeft.X, topRight.Y, topRight.X, bottomLeft.Y)
}
