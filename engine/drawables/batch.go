package drawables

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// ImageBatch is a software Batch drawing into an RGBA frame.
type ImageBatch struct {
	mu       sync.Mutex
	target   *image.RGBA
	viewport *Viewport
	drawing  bool
	calls    int
	flipped  map[*TextureRegion]*image.RGBA
}

func NewImageBatch(width, height int) *ImageBatch {
	return &ImageBatch{
		target:  image.NewRGBA(image.Rect(0, 0, width, height)),
		flipped: make(map[*TextureRegion]*image.RGBA),
	}
}

// Resize replaces the frame with an empty one of the given size.
func (b *ImageBatch) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.target = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Image returns the frame drawn so far.
func (b *ImageBatch) Image() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target
}

func (b *ImageBatch) Clear(c color.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	draw.Draw(b.target, b.target.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (b *ImageBatch) Begin(viewport *Viewport) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewport = viewport
	b.drawing = true
	b.calls = 0
}

// End closes the batch and returns the number of draw calls made since Begin.
func (b *ImageBatch) End() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drawing = false
	return b.calls
}

func (b *ImageBatch) DrawRegion(region *TextureRegion, bounds math.Rect, flipX bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.drawing || b.viewport == nil || region == nil || region.Page == nil {
		return
	}

	var src image.Image = region.Page
	srcRect := region.Bounds
	if flipX {
		src = b.flip(region)
		srcRect = src.Bounds()
	}
	dst := b.viewport.ProjectRect(bounds)
	draw.NearestNeighbor.Scale(b.target, dst, src, srcRect, draw.Over, nil)
	b.calls++
}

func (b *ImageBatch) DrawText(face Typeface, text string, position math.Vec2, c color.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.drawing || b.viewport == nil || face == nil {
		return
	}
	face.DrawText(b.target, b.viewport.Project(position), text, c)
	b.calls++
}

func (b *ImageBatch) flip(region *TextureRegion) *image.RGBA {
	if img, ok := b.flipped[region]; ok {
		return img
	}
	w, h := region.Width(), region.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(w-1-x, y, region.Page.At(region.Bounds.Min.X+x, region.Bounds.Min.Y+y))
		}
	}
	b.flipped[region] = img
	return img
}

// ImageShapeRenderer draws debug shapes into the frame of an ImageBatch.
type ImageShapeRenderer struct {
	batch     *ImageBatch
	viewport  *Viewport
	shapeType ShapeType
}

func NewImageShapeRenderer(batch *ImageBatch) *ImageShapeRenderer {
	return &ImageShapeRenderer{batch: batch}
}

func (r *ImageShapeRenderer) Begin(viewport *Viewport, shapeType ShapeType) {
	r.viewport = viewport
	r.shapeType = shapeType
}

func (r *ImageShapeRenderer) SetShapeType(shapeType ShapeType) {
	r.shapeType = shapeType
}

func (r *ImageShapeRenderer) End() {
	r.viewport = nil
}

func (r *ImageShapeRenderer) Point(p math.Vec2, c color.Color) {
	if r.viewport == nil {
		return
	}
	px := r.viewport.Project(p)
	r.batch.Image().Set(px.X, px.Y, c)
}

func (r *ImageShapeRenderer) Line(a, b math.Vec2, c color.Color) {
	if r.viewport == nil {
		return
	}
	r.line(r.viewport.Project(a), r.viewport.Project(b), c)
}

func (r *ImageShapeRenderer) Rect(rect math.Rect, c color.Color) {
	if r.viewport == nil {
		return
	}
	if r.shapeType == FILLED {
		dst := r.viewport.ProjectRect(rect)
		draw.Draw(r.batch.Image(), dst, image.NewUniform(c), image.Point{}, draw.Over)
		return
	}
	ext := rect.Extents()
	topLeft := math.NewVec2(ext.Min.X, ext.Max.Y)
	bottomRight := math.NewVec2(ext.Max.X, ext.Min.Y)
	r.Line(ext.Min, topLeft, c)
	r.Line(topLeft, ext.Max, c)
	r.Line(ext.Max, bottomRight, c)
	r.Line(bottomRight, ext.Min, c)
}

// line rasterizes a one pixel wide segment (Bresenham).
func (r *ImageShapeRenderer) line(from, to image.Point, c color.Color) {
	dst := r.batch.Image()
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}
	err := dx + dy
	x, y := from.X, from.Y
	for {
		dst.Set(x, y, c)
		if x == to.X && y == to.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
