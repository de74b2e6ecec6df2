package drawables

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fzipp/bmfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// Typeface renders a single line of text with its top-left corner at pos.
type Typeface interface {
	DrawText(dst draw.Image, pos image.Point, text string, c color.Color)
	LineHeight() int
}

type bitmapTypeface struct {
	font *bmfont.BitmapFont
}

// NewBitmapTypeface wraps an AngelCode bitmap font. The glyph colors come
// from the font pages, c is ignored.
func NewBitmapTypeface(f *bmfont.BitmapFont) Typeface {
	return &bitmapTypeface{font: f}
}

func (t *bitmapTypeface) DrawText(dst draw.Image, pos image.Point, text string, c color.Color) {
	t.font.DrawText(dst, pos, text)
}

func (t *bitmapTypeface) LineHeight() int {
	return int(t.font.Descriptor.Common.LineHeight)
}

type faceTypeface struct {
	face font.Face
}

// NewFaceTypeface wraps any x/image font face.
func NewFaceTypeface(face font.Face) Typeface {
	return &faceTypeface{face: face}
}

// DefaultTypeface is the 7x13 fixed font shipped with x/image.
func DefaultTypeface() Typeface {
	return NewFaceTypeface(basicfont.Face7x13)
}

func (t *faceTypeface) DrawText(dst draw.Image, pos image.Point, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: t.face,
		Dot:  fixed.P(pos.X, pos.Y).Add(fixed.Point26_6{Y: t.face.Metrics().Ascent}),
	}
	d.DrawString(text)
}

func (t *faceTypeface) LineHeight() int {
	return t.face.Metrics().Height.Ceil()
}

// FontHandle is a line of text placed in the world.
type FontHandle struct {
	Face     Typeface
	Text     string
	Position math.Vec2
	Color    color.Color
	Hidden   bool
	Section  DrawingSection
	Value    int
}

func NewFontHandle(face Typeface, text string, position math.Vec2) *FontHandle {
	return &FontHandle{
		Face:     face,
		Text:     text,
		Position: position,
		Color:    color.White,
		Section:  FOREGROUND,
	}
}

func (f *FontHandle) Priority() DrawingPriority {
	return DrawingPriority{Section: f.Section, Value: f.Value}
}

func (f *FontHandle) Draw(batch Batch) {
	if f.Hidden || f.Face == nil || f.Text == "" {
		return
	}
	batch.DrawText(f.Face, f.Text, f.Position, f.Color)
}
