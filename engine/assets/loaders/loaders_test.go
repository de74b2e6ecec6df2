package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/resources"
)

const testAtlas = `
player-8bit.png
size: 4,2
format: RGBA8888
filter: Nearest,Nearest
repeat: none
Run
  rotate: false
  xy: 2, 0
  size: 2, 2
  orig: 2, 2
  offset: 0, 0
  index: 2
Run
  rotate: false
  xy: 0, 0
  size: 2, 2
  orig: 2, 2
  offset: 0, 0
  index: 1
Stand
  rotate: false
  xy: 0, 0
  size: 1, 1
  index: -1
`

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestParseAtlas(t *testing.T) {
	pages, regions, err := ParseAtlas(strings.NewReader(testAtlas))
	require.NoError(t, err)

	assert.Equal(t, []string{"player-8bit.png"}, pages)
	require.Len(t, regions, 3)
	assert.Equal(t, AtlasRegion{Page: "player-8bit.png", Name: "Run", Index: 2, Bounds: image.Rect(2, 0, 4, 2)}, regions[0])
	assert.Equal(t, image.Rect(0, 0, 1, 1), regions[2].Bounds)
}

func TestParseAtlasRejectsBadPair(t *testing.T) {
	bad := "p.png\nRegion\n  xy: 1\n"
	_, _, err := ParseAtlas(strings.NewReader(bad))
	assert.ErrorIs(t, err, core.ErrUnexpectedData)
}

func TestTextureAtlasLoader(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "player-8bit.png"), 4, 2)
	atlasPath := filepath.Join(dir, "player-8bit.txt")
	require.NoError(t, os.WriteFile(atlasPath, []byte(testAtlas), 0o644))

	res, err := (&TextureAtlasLoader{}).Load(atlasPath, resources.ResourceTypeTextureAtlas, nil)
	require.NoError(t, err)

	atlas, ok := res.Data.(*drawables.TextureAtlas)
	require.True(t, ok)
	frames := atlas.FindRegions("Run")
	require.Len(t, frames, 2)
	assert.Equal(t, 1, frames[0].Index)
	assert.NotNil(t, frames[0].Page)
	assert.NotNil(t, atlas.FindRegion("Stand"))
}

func TestTextureAtlasLoaderMissingPage(t *testing.T) {
	dir := t.TempDir()
	atlasPath := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(atlasPath, []byte(testAtlas), 0o644))

	_, err := (&TextureAtlasLoader{}).Load(atlasPath, resources.ResourceTypeTextureAtlas, nil)
	assert.Error(t, err)
}

func TestAudioLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beep.wav")
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, beep.Take(8000, beep.Silence(-1)), format))
	require.NoError(t, f.Close())

	res, err := (&AudioLoader{}).Load(path, resources.ResourceTypeSound, nil)
	require.NoError(t, err)

	clip, ok := res.Data.(*AudioClip)
	require.True(t, ok)
	assert.Equal(t, 8000, clip.Buffer.Len())
	assert.Equal(t, beep.SampleRate(8000), clip.Format().SampleRate)
	assert.InDelta(t, 1.0, clip.Duration().Seconds(), 1e-3)

	require.NoError(t, (&AudioLoader{}).Unload(res))
	assert.Nil(t, res.Data)
}

func TestSystemFontLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Go-Regular.ttf"), goregular.TTF, 0o644))
	cfg := filepath.Join(dir, "go.fontcfg")
	require.NoError(t, os.WriteFile(cfg, []byte("# debug font\nfile=Go-Regular.ttf\nsize=12\n"), 0o644))

	res, err := (&SystemFontLoader{}).Load(cfg, resources.ResourceTypeSystemFont, nil)
	require.NoError(t, err)

	face, ok := res.Data.(drawables.Typeface)
	require.True(t, ok)
	assert.Greater(t, face.LineHeight(), 0)
}

func TestBitmapFontLoaderRejectsUnknownExtension(t *testing.T) {
	_, err := (&BitmapFontLoader{}).Load("fonts/debug.ttf", resources.ResourceTypeBitmapFont, nil)
	assert.Error(t, err)
}
