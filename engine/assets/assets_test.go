package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/resources"
)

type testAsset struct {
	src string
	typ resources.ResourceType
}

func (a testAsset) Source() string               { return a.src }
func (a testAsset) Type() resources.ResourceType { return a.typ }

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, c)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func newTestManager(t *testing.T, root string) *AssetManager {
	t.Helper()
	am, err := NewAssetManager(&AssetManagerConfig{RootDir: root, Workers: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = am.Shutdown() })
	return am
}

func TestSourcePath(t *testing.T) {
	assert.Equal(t, "sprites/sprite_sheets/foo.atlas", SourcePath("sprites/sprite_sheets/", "foo.atlas"))
}

func TestNewAssetManagerRequiresRoot(t *testing.T) {
	_, err := NewAssetManager(&AssetManagerConfig{})
	assert.Error(t, err)
}

func TestFinishLoading(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "sprites", "a.png"), color.White)
	writePNG(t, filepath.Join(root, "sprites", "b.png"), color.Black)
	am := newTestManager(t, root)

	a := testAsset{src: "sprites/a.png", typ: resources.ResourceTypeImage}
	b := testAsset{src: "sprites/b.png", typ: resources.ResourceTypeImage}
	am.LoadAll([]Asset{a, b, a})
	assert.Equal(t, float32(0), am.Progress())

	require.NoError(t, am.FinishLoading())
	assert.Equal(t, float32(1), am.Progress())
	assert.True(t, am.IsLoaded("sprites/a.png"))

	res, err := am.Get("sprites/b.png")
	require.NoError(t, err)
	assert.Equal(t, resources.ResourceTypeImage, res.Type)
	assert.Equal(t, "sprites/b.png", res.Name)

	img, err := GetAs[image.Image](am, "sprites/a.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	_, err = GetAs[string](am, "sprites/a.png")
	assert.ErrorIs(t, err, core.ErrUnexpectedData)

	require.NoError(t, am.Unload("sprites/a.png"))
	_, err = am.Get("sprites/a.png")
	assert.ErrorIs(t, err, core.ErrAssetNotLoaded)
}

func TestFinishLoadingReportsEveryFailure(t *testing.T) {
	root := t.TempDir()
	am := newTestManager(t, root)

	am.Load(testAsset{src: "missing.png", typ: resources.ResourceTypeImage})
	am.Load(testAsset{src: "data.bin", typ: resources.ResourceTypeNone})

	err := am.FinishLoading()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
	assert.ErrorIs(t, err, core.ErrNoLoader)
	assert.False(t, am.IsLoaded("missing.png"))
}

func TestWatchReloadsChangedAsset(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "sprites", "a.png")
	writePNG(t, path, color.White)
	am := newTestManager(t, root)

	am.Load(testAsset{src: "sprites/a.png", typ: resources.ResourceTypeImage})
	require.NoError(t, am.FinishLoading())
	first, err := am.Get("sprites/a.png")
	require.NoError(t, err)

	reloaded := make(chan *resources.Resource, 4)
	am.SetReloadHandler(func(res *resources.Resource) { reloaded <- res })
	require.NoError(t, am.Watch())

	writePNG(t, path, color.Black)

	select {
	case res := <-reloaded:
		assert.Equal(t, "sprites/a.png", res.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("asset was not reloaded")
	}
	assert.Eventually(t, func() bool {
		res, err := am.Get("sprites/a.png")
		return err == nil && res != first
	}, 5*time.Second, 10*time.Millisecond)
}
