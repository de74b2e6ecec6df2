package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/rocketpartners/engine/resources"
)

func TestCatalogsAreComplete(t *testing.T) {
	assert.Len(t, MusicValuesAsAssets(), len(musicTable))
	assert.Len(t, SoundValuesAsAssets(), len(soundTable))
	assert.Len(t, TextureValuesAsAssets(), len(textureTable))
	assert.Len(t, AllAssets(), len(musicTable)+len(soundTable)+len(textureTable))

	seen := map[string]bool{}
	for _, a := range AllAssets() {
		assert.False(t, seen[a.Source()], "duplicate source %s", a.Source())
		seen[a.Source()] = true
	}
}

func TestSourcesUseCatalogPrefix(t *testing.T) {
	for _, a := range MusicAssets() {
		assert.True(t, strings.HasPrefix(a.Source(), MUSIC_ASSET_PREFIX), a.String())
		assert.Equal(t, resources.ResourceTypeMusic, a.Type())
	}
	for _, a := range SoundAssets() {
		assert.Equal(t, SOUND_ASSET_PREFIX+soundTable[a].src, a.Source())
		assert.Equal(t, resources.ResourceTypeSound, a.Type())
		assert.Positive(t, a.Seconds())
	}
	for _, a := range TextureAssets() {
		assert.True(t, strings.HasPrefix(a.Source(), TEXTURE_ASSET_PREFIX), a.String())
		assert.Equal(t, resources.ResourceTypeTextureAtlas, a.Type())
	}
}

func TestTextureSource(t *testing.T) {
	assert.Equal(t, "sprites/sprite_sheets/foo.atlas", TextureSource("foo.atlas"))
	assert.Equal(t, "sprites/sprite_sheets/player-8bit.txt", PLAYER_8BIT_SPRITE_SHEET.Source())
	assert.Equal(t, "music/mmx2_x_hunter.wav", MMX2_X_HUNTER_MUSIC.Source())
}
