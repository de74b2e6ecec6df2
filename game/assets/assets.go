package assets

import (
	"fmt"

	engineassets "github.com/spaghettifunk/rocketpartners/engine/assets"
	"github.com/spaghettifunk/rocketpartners/engine/resources"
)

const (
	MUSIC_ASSET_PREFIX   = "music/"
	SOUND_ASSET_PREFIX   = "sounds/"
	TEXTURE_ASSET_PREFIX = "sprites/sprite_sheets/"
)

type MusicAsset int

const (
	MMX2_X_HUNTER_MUSIC MusicAsset = iota
)

var musicTable = []struct {
	name string
	src  string
}{
	MMX2_X_HUNTER_MUSIC: {"MMX2_X_HUNTER_MUSIC", "mmx2_x_hunter.wav"},
}

func (a MusicAsset) Source() string {
	return engineassets.SourcePath(MUSIC_ASSET_PREFIX, musicTable[a].src)
}
func (a MusicAsset) Type() resources.ResourceType { return resources.ResourceTypeMusic }
func (a MusicAsset) String() string               { return musicTable[a].name }

func MusicAssets() []MusicAsset {
	out := make([]MusicAsset, len(musicTable))
	for i := range musicTable {
		out[i] = MusicAsset(i)
	}
	return out
}

// MusicValuesAsAssets returns one asset per music constant.
func MusicValuesAsAssets() []engineassets.Asset {
	out := make([]engineassets.Asset, 0, len(musicTable))
	for _, a := range MusicAssets() {
		out = append(out, a)
	}
	return out
}

type SoundAsset int

const (
	JETPACK_SOUND SoundAsset = iota
	JETDASH_SOUND
	PLAYER_DAMAGE_SOUND
	PAUSE_SOUND
)

var soundTable = []struct {
	name    string
	src     string
	seconds float64
}{
	JETPACK_SOUND:       {"JETPACK_SOUND", "jetpack.wav", 1},
	JETDASH_SOUND:       {"JETDASH_SOUND", "jetdash.wav", 1},
	PLAYER_DAMAGE_SOUND: {"PLAYER_DAMAGE_SOUND", "player_damage.wav", 1},
	PAUSE_SOUND:         {"PAUSE_SOUND", "pause.wav", 1},
}

func (a SoundAsset) Source() string {
	return engineassets.SourcePath(SOUND_ASSET_PREFIX, soundTable[a].src)
}
func (a SoundAsset) Type() resources.ResourceType { return resources.ResourceTypeSound }
func (a SoundAsset) String() string               { return soundTable[a].name }

// Seconds is how long a single play of the sound lasts.
func (a SoundAsset) Seconds() float64 { return soundTable[a].seconds }

func SoundAssets() []SoundAsset {
	out := make([]SoundAsset, len(soundTable))
	for i := range soundTable {
		out[i] = SoundAsset(i)
	}
	return out
}

// SoundValuesAsAssets returns one asset per sound constant.
func SoundValuesAsAssets() []engineassets.Asset {
	out := make([]engineassets.Asset, 0, len(soundTable))
	for _, a := range SoundAssets() {
		out = append(out, a)
	}
	return out
}

type TextureAsset int

const (
	PLAYER_8BIT_SPRITE_SHEET TextureAsset = iota
)

var textureTable = []struct {
	name string
	src  string
}{
	PLAYER_8BIT_SPRITE_SHEET: {"PLAYER_8BIT_SPRITE_SHEET", "player-8bit.txt"},
}

func (a TextureAsset) Source() string { return TextureSource(textureTable[a].src) }
func (a TextureAsset) Type() resources.ResourceType {
	return resources.ResourceTypeTextureAtlas
}
func (a TextureAsset) String() string { return textureTable[a].name }

// TextureSource returns the source of a sprite sheet file name.
func TextureSource(src string) string {
	return engineassets.SourcePath(TEXTURE_ASSET_PREFIX, src)
}

func TextureAssets() []TextureAsset {
	out := make([]TextureAsset, len(textureTable))
	for i := range textureTable {
		out[i] = TextureAsset(i)
	}
	return out
}

// TextureValuesAsAssets returns one asset per texture constant.
func TextureValuesAsAssets() []engineassets.Asset {
	out := make([]engineassets.Asset, 0, len(textureTable))
	for _, a := range TextureAssets() {
		out = append(out, a)
	}
	return out
}

// AllAssets returns every declared asset, music first, then sounds and textures.
func AllAssets() []engineassets.Asset {
	all := MusicValuesAsAssets()
	all = append(all, SoundValuesAsAssets()...)
	return append(all, TextureValuesAsAssets()...)
}

// Describe is used in logs.
func Describe(a engineassets.Asset) string {
	return fmt.Sprintf("%v (%s, %s)", a, a.Type(), a.Source())
}
