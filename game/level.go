package game

import (
	engineassets "github.com/spaghettifunk/rocketpartners/engine/assets"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/math"
	"github.com/spaghettifunk/rocketpartners/game/assets"
	"github.com/spaghettifunk/rocketpartners/game/entities"
	"github.com/spaghettifunk/rocketpartners/game/events"
)

// levelListener drives the level: player spawns, game over, pause requests
// and asset reloads. It listens apart from the game so that the game key mask
// only holds the controller codes.
type levelListener struct {
	g *RocketPartnersGame
}

func (l *levelListener) EventKeyMask() core.EventKeyMask {
	return core.NewEventKeyMask(
		events.GAME_PAUSE,
		events.GAME_RESUME,
		events.PLAYER_SPAWN,
		events.GAME_OVER,
		events.ASSET_RELOADED,
	)
}

func (l *levelListener) OnEvent(event core.Event) {
	switch event.Code {
	case events.GAME_PAUSE:
		l.g.Pause()
	case events.GAME_RESUME:
		l.g.Resume()
	case events.PLAYER_SPAWN:
		l.g.spawnPlayer()
	case events.GAME_OVER:
		// restart the level
		l.g.audio.StopMusic()
		_ = l.g.events.Submit(core.NewEvent(events.PLAYER_SPAWN, nil))
	case events.ASSET_RELOADED:
		source, _ := event.Properties[events.PROP_SOURCE].(string)
		l.g.reloadAsset(source)
	}
}

// PlayerSpawnPosition is the bottom center of the player when it (re)spawns.
func PlayerSpawnPosition() math.Vec2 {
	return math.NewVec2(VIEW_WIDTH*PPM/2, 2*PPM)
}

func (g *RocketPartnersGame) spawnPlayer() {
	if g.player == nil {
		return
	}
	if g.paused {
		for name := range g.pausedStates {
			g.pausedStates[name] = true
		}
	} else {
		for _, s := range g.systemsMap {
			s.SetOn(true)
		}
	}
	if !g.engine.Spawn(g.player.GameEntity, core.Properties{entities.PROP_SPAWN_POSITION: PlayerSpawnPosition()}) {
		core.LogDebug("player %s already spawned", g.player.ID())
	}
	if !g.audio.IsMusicPlaying() {
		g.playLevelMusic()
	}
}

func (g *RocketPartnersGame) playLevelMusic() {
	if err := g.audio.PlayMusic(assets.MMX2_X_HUNTER_MUSIC, true); err != nil {
		core.LogWarn("cannot play the level music: %s", err)
	}
}

// reloadAsset hands a reloaded asset to whoever holds on to its data. Audio
// clips are looked up on every play and need nothing.
func (g *RocketPartnersGame) reloadAsset(source string) {
	if g.player == nil || source != assets.PLAYER_8BIT_SPRITE_SHEET.Source() {
		return
	}
	atlas, err := engineassets.GetAs[*drawables.TextureAtlas](g.assets, source)
	if err != nil {
		core.LogWarn("cannot reload %s: %s", source, err)
		return
	}
	g.player.SetAtlas(atlas)
	core.LogInfo("player sprite sheet reloaded")
}
