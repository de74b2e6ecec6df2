package game

import (
	"fmt"
	"time"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
	"github.com/spaghettifunk/rocketpartners/engine/graph"
	"github.com/spaghettifunk/rocketpartners/engine/systems"
	engineworld "github.com/spaghettifunk/rocketpartners/engine/world"
	"github.com/spaghettifunk/rocketpartners/game/assets"
	"github.com/spaghettifunk/rocketpartners/game/world"
)

const (
	VIEW_WIDTH  = 16
	VIEW_HEIGHT = 12
	PPM         = world.PPM

	WORLD_TIME_STEP    = 1.0 / 150.0
	PATHFINDER_TIMEOUT = 10 * time.Millisecond
)

// createEngine builds the systems in their update order. Late bound state is
// handed over as closures over the game, never as the containers themselves.
func createEngine(g *RocketPartnersGame) (*ecs.GameEngine, *systems.SystemManager, error) {
	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		Poller: g.poller,
		World: &systems.WorldSystemConfig{
			ContactListener:  world.NewContactListener(),
			GraphMap:         g.GraphMap,
			FixedStep:        WORLD_TIME_STEP,
			CollisionHandler: world.NewCollisionHandler(nil),
			FilterMap:        world.FilterMap(),
			Debug:            g.config.DebugShapes,
		},
		Pathfinding: &systems.PathfindingSystemConfig{
			Factory: func(c *systems.PathfindingComponent) *graph.Pathfinder {
				gm := g.GraphMap()
				if gm == nil {
					return nil
				}
				passable, _ := c.Params.(graph.PassableFunc)
				if passable == nil {
					passable = withoutBlocks
				}
				return graph.NewPathfinder(gm, passable)
			},
			Timeout: PATHFINDER_TIMEOUT,
		},
		Drawables: func(d drawables.ComparableDrawable) {
			g.drawables[d.Priority().Section].Add(d)
		},
		Shapes: func(s drawables.DrawableShape) {
			g.shapes.Add(s)
		},
		DebugShapes: g.config.DebugShapes,
		Audio: &systems.AudioSystemConfig{
			PlaySound: func(req systems.SoundRequest) {
				if sound, ok := req.Source.(assets.SoundAsset); ok {
					g.audio.PlaySound(sound, req.Loop)
				}
			},
			PlayMusic: func(req systems.MusicRequest) {
				music, ok := req.Source.(assets.MusicAsset)
				if !ok {
					g.audio.ResumeMusic()
					return
				}
				if err := g.audio.PlayMusic(music, req.Loop); err != nil {
					core.LogWarn("%s", err)
				}
			},
			StopSound: func(source interface{}) {
				if sound, ok := source.(assets.SoundAsset); ok {
					g.audio.StopSound(sound)
					return
				}
				g.audio.StopAllSound()
			},
			StopMusic:         g.audio.StopMusic,
			StopSoundsWhenOff: true,
			StopMusicWhenOff:  true,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create engine: %w", err)
	}
	return ecs.NewGameEngine(sm.Systems()...), sm, nil
}

// withoutBlocks lets paths cross every node not covered by a static body.
func withoutBlocks(node *graph.GraphNode) bool {
	for _, o := range node.Objects {
		if body, ok := o.(*engineworld.Body); ok && body.Type == engineworld.STATIC {
			return false
		}
	}
	return true
}
