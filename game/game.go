package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/spaghettifunk/rocketpartners/engine"
	engineassets "github.com/spaghettifunk/rocketpartners/engine/assets"
	"github.com/spaghettifunk/rocketpartners/engine/assets/loaders"
	"github.com/spaghettifunk/rocketpartners/engine/containers"
	"github.com/spaghettifunk/rocketpartners/engine/controller"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
	"github.com/spaghettifunk/rocketpartners/engine/graph"
	"github.com/spaghettifunk/rocketpartners/engine/math"
	"github.com/spaghettifunk/rocketpartners/engine/resources"
	"github.com/spaghettifunk/rocketpartners/engine/systems"
	"github.com/spaghettifunk/rocketpartners/game/assets"
	"github.com/spaghettifunk/rocketpartners/game/audio"
	"github.com/spaghettifunk/rocketpartners/game/controllers"
	"github.com/spaghettifunk/rocketpartners/game/entities"
	"github.com/spaghettifunk/rocketpartners/game/events"
)

var ErrDisposed = errors.New("game already disposed")

const (
	BACKGROUND_VIEWPORT = "background"
	GAME_VIEWPORT       = "game"
	UI_VIEWPORT         = "ui"
)

// EventHandler reacts to the events that passed the game key mask.
type EventHandler func(g *RocketPartnersGame, event core.Event)

// DefaultEventHandler turns the controller poller on and off.
func DefaultEventHandler(g *RocketPartnersGame, event core.Event) {
	switch event.Code {
	case events.TURN_CONTROLLER_ON:
		g.poller.SetOn(true)
	case events.TURN_CONTROLLER_OFF:
		g.poller.SetOn(false)
	}
}

type Option func(g *RocketPartnersGame)

func WithEventHandler(handler EventHandler) Option {
	return func(g *RocketPartnersGame) {
		if handler != nil {
			g.eventHandler = handler
		}
	}
}

// WithAudioOutput replaces the output picked from the configuration.
func WithAudioOutput(output audio.Output) Option {
	return func(g *RocketPartnersGame) { g.audioOutput = output }
}

// RocketPartnersGame owns every game subsystem and the state they share.
type RocketPartnersGame struct {
	config       *engine.ApplicationConfig
	game         *engine.Game
	events       *core.EventSystem
	eventKeyMask core.EventKeyMask
	eventHandler EventHandler
	level        *levelListener

	buttons     controller.Buttons
	poller      *controller.ControllerPoller
	assets      *engineassets.AssetManager
	audio       *audio.AudioManager
	audioOutput audio.Output

	viewports     map[string]*drawables.Viewport
	drawables     map[drawables.DrawingSection]*containers.PriorityQueue[drawables.ComparableDrawable]
	shapes        *containers.PriorityQueue[drawables.DrawableShape]
	shapeRenderer *drawables.ImageShapeRenderer
	graphMap      *graph.GraphMap

	engine        *ecs.GameEngine
	systemManager *systems.SystemManager
	systemsMap    map[string]ecs.GameSystem

	player    *entities.Player
	debugText *drawables.FontHandle

	pausedStates map[string]bool
	paused       bool
	created      bool
	disposed     bool
}

func NewRocketPartnersGame(config *engine.ApplicationConfig, opts ...Option) *RocketPartnersGame {
	if config == nil {
		config = engine.DefaultApplicationConfig()
	}
	g := &RocketPartnersGame{
		config:       config,
		eventKeyMask: core.NewEventKeyMask(events.TURN_CONTROLLER_ON, events.TURN_CONTROLLER_OFF),
		eventHandler: DefaultEventHandler,
	}
	g.game = &engine.Game{
		ApplicationConfig: config,
		State:             g,
		FnInitialize:      g.Create,
		FnUpdate:          g.Update,
		FnRender:          g.Render,
		FnOnResize:        g.Resize,
		FnShutdown:        g.Dispose,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Game returns the callbacks the engine drives.
func (g *RocketPartnersGame) Game() *engine.Game { return g.game }

func (g *RocketPartnersGame) Create() error {
	if g.created {
		return nil
	}
	if g.disposed {
		return fmt.Errorf("create: %w", ErrDisposed)
	}
	g.events = g.game.Events
	if g.events == nil {
		es, err := core.NewEventSystem(nil)
		if err != nil {
			return err
		}
		g.events = es
		g.game.Events = es
	}

	buttons, err := controllers.LoadButtons(g.config.PreferencesFile)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	g.buttons = buttons
	var keys core.KeySource
	if g.game.Input != nil {
		keys = g.game.Input
	}
	g.poller = controller.NewControllerPoller(g.buttons, keys)

	g.assets, err = engineassets.NewAssetManager(&engineassets.AssetManagerConfig{RootDir: g.config.AssetsDir, Workers: 4})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	g.events.AddListener(g)
	g.level = &levelListener{g: g}
	g.events.AddListener(g.level)

	g.assets.LoadAll(assets.AllAssets())
	// TODO: load behind a progress screen instead of blocking here.
	if err := g.assets.FinishLoading(); err != nil {
		return fmt.Errorf("create: load assets: %w", err)
	}
	if g.config.WatchAssets {
		g.assets.SetReloadHandler(func(res *resources.Resource) {
			core.LogInfo("asset %s reloaded", res.Name)
			_ = g.events.Submit(core.NewEvent(events.ASSET_RELOADED, core.Properties{events.PROP_SOURCE: res.Name}))
		})
		if err := g.assets.Watch(); err != nil {
			return fmt.Errorf("create: %w", err)
		}
	}

	if g.audioOutput == nil {
		g.audioOutput, err = g.defaultAudioOutput()
		if err != nil {
			return fmt.Errorf("create: %w", err)
		}
	}
	g.audio, err = audio.NewAudioManager(&audio.AudioManagerConfig{
		Output: g.audioOutput,
		Clips: func(source string) (*loaders.AudioClip, error) {
			return engineassets.GetAs[*loaders.AudioClip](g.assets, source)
		},
	})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	width := float32(VIEW_WIDTH * PPM)
	height := float32(VIEW_HEIGHT * PPM)
	g.viewports = map[string]*drawables.Viewport{
		BACKGROUND_VIEWPORT: drawables.NewViewport(BACKGROUND_VIEWPORT, width, height),
		GAME_VIEWPORT:       drawables.NewViewport(GAME_VIEWPORT, width, height),
		UI_VIEWPORT:         drawables.NewViewport(UI_VIEWPORT, width, height),
	}

	g.drawables = make(map[drawables.DrawingSection]*containers.PriorityQueue[drawables.ComparableDrawable])
	for _, section := range drawables.AllDrawingSections() {
		g.drawables[section] = containers.NewPriorityQueue(drawables.LessDrawable)
	}
	g.shapes = containers.NewPriorityQueue(drawables.LessShape)

	g.graphMap, err = graph.NewGraphMap(math.NewVec2Zero(), VIEW_WIDTH, VIEW_HEIGHT, PPM)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	g.engine, g.systemManager, err = createEngine(g)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	g.systemsMap = make(map[string]ecs.GameSystem)
	for _, s := range g.engine.Systems() {
		g.systemsMap[s.Name()] = s
	}

	g.debugText = drawables.NewFontHandle(drawables.DefaultTypeface(), "", math.NewVec2(PPM/2, (VIEW_HEIGHT-0.5)*PPM))
	g.debugText.Hidden = !g.config.DebugText

	atlas, err := engineassets.GetAs[*drawables.TextureAtlas](g.assets, assets.PLAYER_8BIT_SPRITE_SHEET.Source())
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	g.player, err = entities.NewPlayer(&entities.PlayerConfig{
		Poller:    g.poller,
		Events:    g.events,
		Atlas:     atlas,
		DebugText: g.SetDebugText,
	})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	g.engine.Spawn(entities.NewBlock(math.NewRect(0, 0, VIEW_WIDTH*PPM, PPM)), nil)
	_ = g.events.Submit(core.NewEvent(events.PLAYER_SPAWN, core.Properties{"player": g.player}))
	g.playLevelMusic()

	g.created = true
	core.LogInfo("%s created with systems %v", g.config.Name, g.systemManager.Names())
	return nil
}

func (g *RocketPartnersGame) defaultAudioOutput() (audio.Output, error) {
	if g.config.Headless {
		return audio.NewSilentOutput(audio.DEFAULT_SAMPLE_RATE), nil
	}
	out, err := audio.NewSpeakerOutput(audio.DEFAULT_SAMPLE_RATE)
	if err != nil {
		core.LogWarn("no audio device, running silent: %s", err)
		return audio.NewSilentOutput(audio.DEFAULT_SAMPLE_RATE), nil
	}
	return out, nil
}

// EventKeyMask implements core.EventListener.
func (g *RocketPartnersGame) EventKeyMask() core.EventKeyMask {
	return g.eventKeyMask
}

// OnEvent hands the event to the event handler when its code is in the key
// mask and drops it otherwise.
func (g *RocketPartnersGame) OnEvent(event core.Event) {
	if !g.eventKeyMask.Contains(event.Code) {
		return
	}
	g.eventHandler(g, event)
}

func (g *RocketPartnersGame) Update(delta float64) error {
	if !g.created {
		return core.ErrNotInitialized
	}
	g.events.Dispatch()

	// the controller system is off while paused
	if g.paused {
		g.poller.Run()
	}
	if g.poller.IsJustPressed(controllers.START) {
		if g.paused {
			g.Resume()
		} else {
			g.Pause()
		}
	}

	g.audio.Update(delta)
	return nil
}

// Render runs the systems, which fill the queues, then draws the queues.
func (g *RocketPartnersGame) Render(batch *drawables.ImageBatch, delta float64) error {
	if !g.created {
		return core.ErrNotInitialized
	}
	if err := g.engine.Update(delta); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if batch == nil {
		g.clearQueues()
		return nil
	}

	batch.Clear(color.Black)
	batch.Begin(g.viewports[GAME_VIEWPORT])
	for _, section := range drawables.AllDrawingSections() {
		g.drawables[section].Drain(func(d drawables.ComparableDrawable) {
			d.Draw(batch)
		})
	}
	batch.End()

	if g.shapeRenderer == nil {
		g.shapeRenderer = drawables.NewImageShapeRenderer(batch)
	}
	g.shapeRenderer.Begin(g.viewports[GAME_VIEWPORT], drawables.LINE)
	g.shapes.Drain(func(s drawables.DrawableShape) {
		s.Draw(g.shapeRenderer)
	})
	g.shapeRenderer.End()

	if !g.debugText.Hidden {
		batch.Begin(g.viewports[UI_VIEWPORT])
		g.debugText.Draw(batch)
		batch.End()
	}
	return nil
}

func (g *RocketPartnersGame) clearQueues() {
	for _, q := range g.drawables {
		q.Clear()
	}
	g.shapes.Clear()
}

func (g *RocketPartnersGame) Resize(width uint32, height uint32) error {
	for _, v := range g.viewports {
		v.Update(int(width), int(height))
	}
	return nil
}

// Pause switches every system off except the sprites one, which keeps the
// frozen scene on screen, and pauses the audio.
func (g *RocketPartnersGame) Pause() {
	if !g.created || g.paused {
		return
	}
	g.pausedStates = make(map[string]bool, len(g.systemsMap))
	for name, s := range g.systemsMap {
		g.pausedStates[name] = s.On()
		if name != systems.SPRITES_SYSTEM {
			s.SetOn(false)
		}
	}
	g.audio.PauseAllSound()
	g.audio.PauseMusic()
	g.audio.PlaySound(assets.PAUSE_SOUND, false)
	g.paused = true
	_ = g.events.Submit(core.NewEvent(events.GAME_PAUSE, nil))
}

// Resume restores the systems to the state they had before Pause.
func (g *RocketPartnersGame) Resume() {
	if !g.created || !g.paused {
		return
	}
	for name, on := range g.pausedStates {
		g.systemsMap[name].SetOn(on)
	}
	g.pausedStates = nil
	g.audio.ResumeAllSound()
	g.audio.ResumeMusic()
	g.paused = false
	_ = g.events.Submit(core.NewEvent(events.GAME_RESUME, nil))
}

func (g *RocketPartnersGame) IsPaused() bool { return g.paused }

// Dispose releases everything Create acquired. Safe to call more than once.
// A disposed game cannot be created again.
func (g *RocketPartnersGame) Dispose() error {
	if g.disposed {
		return nil
	}
	g.disposed = true

	var errs []error
	if g.events != nil {
		g.events.RemoveListener(g)
		if g.level != nil {
			g.events.RemoveListener(g.level)
		}
	}
	if g.engine != nil {
		if err := g.engine.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if g.audio != nil {
		if err := g.audio.Dispose(); err != nil {
			errs = append(errs, err)
		}
	} else if g.audioOutput != nil {
		errs = append(errs, g.audioOutput.Close())
	}
	if g.assets != nil {
		if err := g.assets.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	g.created = false
	return errors.Join(errs...)
}

func (g *RocketPartnersGame) SetDebugText(text string) {
	if g.debugText != nil {
		g.debugText.Text = text
	}
}

func (g *RocketPartnersGame) DebugText() string {
	if g.debugText == nil {
		return ""
	}
	return g.debugText.Text
}

func (g *RocketPartnersGame) Events() *core.EventSystem                { return g.events }
func (g *RocketPartnersGame) Poller() *controller.ControllerPoller     { return g.poller }
func (g *RocketPartnersGame) Assets() *engineassets.AssetManager       { return g.assets }
func (g *RocketPartnersGame) Audio() *audio.AudioManager               { return g.audio }
func (g *RocketPartnersGame) Engine() *ecs.GameEngine                  { return g.engine }
func (g *RocketPartnersGame) Player() *entities.Player                 { return g.player }
func (g *RocketPartnersGame) Viewport(name string) *drawables.Viewport { return g.viewports[name] }

// GraphMap is read by the world and pathfinding systems when they need it.
func (g *RocketPartnersGame) GraphMap() *graph.GraphMap { return g.graphMap }

// System returns a system by name.
func (g *RocketPartnersGame) System(name string) (ecs.GameSystem, bool) {
	s, ok := g.systemsMap[name]
	return s, ok
}

// Drawables returns the queue of a drawing section.
func (g *RocketPartnersGame) Drawables(section drawables.DrawingSection) *containers.PriorityQueue[drawables.ComparableDrawable] {
	return g.drawables[section]
}

func (g *RocketPartnersGame) Shapes() *containers.PriorityQueue[drawables.DrawableShape] {
	return g.shapes
}
