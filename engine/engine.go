package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/platform"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	platform      platform.Platform
	events        *core.EventSystem
	input         *core.Input
	batch         *drawables.ImageBatch
	metricsServer *http.Server
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
	frameCount    uint64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		err := fmt.Errorf("func New - game and its application config are required")
		core.LogError("%s", err)
		return nil, err
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		clock:        core.NewClock(),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}
	core.SetLogLevel(g.ApplicationConfig.LogLevel)

	events, err := core.NewEventSystem(nil)
	if err != nil {
		return nil, err
	}
	e.events = events
	e.input = core.NewInput(events)

	p, err := platform.New(g.ApplicationConfig.Headless, e.events, e.input)
	if err != nil {
		return nil, err
	}
	e.platform = p
	e.batch = drawables.NewImageBatch(int(e.width), int(e.height))

	g.Events = e.events
	g.Input = e.input

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Stage() Stage { return e.currentStage }

func (e *Engine) Events() *core.EventSystem   { return e.events }
func (e *Engine) Input() *core.Input          { return e.input }
func (e *Engine) Platform() platform.Platform { return e.platform }

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

// Frames returns how many frames were run so far.
func (e *Engine) Frames() uint64 { return e.frameCount }

func (e *Engine) EventKeyMask() core.EventKeyMask {
	return core.NewEventKeyMask(
		core.EVENT_CODE_APPLICATION_QUIT,
		core.EVENT_CODE_KEY_PRESSED,
		core.EVENT_CODE_RESIZED,
	)
}

func (e *Engine) OnEvent(event core.Event) {
	switch event.Code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
	case core.EVENT_CODE_KEY_PRESSED:
		e.onKey(event)
	case core.EVENT_CODE_RESIZED:
		e.onResized(event)
	}
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("engine initialize in stage %d: %w", e.currentStage, core.ErrNotInitialized)
	}
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	if err := core.MetricsInitialize(); err != nil {
		return err
	}
	e.events.AddListener(e)

	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight); err != nil {
		return err
	}

	if config.MetricsAddress != "" {
		e.startMetricsServer(config.MetricsAddress)
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(core.MetricsRegistry(), promhttp.HandlerOpts{}))
	e.metricsServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		core.LogInfo("serving metrics on %s/metrics", addr)
		if err := e.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			core.LogError("metrics server: %s", err)
		}
	}()
}

// Run drives the game until it quits, the context is done or the configured
// frame budget is spent.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine run in stage %d: %w", e.currentStage, core.ErrNotInitialized)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true

	config := e.gameInstance.ApplicationConfig
	var targetFrameSeconds float64
	if config.TargetFPS > 0 {
		targetFrameSeconds = 1.0 / float64(config.TargetFPS)
	}

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		select {
		case <-ctx.Done():
			core.LogInfo("context done, leaving the game loop")
			e.isRunning = false
			continue
		default:
		}

		if !e.platform.PumpMessages() {
			e.isRunning = false
			break
		}
		e.events.Dispatch()
		if !e.isRunning {
			break
		}
		if e.isSuspended {
			e.platform.Sleep(targetFrameSeconds * 1000)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := e.platform.GetAbsoluteTime()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down: %s", err)
				e.isRunning = false
				return err
			}
		}

		// Call the game's render routine.
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(e.batch, delta); err != nil {
				core.LogError("Game render failed, shutting down: %s", err)
				e.isRunning = false
				return err
			}
		}
		e.platform.Present(e.batch.Image())

		// Figure out how long the frame took and, if below the target, give
		// the rest back to the OS.
		frameElapsedTime := e.platform.GetAbsoluteTime() - frameStartTime
		core.MetricsUpdate(frameElapsedTime)
		remainingSeconds := targetFrameSeconds - frameElapsedTime
		if remainingSeconds > 0 && config.LimitFrames {
			e.platform.Sleep(remainingSeconds*1000 - 1)
		}

		// NOTE: Input update/state copying should always be handled after any
		// input should be recorded. As a safety, input is the last thing to be
		// updated before this frame ends.
		e.input.Update()

		e.lastTime = currentTime
		e.frameCount++
		if config.MaxFrames > 0 && e.frameCount >= config.MaxFrames {
			e.isRunning = false
		}
	}
	e.currentStage = EngineStageInitialized
	return nil
}

// Shutdown tears the game and the engine down. Safe to call more than once.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageUninitialized || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if e.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		errs = append(errs, e.metricsServer.Shutdown(ctx))
		cancel()
	}
	e.events.RemoveListener(e)
	errs = append(errs, e.events.Shutdown())
	errs = append(errs, e.platform.Shutdown())

	e.currentStage = EngineStageUninitialized
	return errors.Join(errs...)
}

func (e *Engine) onKey(event core.Event) {
	keyCode, ok := event.Properties[core.EventPropKeyCode].(core.KeyCode)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", event.Code)
		return
	}
	if keyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.NewEvent(core.EVENT_CODE_APPLICATION_QUIT, nil))
		return
	}
	core.LogDebug("key %#x pressed", uint16(keyCode))
}

func (e *Engine) onResized(event core.Event) {
	width, wok := event.Properties[core.EventPropWidth].(uint32)
	height, hok := event.Properties[core.EventPropHeight].(uint32)
	if !wok || !hok {
		core.LogError("wrong event associated with the event type `%d`", event.Code)
		return
	}

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	e.batch.Resize(int(width), int(height))
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("%s", err)
		}
	}
}
