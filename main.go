package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/rocketpartners/engine"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/game"
)

func main() {
	configFile := engine.DEFAULT_CONFIG_FILE
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config, err := engine.LoadApplicationConfig(configFile)
	if err != nil {
		core.LogFatal("could not load the application config: %s", err)
	}
	core.SetLogLevel(config.LogLevel)

	// capture sigterm and other system calls to leave the loop cleanly
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	rp := game.NewRocketPartnersGame(config)
	e, err := engine.New(rp.Game())
	if err != nil {
		core.LogFatal("could not create the engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal("could not initialize the engine: %s", err)
	}

	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal("game loop stopped: %s", runErr)
	}
}
