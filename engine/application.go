package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/rocketpartners/engine/core"
)

const DEFAULT_CONFIG_FILE = "rocketpartners.toml"

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string        `toml:"name"`
	LogLevel core.LogLevel `toml:"log_level"`
	// Directory asset sources are resolved against.
	AssetsDir string `toml:"assets_dir"`
	// Reload assets when their files change on disk.
	WatchAssets bool `toml:"watch_assets"`
	// Keyboard preferences file, relative to the working directory.
	PreferencesFile string `toml:"preferences_file"`
	TargetFPS       uint32 `toml:"target_fps"`
	LimitFrames     bool   `toml:"limit_frames"`
	// Stop after this many frames, 0 runs until quit.
	MaxFrames uint64 `toml:"max_frames"`
	Headless  bool   `toml:"headless"`
	// Address of the prometheus endpoint, empty disables it.
	MetricsAddress string `toml:"metrics_address"`
	DebugShapes    bool   `toml:"debug_shapes"`
	DebugText      bool   `toml:"debug_text"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:       100,
		StartPosY:       100,
		StartWidth:      512,
		StartHeight:     384,
		Name:            "Rocket Partners",
		LogLevel:        core.InfoLevel,
		AssetsDir:       "assets",
		PreferencesFile: "keyboard.toml",
		TargetFPS:       60,
		DebugShapes:     true,
		DebugText:       true,
	}
}

// LoadApplicationConfig reads the TOML file at path over the defaults. A
// missing file yields the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogInfo("no config at %s, using defaults", path)
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return fmt.Errorf("window size must be > 0, got %dx%d", c.StartWidth, c.StartHeight)
	}
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}
	return nil
}
