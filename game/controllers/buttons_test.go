package controllers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rocketpartners/engine/controller"
	"github.com/spaghettifunk/rocketpartners/engine/core"
)

func TestDefaultButtons(t *testing.T) {
	buttons := DefaultButtons()
	require.Len(t, buttons, 7)
	assert.Equal(t, core.KEY_A, buttons[LEFT].KeyboardCode)
	assert.Equal(t, core.KEY_D, buttons[RIGHT].KeyboardCode)
	assert.Equal(t, core.KEY_K, buttons[A].KeyboardCode)
	assert.Equal(t, core.KEY_ENTER, buttons[START].KeyboardCode)
}

func TestLoadButtonsMissingFileUsesDefaults(t *testing.T) {
	buttons, err := LoadButtons(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultButtons()[UP].KeyboardCode, buttons[UP].KeyboardCode)
}

func TestLoadButtonsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyboard.toml")
	prefs := "LEFT = 37\nRIGHT = 39\nJUMP = 32\nSTART = 0\n"
	require.NoError(t, os.WriteFile(path, []byte(prefs), 0o644))

	buttons, err := LoadButtons(path)
	require.NoError(t, err)
	assert.Equal(t, core.KEY_LEFT, buttons[LEFT].KeyboardCode)
	assert.Equal(t, core.KEY_RIGHT, buttons[RIGHT].KeyboardCode)
	assert.Equal(t, core.KEY_ENTER, buttons[START].KeyboardCode, "invalid code keeps the default")
	assert.Equal(t, core.KEY_W, buttons[UP].KeyboardCode)
}

func TestLoadButtonsRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyboard.toml")
	require.NoError(t, os.WriteFile(path, []byte("LEFT = = 3"), 0o644))

	_, err := LoadButtons(path)
	assert.Error(t, err)
}

func TestResetButtonsToDefaultsWritesPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "keyboard.toml")
	buttons := controller.Buttons{LEFT: controller.NewButton(core.KEY_LEFT)}

	require.NoError(t, ResetButtonsToDefaults(buttons, path))
	assert.Equal(t, core.KEY_A, buttons[LEFT].KeyboardCode)
	assert.Len(t, buttons, 7)

	loaded, err := LoadButtons(path)
	require.NoError(t, err)
	for _, b := range ControllerButtons() {
		assert.Equal(t, b.DefaultKey(), loaded[b].KeyboardCode, b.String())
	}
}

func TestParseControllerButton(t *testing.T) {
	b, ok := ParseControllerButton("B")
	assert.True(t, ok)
	assert.Equal(t, B, b)
	_, ok = ParseControllerButton("SELECT")
	assert.False(t, ok)
}
