package controllers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/rocketpartners/engine/controller"
	"github.com/spaghettifunk/rocketpartners/engine/core"
)

// ControllerButton is a logical button of the game pad emulated on the keyboard.
type ControllerButton uint8

const (
	LEFT ControllerButton = iota
	RIGHT
	UP
	DOWN
	A
	B
	START
)

var buttonTable = [...]struct {
	name       string
	defaultKey core.KeyCode
}{
	LEFT:  {"LEFT", core.KEY_A},
	RIGHT: {"RIGHT", core.KEY_D},
	UP:    {"UP", core.KEY_W},
	DOWN:  {"DOWN", core.KEY_S},
	A:     {"A", core.KEY_K},
	B:     {"B", core.KEY_J},
	START: {"START", core.KEY_ENTER},
}

func ControllerButtons() []ControllerButton {
	out := make([]ControllerButton, len(buttonTable))
	for i := range buttonTable {
		out[i] = ControllerButton(i)
	}
	return out
}

func (b ControllerButton) String() string {
	if int(b) < len(buttonTable) {
		return buttonTable[b].name
	}
	return fmt.Sprintf("ControllerButton(%d)", uint8(b))
}

func (b ControllerButton) DefaultKey() core.KeyCode {
	return buttonTable[b].defaultKey
}

// ParseControllerButton maps a preferences key back to its button.
func ParseControllerButton(name string) (ControllerButton, bool) {
	for _, b := range ControllerButtons() {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

// DefaultButtons returns a fresh set of bindings with the default keys.
func DefaultButtons() controller.Buttons {
	buttons := make(controller.Buttons, len(buttonTable))
	for _, b := range ControllerButtons() {
		buttons[b] = controller.NewButton(b.DefaultKey())
	}
	return buttons
}

// LoadButtons reads the keyboard preferences file, a TOML table of button name
// to key code. Buttons missing from the file keep their default key; a missing
// file means defaults for every button.
func LoadButtons(path string) (controller.Buttons, error) {
	buttons := DefaultButtons()
	if path == "" {
		return buttons, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogInfo("keyboard preferences %s not found, using defaults", path)
		return buttons, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read keyboard preferences: %w", err)
	}

	prefs := map[string]int{}
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parse keyboard preferences %s: %w", path, err)
	}
	for name, code := range prefs {
		b, ok := ParseControllerButton(name)
		if !ok {
			core.LogWarn("unknown controller button %q in %s", name, path)
			continue
		}
		if code <= 0 || code >= int(core.KEYS_MAX_KEYS) {
			core.LogWarn("invalid key code %d for %s, keeping %d", code, name, b.DefaultKey())
			continue
		}
		buttons[b].KeyboardCode = core.KeyCode(code)
	}
	return buttons, nil
}

// ResetButtonsToDefaults rebinds every button to its default key and writes
// the defaults to the preferences file when a path is given.
func ResetButtonsToDefaults(buttons controller.Buttons, path string) error {
	prefs := make(map[string]int, len(buttonTable))
	for _, b := range ControllerButtons() {
		if button, ok := buttons[b]; ok {
			button.KeyboardCode = b.DefaultKey()
		} else {
			buttons[b] = controller.NewButton(b.DefaultKey())
		}
		prefs[b.String()] = int(b.DefaultKey())
	}
	if path == "" {
		return nil
	}

	data, err := toml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode keyboard preferences: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write keyboard preferences: %w", err)
	}
	return nil
}
