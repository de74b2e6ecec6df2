package controller

import (
	"sync"

	"github.com/spaghettifunk/rocketpartners/engine/core"
)

type ButtonStatus uint8

const (
	RELEASED ButtonStatus = iota
	JUST_PRESSED
	PRESSED
	JUST_RELEASED
)

func (s ButtonStatus) IsPressed() bool {
	return s == JUST_PRESSED || s == PRESSED
}

// Button binds a keyboard key to a logical game button.
type Button struct {
	KeyboardCode core.KeyCode
	Enabled      bool
}

func NewButton(code core.KeyCode) *Button {
	return &Button{KeyboardCode: code, Enabled: true}
}

// Buttons maps game defined button identifiers to their binding.
type Buttons map[interface{}]*Button

// ControllerPoller turns raw key states into per-button transitions once per
// frame. While it is off every button reads as released.
type ControllerPoller struct {
	mu       sync.RWMutex
	buttons  Buttons
	statuses map[interface{}]ButtonStatus
	keys     core.KeySource
	on       bool
}

func NewControllerPoller(buttons Buttons, keys core.KeySource) *ControllerPoller {
	statuses := make(map[interface{}]ButtonStatus, len(buttons))
	for b := range buttons {
		statuses[b] = RELEASED
	}
	return &ControllerPoller{
		buttons:  buttons,
		statuses: statuses,
		keys:     keys,
		on:       true,
	}
}

func (p *ControllerPoller) On() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.on
}

func (p *ControllerPoller) SetOn(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.on = on
}

// Run polls every button once.
func (p *ControllerPoller) Run() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, button := range p.buttons {
		down := p.on && button.Enabled && p.keys != nil && p.keys.IsKeyDown(button.KeyboardCode)
		p.statuses[id] = next(p.statuses[id], down)
	}
}

func next(status ButtonStatus, down bool) ButtonStatus {
	if down {
		if status.IsPressed() {
			return PRESSED
		}
		return JUST_PRESSED
	}
	if status.IsPressed() {
		return JUST_RELEASED
	}
	return RELEASED
}

// Status returns the state of the button after the last Run.
func (p *ControllerPoller) Status(button interface{}) ButtonStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.statuses[button]
}

func (p *ControllerPoller) IsPressed(button interface{}) bool {
	return p.Status(button).IsPressed()
}

func (p *ControllerPoller) IsJustPressed(button interface{}) bool {
	return p.Status(button) == JUST_PRESSED
}

func (p *ControllerPoller) IsJustReleased(button interface{}) bool {
	return p.Status(button) == JUST_RELEASED
}

// Buttons returns the identifiers of every polled button.
func (p *ControllerPoller) Buttons() []interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]interface{}, 0, len(p.buttons))
	for b := range p.buttons {
		out = append(out, b)
	}
	return out
}
