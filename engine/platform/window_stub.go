//go:build headless

package platform

import (
	"github.com/spaghettifunk/rocketpartners/engine/core"
)

func newWindow(*core.EventSystem, *core.Input) (Platform, error) {
	core.LogError("%s", ErrWindowUnavailable)
	return nil, ErrWindowUnavailable
}
