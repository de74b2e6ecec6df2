package platform

import (
	"errors"
	"image"
	"time"

	"github.com/spaghettifunk/rocketpartners/engine/core"
)

var ErrWindowUnavailable = errors.New("windowed platform not compiled in")

// Platform is the host the engine runs on: it pumps OS messages into the
// event system and input state and receives the finished frames.
type Platform interface {
	Startup(applicationName string, x, y, width, height uint32) error
	// PumpMessages processes pending OS messages. Returns false once the
	// application was asked to close.
	PumpMessages() bool
	Present(frame *image.RGBA)
	// GetAbsoluteTime returns seconds since the platform started.
	GetAbsoluteTime() float64
	Sleep(ms float64)
	Shutdown() error
}

// New returns the headless platform or the glfw window. Key transitions are
// fed to input, window events are submitted to events.
func New(headless bool, events *core.EventSystem, input *core.Input) (Platform, error) {
	if headless {
		return NewHeadless(events), nil
	}
	return newWindow(events, input)
}

func sleep(ms float64) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}
