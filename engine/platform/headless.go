package platform

import (
	"image"
	"sync"
	"time"

	"github.com/spaghettifunk/rocketpartners/engine/core"
)

// Headless runs the engine without a window. It closes when Close is called
// or an APPLICATION_QUIT event is submitted.
type Headless struct {
	mu        sync.Mutex
	events    *core.EventSystem
	startTime time.Time
	closed    bool
	frames    uint64
	last      *image.RGBA
}

func NewHeadless(events *core.EventSystem) *Headless {
	return &Headless{events: events}
}

func (h *Headless) Startup(applicationName string, x, y, width, height uint32) error {
	h.startTime = time.Now()
	core.LogInfo("starting %s headless (%dx%d)", applicationName, width, height)
	if h.events != nil {
		return h.events.Submit(core.NewEvent(core.EVENT_CODE_RESIZED, core.Properties{
			core.EventPropWidth:  width,
			core.EventPropHeight: height,
		}))
	}
	return nil
}

func (h *Headless) PumpMessages() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.closed
}

func (h *Headless) Present(frame *image.RGBA) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = frame
	h.frames++
}

// LastFrame returns the last presented frame and how many were presented.
func (h *Headless) LastFrame() (*image.RGBA, uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.frames
}

func (h *Headless) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}

func (h *Headless) GetAbsoluteTime() float64 {
	return time.Since(h.startTime).Seconds()
}

func (h *Headless) Sleep(ms float64) { sleep(ms) }

func (h *Headless) Shutdown() error {
	h.Close()
	return nil
}
