package core

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/rocketpartners/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Properties usage:
	 * KeyCode key_code = props["key_code"]
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Properties usage:
	 * KeyCode key_code = props["key_code"]
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Resized/resolution changed from the OS.
	/* Properties usage:
	 * uint32 width = props["width"]
	 * uint32 height = props["height"]
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

const (
	EventPropKeyCode = "key_code"
	EventPropWidth   = "width"
	EventPropHeight  = "height"
)

const DEFAULT_EVENT_QUEUE_SIZE = 1024

// Properties carries the payload of an event.
type Properties map[string]interface{}

type Event struct {
	Code       SystemEventCode
	Sender     interface{}
	Properties Properties
}

func NewEvent(code SystemEventCode, props Properties) Event {
	if props == nil {
		props = Properties{}
	}
	return Event{
		Code:       code,
		Properties: props,
	}
}

// EventKeyMask is the set of event codes a listener is subscribed to. It is
// built once and cannot be changed afterwards.
type EventKeyMask struct {
	codes map[SystemEventCode]struct{}
}

func NewEventKeyMask(codes ...SystemEventCode) EventKeyMask {
	m := EventKeyMask{
		codes: make(map[SystemEventCode]struct{}, len(codes)),
	}
	for _, c := range codes {
		m.codes[c] = struct{}{}
	}
	return m
}

func (m EventKeyMask) Contains(code SystemEventCode) bool {
	_, ok := m.codes[code]
	return ok
}

func (m EventKeyMask) Len() int {
	return len(m.codes)
}

// Codes returns the subscribed codes in ascending order.
func (m EventKeyMask) Codes() []SystemEventCode {
	out := make([]SystemEventCode, 0, len(m.codes))
	for c := range m.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EventListener receives the events whose code is part of its key mask.
type EventListener interface {
	EventKeyMask() EventKeyMask
	OnEvent(event Event)
}

/** @brief The event system configuration. */
type EventSystemConfig struct {
	/** @brief Maximum number of events waiting for the next Dispatch. */
	QueueSize int
}

type EventSystem struct {
	mu         sync.Mutex
	registered map[SystemEventCode][]EventListener
	listeners  []EventListener
	queue      *containers.RingQueue[Event]
}

func NewEventSystem(config *EventSystemConfig) (*EventSystem, error) {
	if config == nil {
		config = &EventSystemConfig{QueueSize: DEFAULT_EVENT_QUEUE_SIZE}
	}
	if config.QueueSize <= 0 {
		err := fmt.Errorf("func NewEventSystem - config.QueueSize must be > 0")
		LogError("%s", err)
		return nil, err
	}
	return &EventSystem{
		registered: make(map[SystemEventCode][]EventListener),
		queue:      containers.NewRingQueue[Event](config.QueueSize),
	}, nil
}

// AddListener registers the listener under every code of its key mask.
// Registering the same listener twice returns false.
func (es *EventSystem) AddListener(listener EventListener) bool {
	es.mu.Lock()
	defer es.mu.Unlock()

	if slices.Contains(es.listeners, listener) {
		LogWarn("listener %T already registered", listener)
		return false
	}
	es.listeners = append(es.listeners, listener)
	for _, code := range listener.EventKeyMask().Codes() {
		es.registered[code] = append(es.registered[code], listener)
	}
	return true
}

// RemoveListener unregisters the listener. Returns false if it was not registered.
func (es *EventSystem) RemoveListener(listener EventListener) bool {
	es.mu.Lock()
	defer es.mu.Unlock()

	if !slices.Contains(es.listeners, listener) {
		return false
	}
	es.listeners = slices.DeleteFunc(es.listeners, func(l EventListener) bool { return l == listener })
	for code, ls := range es.registered {
		ls = slices.DeleteFunc(ls, func(l EventListener) bool { return l == listener })
		if len(ls) == 0 {
			delete(es.registered, code)
			continue
		}
		es.registered[code] = ls
	}
	return true
}

// Submit queues the event for the next Dispatch. Safe to call from any goroutine.
func (es *EventSystem) Submit(event Event) error {
	es.mu.Lock()
	defer es.mu.Unlock()

	if err := es.queue.Enqueue(event); err != nil {
		LogWarn("dropping event %d: %s", event.Code, err)
		return fmt.Errorf("submit event %d: %w", event.Code, ErrEventQueueFull)
	}
	return nil
}

// Fire delivers the event right away to every listener subscribed to its code.
// Returns true if at least one listener received it.
func (es *EventSystem) Fire(event Event) bool {
	listeners := es.listenersFor(event.Code)
	for _, l := range listeners {
		l.OnEvent(event)
	}
	return len(listeners) > 0
}

// Dispatch delivers every queued event in FIFO order and returns how many were
// taken off the queue. Events submitted by listeners while dispatching wait for
// the next call.
func (es *EventSystem) Dispatch() int {
	es.mu.Lock()
	pending := make([]Event, 0, es.queue.Len())
	for !es.queue.IsEmpty() {
		ev, _ := es.queue.Dequeue()
		pending = append(pending, ev)
	}
	es.mu.Unlock()

	for _, ev := range pending {
		es.Fire(ev)
	}
	return len(pending)
}

// Pending returns the number of events waiting for Dispatch.
func (es *EventSystem) Pending() int {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.queue.Len()
}

func (es *EventSystem) Shutdown() error {
	es.mu.Lock()
	defer es.mu.Unlock()

	// Free the listener tables. Listeners themselves are released by their owners.
	es.registered = make(map[SystemEventCode][]EventListener)
	es.listeners = nil
	for !es.queue.IsEmpty() {
		_, _ = es.queue.Dequeue()
	}
	return nil
}

func (es *EventSystem) listenersFor(code SystemEventCode) []EventListener {
	es.mu.Lock()
	defer es.mu.Unlock()
	return slices.Clone(es.registered[code])
}
