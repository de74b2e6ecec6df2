package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCodeA SystemEventCode = MAX_EVENT_CODE + 1 + iota
	testCodeB
	testCodeC
)

type recordingListener struct {
	mask     EventKeyMask
	received []Event
	onEvent  func(Event)
}

func (l *recordingListener) EventKeyMask() EventKeyMask { return l.mask }

func (l *recordingListener) OnEvent(e Event) {
	l.received = append(l.received, e)
	if l.onEvent != nil {
		l.onEvent(e)
	}
}

func newTestEventSystem(t *testing.T, size int) *EventSystem {
	t.Helper()
	es, err := NewEventSystem(&EventSystemConfig{QueueSize: size})
	require.NoError(t, err)
	return es
}

func TestEventKeyMaskMembership(t *testing.T) {
	mask := NewEventKeyMask(testCodeA, testCodeB, testCodeA)

	assert.Equal(t, 2, mask.Len())
	assert.Equal(t, []SystemEventCode{testCodeA, testCodeB}, mask.Codes())
	for i := 0; i < 10; i++ {
		assert.True(t, mask.Contains(testCodeA))
		assert.False(t, mask.Contains(testCodeC))
	}

	// mutating the returned codes does not touch the mask
	codes := mask.Codes()
	codes[0] = testCodeC
	assert.False(t, mask.Contains(testCodeC))
}

func TestNewEventSystemRejectsEmptyQueue(t *testing.T) {
	_, err := NewEventSystem(&EventSystemConfig{QueueSize: 0})
	assert.Error(t, err)

	es, err := NewEventSystem(nil)
	require.NoError(t, err)
	assert.NotNil(t, es)
}

func TestEventSystemDeliversOnlyMaskedCodes(t *testing.T) {
	es := newTestEventSystem(t, 8)
	a := &recordingListener{mask: NewEventKeyMask(testCodeA)}
	ab := &recordingListener{mask: NewEventKeyMask(testCodeA, testCodeB)}
	require.True(t, es.AddListener(a))
	require.True(t, es.AddListener(ab))
	assert.False(t, es.AddListener(a))

	require.NoError(t, es.Submit(NewEvent(testCodeA, nil)))
	require.NoError(t, es.Submit(NewEvent(testCodeB, nil)))
	require.NoError(t, es.Submit(NewEvent(testCodeC, nil)))
	assert.Equal(t, 3, es.Pending())

	assert.Equal(t, 3, es.Dispatch())
	assert.Len(t, a.received, 1)
	assert.Equal(t, testCodeA, a.received[0].Code)
	require.Len(t, ab.received, 2)
	assert.Equal(t, testCodeA, ab.received[0].Code)
	assert.Equal(t, testCodeB, ab.received[1].Code)
	assert.Equal(t, 0, es.Pending())
}

func TestEventSystemRemoveListener(t *testing.T) {
	es := newTestEventSystem(t, 8)
	l := &recordingListener{mask: NewEventKeyMask(testCodeA)}
	require.True(t, es.AddListener(l))
	require.True(t, es.RemoveListener(l))
	assert.False(t, es.RemoveListener(l))

	assert.False(t, es.Fire(NewEvent(testCodeA, nil)))
	assert.Empty(t, l.received)
}

func TestEventSystemQueueOverflow(t *testing.T) {
	es := newTestEventSystem(t, 2)
	require.NoError(t, es.Submit(NewEvent(testCodeA, nil)))
	require.NoError(t, es.Submit(NewEvent(testCodeA, nil)))
	assert.ErrorIs(t, es.Submit(NewEvent(testCodeA, nil)), ErrEventQueueFull)
}

func TestEventsSubmittedDuringDispatchWaitForNextFrame(t *testing.T) {
	es := newTestEventSystem(t, 8)
	l := &recordingListener{mask: NewEventKeyMask(testCodeA, testCodeB)}
	l.onEvent = func(e Event) {
		if e.Code == testCodeA {
			require.NoError(t, es.Submit(NewEvent(testCodeB, nil)))
		}
	}
	require.True(t, es.AddListener(l))
	require.NoError(t, es.Submit(NewEvent(testCodeA, nil)))

	assert.Equal(t, 1, es.Dispatch())
	assert.Len(t, l.received, 1)
	assert.Equal(t, 1, es.Dispatch())
	assert.Len(t, l.received, 2)
}

func TestEventSystemShutdownClearsState(t *testing.T) {
	es := newTestEventSystem(t, 4)
	l := &recordingListener{mask: NewEventKeyMask(testCodeA)}
	es.AddListener(l)
	require.NoError(t, es.Submit(NewEvent(testCodeA, nil)))

	require.NoError(t, es.Shutdown())
	assert.Equal(t, 0, es.Dispatch())
	assert.Empty(t, l.received)
}
