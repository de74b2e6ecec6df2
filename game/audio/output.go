package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"golang.org/x/exp/slices"
)

const DEFAULT_SAMPLE_RATE beep.SampleRate = 44100

// Output is where the audio manager sends its streams.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	// Lock and Unlock guard changes to streams that are already playing.
	Lock()
	Unlock()
	Close() error
}

type speakerOutput struct {
	sampleRate beep.SampleRate
}

// NewSpeakerOutput initializes the system speaker with a 100ms buffer.
func NewSpeakerOutput(sampleRate beep.SampleRate) (Output, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &speakerOutput{sampleRate: sampleRate}, nil
}

func (o *speakerOutput) SampleRate() beep.SampleRate { return o.sampleRate }
func (o *speakerOutput) Play(s beep.Streamer)        { speaker.Play(s) }
func (o *speakerOutput) Lock()                       { speaker.Lock() }
func (o *speakerOutput) Unlock()                     { speaker.Unlock() }

func (o *speakerOutput) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

// SilentOutput keeps the streams it is given without playing them. Used for
// headless runs and tests. Like the speaker mixer it drops a stream once the
// stream is drained or halted.
type SilentOutput struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	streams    []beep.Streamer
	played     int
}

func NewSilentOutput(sampleRate beep.SampleRate) *SilentOutput {
	return &SilentOutput{sampleRate: sampleRate}
}

func (o *SilentOutput) SampleRate() beep.SampleRate { return o.sampleRate }

func (o *SilentOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streams = slices.DeleteFunc(o.streams, halted)
	o.streams = append(o.streams, s)
	o.played++
}

// halted reports a Ctrl whose streamer was taken away.
func halted(s beep.Streamer) bool {
	ctrl, ok := s.(*beep.Ctrl)
	return ok && ctrl.Streamer == nil
}

func (o *SilentOutput) Lock()   { o.mu.Lock() }
func (o *SilentOutput) Unlock() { o.mu.Unlock() }

// Played returns how many streams were handed to the output.
func (o *SilentOutput) Played() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.played
}

// Active returns how many streams the output still holds.
func (o *SilentOutput) Active() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.streams)
}

// Drain pulls n samples out of every stream, the way a speaker would, and
// drops the streams that are done.
func (o *SilentOutput) Drain(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	buf := make([][2]float64, n)
	o.streams = slices.DeleteFunc(o.streams, func(s beep.Streamer) bool {
		_, ok := s.Stream(buf)
		return !ok
	})
}

func (o *SilentOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streams = nil
	return nil
}
