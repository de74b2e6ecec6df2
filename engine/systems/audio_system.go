package systems

import (
	"fmt"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
)

type SoundRequest struct {
	Source interface{}
	Loop   bool
}

type MusicRequest struct {
	Source interface{}
	Loop   bool
}

// AudioComponent queues audio requests made by its entity until the audio
// system drains them.
type AudioComponent struct {
	sounds     []SoundRequest
	music      []MusicRequest
	stopSounds []interface{}
	stopMusic  bool
}

func NewAudioComponent() *AudioComponent {
	return &AudioComponent{}
}

func (c *AudioComponent) RequestSound(source interface{}, loop bool) {
	c.sounds = append(c.sounds, SoundRequest{Source: source, Loop: loop})
}

func (c *AudioComponent) RequestMusic(source interface{}, loop bool) {
	c.music = append(c.music, MusicRequest{Source: source, Loop: loop})
}

// RequestStopSound stops the given sound, nil stops every sound.
func (c *AudioComponent) RequestStopSound(source interface{}) {
	c.stopSounds = append(c.stopSounds, source)
}

func (c *AudioComponent) RequestStopMusic() {
	c.stopMusic = true
}

func (c *AudioComponent) Pending() int {
	n := len(c.sounds) + len(c.music) + len(c.stopSounds)
	if c.stopMusic {
		n++
	}
	return n
}

func (c *AudioComponent) clearSounds() {
	c.sounds = nil
	c.stopSounds = nil
}

func (c *AudioComponent) clearMusic() {
	c.music = nil
	c.stopMusic = false
}

/** @brief The audio system configuration. */
type AudioSystemConfig struct {
	PlaySound func(req SoundRequest)
	PlayMusic func(req MusicRequest)
	/** @brief Stops the given sound, or every sound when source is nil. */
	StopSound func(source interface{})
	StopMusic func()

	/** @brief Keep the requests made while the system is off for when it comes back on. */
	KeepSoundRequestsWhileOff bool
	KeepMusicRequestsWhileOff bool
	/** @brief Stop what is playing when the system is switched off. */
	StopSoundsWhenOff bool
	StopMusicWhenOff  bool
}

// AudioSystem forwards the queued audio requests of its entities to the
// configured playback callbacks.
type AudioSystem struct {
	*ecs.BaseGameSystem
	config *AudioSystemConfig
	wasOff bool
}

func NewAudioSystem(config *AudioSystemConfig) (*AudioSystem, error) {
	if config == nil || config.PlaySound == nil || config.PlayMusic == nil ||
		config.StopSound == nil || config.StopMusic == nil {
		err := fmt.Errorf("func NewAudioSystem - every playback callback must be set")
		core.LogError("%s", err)
		return nil, err
	}
	as := &AudioSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(AUDIO_SYSTEM, ecs.ComponentType[*AudioComponent]()),
		config:         config,
	}
	as.PreProcess = as.preProcess
	as.Process = as.process
	return as, nil
}

func (as *AudioSystem) SetOn(on bool) {
	if !on && as.On() {
		if as.config.StopSoundsWhenOff {
			as.config.StopSound(nil)
		}
		if as.config.StopMusicWhenOff {
			as.config.StopMusic()
		}
		as.wasOff = true
	}
	as.BaseGameSystem.SetOn(on)
}

func (as *AudioSystem) preProcess(float64) {
	if !as.wasOff {
		return
	}
	as.wasOff = false
	for _, e := range as.Entities() {
		c, _ := ecs.GetComponent[*AudioComponent](e)
		if !as.config.KeepSoundRequestsWhileOff {
			c.clearSounds()
		}
		if !as.config.KeepMusicRequestsWhileOff {
			c.clearMusic()
		}
	}
}

func (as *AudioSystem) process(e *ecs.GameEntity, _ float64) error {
	c, _ := ecs.GetComponent[*AudioComponent](e)
	for _, source := range c.stopSounds {
		as.config.StopSound(source)
	}
	for _, req := range c.sounds {
		as.config.PlaySound(req)
	}
	if c.stopMusic {
		as.config.StopMusic()
	}
	for _, req := range c.music {
		as.config.PlayMusic(req)
	}
	c.clearSounds()
	c.clearMusic()
	return nil
}
