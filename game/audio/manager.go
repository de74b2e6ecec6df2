package audio

import (
	"fmt"
	gomath "math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/rocketpartners/engine/assets/loaders"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/math"
	"github.com/spaghettifunk/rocketpartners/game/assets"
)

const (
	DEFAULT_SOUND_VOLUME = 0.5
	DEFAULT_MUSIC_VOLUME = 0.5
	RESAMPLE_QUALITY     = 4
)

// ClipSource returns the decoded clip stored under an asset source.
type ClipSource func(source string) (*loaders.AudioClip, error)

/** @brief The audio manager configuration. */
type AudioManagerConfig struct {
	Output Output
	Clips  ClipSource
	/** @brief Initial volumes, clamped to [0, 1]. Zero means the default. */
	SoundVolume float64
	MusicVolume float64
}

type soundRequest struct {
	sound assets.SoundAsset
	loop  bool
}

type playback struct {
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	loop    bool
	elapsed float64
}

// AudioManager plays the sounds and the music of the game. Sound requests are
// queued and only reach the output on Update.
type AudioManager struct {
	output Output
	clips  ClipSource

	soundVolume float64
	musicVolume float64

	soundsToPlay []soundRequest
	sounds       map[assets.SoundAsset]*playback

	music       *playback
	currentSong assets.MusicAsset
	hasSong     bool
	paused      bool

	fadeDuration float64
	fadeElapsed  float64
	fading       bool
}

func NewAudioManager(config *AudioManagerConfig) (*AudioManager, error) {
	if config == nil || config.Output == nil {
		err := fmt.Errorf("func NewAudioManager - config.Output cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	if config.Clips == nil {
		err := fmt.Errorf("func NewAudioManager - config.Clips cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	am := &AudioManager{
		output:      config.Output,
		clips:       config.Clips,
		soundVolume: DEFAULT_SOUND_VOLUME,
		musicVolume: DEFAULT_MUSIC_VOLUME,
		sounds:      make(map[assets.SoundAsset]*playback),
	}
	if config.SoundVolume != 0 {
		am.soundVolume = clampVolume(config.SoundVolume)
	}
	if config.MusicVolume != 0 {
		am.musicVolume = clampVolume(config.MusicVolume)
	}
	return am, nil
}

func clampVolume(v float64) float64 {
	return math.Clamp(v, 0, 1)
}

// applyVolume maps a linear [0, 1] volume onto the base 2 exponent of beep.
func applyVolume(v *effects.Volume, volume float64) {
	v.Silent = volume <= 0
	if !v.Silent {
		v.Volume = gomath.Log2(volume)
	}
}

func (am *AudioManager) SoundVolume() float64 { return am.soundVolume }
func (am *AudioManager) MusicVolume() float64 { return am.musicVolume }

func (am *AudioManager) SetSoundVolume(volume float64) {
	am.soundVolume = clampVolume(volume)
	am.output.Lock()
	defer am.output.Unlock()
	for _, p := range am.sounds {
		applyVolume(p.volume, am.soundVolume)
	}
}

func (am *AudioManager) SetMusicVolume(volume float64) {
	am.musicVolume = clampVolume(volume)
	if am.music == nil || am.fading {
		return
	}
	am.output.Lock()
	defer am.output.Unlock()
	applyVolume(am.music.volume, am.musicVolume)
}

func (am *AudioManager) stream(source string, loop bool, volume float64) (*playback, error) {
	clip, err := am.clips(source)
	if err != nil {
		return nil, err
	}
	if clip == nil || clip.Buffer == nil {
		return nil, fmt.Errorf("audio clip %s: %w", source, core.ErrAssetNotFound)
	}
	var s beep.Streamer = clip.Streamer()
	if loop {
		s = beep.Loop(-1, clip.Streamer())
	}
	if rate := clip.Format().SampleRate; rate != am.output.SampleRate() {
		s = beep.Resample(RESAMPLE_QUALITY, rate, am.output.SampleRate(), s)
	}
	v := &effects.Volume{Streamer: s, Base: 2}
	applyVolume(v, volume)
	p := &playback{ctrl: &beep.Ctrl{Streamer: v}, volume: v, loop: loop}
	am.output.Play(p.ctrl)
	return p, nil
}

func (am *AudioManager) halt(p *playback) {
	am.output.Lock()
	p.ctrl.Streamer = nil
	am.output.Unlock()
}

// PlaySound queues the sound for the next Update. Requesting a sound that is
// already queued is a no-op.
func (am *AudioManager) PlaySound(sound assets.SoundAsset, loop bool) {
	if slices.ContainsFunc(am.soundsToPlay, func(r soundRequest) bool { return r.sound == sound }) {
		return
	}
	am.soundsToPlay = append(am.soundsToPlay, soundRequest{sound: sound, loop: loop})
}

func (am *AudioManager) IsSoundPlaying(sound assets.SoundAsset) bool {
	_, ok := am.sounds[sound]
	return ok
}

func (am *AudioManager) StopSound(sound assets.SoundAsset) {
	am.soundsToPlay = slices.DeleteFunc(am.soundsToPlay, func(r soundRequest) bool { return r.sound == sound })
	if p, ok := am.sounds[sound]; ok {
		am.halt(p)
		delete(am.sounds, sound)
	}
}

// StopAllSound drops the queued requests and stops every playing sound.
func (am *AudioManager) StopAllSound() {
	am.soundsToPlay = nil
	for sound, p := range am.sounds {
		am.halt(p)
		delete(am.sounds, sound)
	}
}

func (am *AudioManager) PauseAllSound() {
	am.setSoundsPaused(true)
}

func (am *AudioManager) ResumeAllSound() {
	am.setSoundsPaused(false)
}

func (am *AudioManager) setSoundsPaused(paused bool) {
	am.output.Lock()
	defer am.output.Unlock()
	for _, p := range am.sounds {
		p.ctrl.Paused = paused
	}
}

// PlayMusic stops the current track and starts the given one.
func (am *AudioManager) PlayMusic(music assets.MusicAsset, loop bool) error {
	am.StopMusic()
	am.fading = false
	p, err := am.stream(music.Source(), loop, am.musicVolume)
	if err != nil {
		return fmt.Errorf("play music %s: %w", music, err)
	}
	if am.music != nil {
		am.halt(am.music)
	}
	am.music = p
	am.currentSong = music
	am.hasSong = true
	am.paused = false
	return nil
}

// ResumeMusic restarts the paused or stopped current track.
func (am *AudioManager) ResumeMusic() {
	if am.music == nil {
		return
	}
	am.output.Lock()
	am.music.ctrl.Paused = false
	am.output.Unlock()
	am.paused = false
}

// StopMusic pauses the current track; ResumeMusic can start it again.
func (am *AudioManager) StopMusic() {
	am.PauseMusic()
	am.fading = false
}

func (am *AudioManager) PauseMusic() {
	if am.music == nil {
		return
	}
	am.output.Lock()
	am.music.ctrl.Paused = true
	am.output.Unlock()
	am.paused = true
}

func (am *AudioManager) IsMusicPlaying() bool {
	return am.music != nil && !am.paused
}

// CurrentSong returns the last track started with PlayMusic.
func (am *AudioManager) CurrentSong() (assets.MusicAsset, bool) {
	return am.currentSong, am.hasSong
}

// FadeOutMusic lowers the music volume to zero over the given seconds and then
// stops the track.
func (am *AudioManager) FadeOutMusic(seconds float64) {
	if am.music == nil || am.paused {
		return
	}
	if seconds <= 0 {
		am.StopMusic()
		return
	}
	am.fading = true
	am.fadeDuration = seconds
	am.fadeElapsed = 0
}

func (am *AudioManager) IsFading() bool { return am.fading }

// Update starts the queued sounds, expires the finished ones and advances the
// music fade-out.
func (am *AudioManager) Update(delta float64) {
	for _, r := range am.soundsToPlay {
		if p, ok := am.sounds[r.sound]; ok {
			am.halt(p)
		}
		p, err := am.stream(r.sound.Source(), r.loop, am.soundVolume)
		if err != nil {
			core.LogWarn("cannot play sound %s: %s", r.sound, err)
			delete(am.sounds, r.sound)
			continue
		}
		am.sounds[r.sound] = p
	}
	am.soundsToPlay = am.soundsToPlay[:0]

	for sound, p := range am.sounds {
		if p.loop || p.ctrl.Paused {
			continue
		}
		p.elapsed += delta
		if p.elapsed > sound.Seconds() {
			am.halt(p)
			delete(am.sounds, sound)
		}
	}

	if am.fading && am.music != nil {
		am.fadeElapsed += delta
		ratio := math.Clamp(am.fadeElapsed/am.fadeDuration, 0, 1)
		am.output.Lock()
		applyVolume(am.music.volume, am.musicVolume*(1-ratio))
		am.output.Unlock()
		if ratio >= 1 {
			am.StopMusic()
			am.output.Lock()
			applyVolume(am.music.volume, am.musicVolume)
			am.output.Unlock()
		}
	}
}

// Pending returns the number of sound requests waiting for Update.
func (am *AudioManager) Pending() int {
	return len(am.soundsToPlay)
}

// Dispose stops everything and closes the output.
func (am *AudioManager) Dispose() error {
	am.StopAllSound()
	if am.music != nil {
		am.halt(am.music)
		am.music = nil
	}
	am.paused = false
	am.fading = false
	return am.output.Close()
}
