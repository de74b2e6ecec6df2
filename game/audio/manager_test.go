package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rocketpartners/engine/assets/loaders"
	"github.com/spaghettifunk/rocketpartners/game/assets"
)

func testClip(rate beep.SampleRate) *loaders.AudioClip {
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	buffer := beep.NewBuffer(format)
	buffer.Append(generators.Silence(int(rate) / 10))
	return &loaders.AudioClip{Buffer: buffer}
}

func newTestManager(t *testing.T) (*AudioManager, *SilentOutput) {
	t.Helper()
	out := NewSilentOutput(DEFAULT_SAMPLE_RATE)
	am, err := NewAudioManager(&AudioManagerConfig{
		Output: out,
		Clips: func(source string) (*loaders.AudioClip, error) {
			if source == assets.PAUSE_SOUND.Source() {
				return nil, errors.New("missing")
			}
			return testClip(22050), nil
		},
	})
	require.NoError(t, err)
	return am, out
}

func TestNewAudioManagerValidatesConfig(t *testing.T) {
	_, err := NewAudioManager(nil)
	assert.Error(t, err)
	_, err = NewAudioManager(&AudioManagerConfig{Output: NewSilentOutput(DEFAULT_SAMPLE_RATE)})
	assert.Error(t, err)
}

func TestVolumesAreClamped(t *testing.T) {
	am, _ := newTestManager(t)
	assert.Equal(t, DEFAULT_SOUND_VOLUME, am.SoundVolume())
	assert.Equal(t, DEFAULT_MUSIC_VOLUME, am.MusicVolume())

	am.SetSoundVolume(3)
	am.SetMusicVolume(-1)
	assert.Equal(t, 1.0, am.SoundVolume())
	assert.Equal(t, 0.0, am.MusicVolume())
}

func TestSoundsAreQueuedUntilUpdate(t *testing.T) {
	am, out := newTestManager(t)

	am.PlaySound(assets.JETDASH_SOUND, false)
	am.PlaySound(assets.JETDASH_SOUND, false)
	am.PlaySound(assets.JETPACK_SOUND, true)
	assert.Equal(t, 2, am.Pending())
	assert.False(t, am.IsSoundPlaying(assets.JETDASH_SOUND))
	assert.Zero(t, out.Played())

	am.Update(0.1)
	assert.Zero(t, am.Pending())
	assert.Equal(t, 2, out.Played())
	assert.True(t, am.IsSoundPlaying(assets.JETDASH_SOUND))
	assert.True(t, am.IsSoundPlaying(assets.JETPACK_SOUND))
	assert.NotPanics(t, func() { out.Drain(512) })
}

func TestNonLoopingSoundsExpire(t *testing.T) {
	am, _ := newTestManager(t)
	am.PlaySound(assets.JETDASH_SOUND, false)
	am.PlaySound(assets.JETPACK_SOUND, true)

	am.Update(0.5)
	am.Update(0.6)

	assert.False(t, am.IsSoundPlaying(assets.JETDASH_SOUND))
	assert.True(t, am.IsSoundPlaying(assets.JETPACK_SOUND))

	am.StopSound(assets.JETPACK_SOUND)
	assert.False(t, am.IsSoundPlaying(assets.JETPACK_SOUND))
}

func TestPausedSoundsDoNotExpire(t *testing.T) {
	am, _ := newTestManager(t)
	am.PlaySound(assets.PLAYER_DAMAGE_SOUND, false)
	am.Update(0)

	am.PauseAllSound()
	am.Update(5)
	assert.True(t, am.IsSoundPlaying(assets.PLAYER_DAMAGE_SOUND))

	am.ResumeAllSound()
	am.Update(5)
	assert.False(t, am.IsSoundPlaying(assets.PLAYER_DAMAGE_SOUND))
}

func TestMissingClipIsSkipped(t *testing.T) {
	am, out := newTestManager(t)
	am.PlaySound(assets.PAUSE_SOUND, false)
	am.Update(0)
	assert.False(t, am.IsSoundPlaying(assets.PAUSE_SOUND))
	assert.Zero(t, out.Played())
}

func TestMusicPlayStopResume(t *testing.T) {
	am, out := newTestManager(t)

	require.NoError(t, am.PlayMusic(assets.MMX2_X_HUNTER_MUSIC, true))
	assert.True(t, am.IsMusicPlaying())
	song, ok := am.CurrentSong()
	assert.True(t, ok)
	assert.Equal(t, assets.MMX2_X_HUNTER_MUSIC, song)

	am.StopMusic()
	assert.False(t, am.IsMusicPlaying())
	am.ResumeMusic()
	assert.True(t, am.IsMusicPlaying())

	require.NoError(t, am.PlayMusic(assets.MMX2_X_HUNTER_MUSIC, false))
	assert.Equal(t, 2, out.Played())
}

func TestFadeOutStopsMusic(t *testing.T) {
	am, _ := newTestManager(t)
	require.NoError(t, am.PlayMusic(assets.MMX2_X_HUNTER_MUSIC, true))

	am.FadeOutMusic(1)
	am.Update(0.5)
	assert.True(t, am.IsFading())
	assert.True(t, am.IsMusicPlaying())
	assert.InDelta(t, -2, am.music.volume.Volume, 1e-9, "half of 0.5 is 2^-2")

	am.Update(0.6)
	assert.False(t, am.IsFading())
	assert.False(t, am.IsMusicPlaying())
	assert.InDelta(t, -1, am.music.volume.Volume, 1e-9)
}

func TestDispose(t *testing.T) {
	am, out := newTestManager(t)
	am.PlaySound(assets.JETDASH_SOUND, false)
	am.Update(0)
	require.NoError(t, am.PlayMusic(assets.MMX2_X_HUNTER_MUSIC, true))

	require.NoError(t, am.Dispose())
	assert.False(t, am.IsSoundPlaying(assets.JETDASH_SOUND))
	assert.False(t, am.IsMusicPlaying())
	assert.Equal(t, 2, out.Played())
	assert.Zero(t, out.Active())
}

func TestSilentOutputDropsFinishedStreams(t *testing.T) {
	am, out := newTestManager(t)

	for i := 0; i < 10; i++ {
		am.PlaySound(assets.JETDASH_SOUND, false)
		am.Update(0)
	}
	assert.Equal(t, 10, out.Played())
	assert.Equal(t, 1, out.Active(), "restarted sounds halt the previous stream")

	am.PlaySound(assets.JETPACK_SOUND, true)
	am.Update(0)
	am.StopSound(assets.JETDASH_SOUND)
	out.Drain(512)
	assert.Equal(t, 1, out.Active())

	// the clip lasts a tenth of a second at 22050Hz, resampled to the output rate
	out.Drain(int(DEFAULT_SAMPLE_RATE))
	assert.Equal(t, 1, out.Active(), "looping streams never finish")

	am.StopSound(assets.JETPACK_SOUND)
	out.Drain(512)
	assert.Zero(t, out.Active())
}
