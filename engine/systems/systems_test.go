package systems

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rocketpartners/engine/controller"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
	"github.com/spaghettifunk/rocketpartners/engine/math"
)

type fakeKeys map[core.KeyCode]bool

func (k fakeKeys) IsKeyDown(code core.KeyCode) bool { return k[code] }

func entityWith(components ...interface{}) *ecs.GameEntity {
	e := ecs.NewGameEntity()
	for _, c := range components {
		e.AddComponent(c)
	}
	return e
}

func TestControllerSystemFiresActuators(t *testing.T) {
	_, err := NewControllerSystem(nil)
	require.Error(t, err)

	keys := fakeKeys{}
	poller := controller.NewControllerPoller(controller.Buttons{"jump": controller.NewButton(core.KEY_K)}, keys)
	cs, err := NewControllerSystem(poller)
	require.NoError(t, err)

	var events []string
	c := NewControllerComponent()
	c.Actuators["jump"] = &ButtonActuator{
		OnJustPressed:      func(*controller.ControllerPoller) { events = append(events, "just_pressed") },
		OnPressContinued:   func(*controller.ControllerPoller, float64) { events = append(events, "pressed") },
		OnJustReleased:     func(*controller.ControllerPoller) { events = append(events, "just_released") },
		OnReleaseContinued: func(*controller.ControllerPoller, float64) { events = append(events, "released") },
	}
	e := entityWith(c)
	require.True(t, cs.Qualifies(e))
	cs.Add(e)

	require.NoError(t, cs.Update(0.1))
	keys[core.KEY_K] = true
	require.NoError(t, cs.Update(0.1))
	require.NoError(t, cs.Update(0.1))
	keys[core.KEY_K] = false
	require.NoError(t, cs.Update(0.1))

	assert.Equal(t, []string{"released", "just_pressed", "pressed", "just_released"}, events)
	assert.Equal(t, "ControllerSystem", cs.Name())
}

func TestBehaviorsSystemTransitions(t *testing.T) {
	bs := NewBehaviorsSystem()

	active := false
	var calls []string
	b := &Behavior{
		Evaluate: func(float64) bool { return active },
		Init:     func() { calls = append(calls, "init") },
		Act:      func(float64) { calls = append(calls, "act") },
		End:      func() { calls = append(calls, "end") },
	}
	bs.Add(entityWith(&BehaviorsComponent{Behaviors: []*Behavior{b}}))

	require.NoError(t, bs.Update(0.1))
	assert.Empty(t, calls)

	active = true
	require.NoError(t, bs.Update(0.1))
	require.NoError(t, bs.Update(0.1))
	assert.True(t, b.Running())

	active = false
	require.NoError(t, bs.Update(0.1))
	assert.False(t, b.Running())

	assert.Equal(t, []string{"init", "act", "act", "end"}, calls)
}

func TestCullablesSystemKillsEntities(t *testing.T) {
	cs := NewCullablesSystem()
	elapsed := 0.0
	doomed := entityWith(&CullablesComponent{Cullables: []Cullable{
		func(delta float64) bool {
			elapsed += delta
			return elapsed >= 1
		},
	}})
	kept := entityWith(&CullablesComponent{Cullables: []Cullable{func(float64) bool { return false }}})
	cs.Add(doomed)
	cs.Add(kept)

	require.NoError(t, cs.Update(0.5))
	assert.False(t, doomed.IsDead())
	require.NoError(t, cs.Update(0.5))
	assert.True(t, doomed.IsDead())
	assert.False(t, kept.IsDead())
}

func TestPointsSystemNotifiesChanges(t *testing.T) {
	ps := NewPointsSystem()

	health := NewPoints(0, 30, 30)
	var seen []int
	c := NewPointsComponent()
	c.PutPoints("health", health, func(p *Points) { seen = append(seen, p.Current()) })
	ps.Add(entityWith(c))

	require.NoError(t, ps.Update(0.1))
	assert.Empty(t, seen)

	health.Translate(-10)
	require.NoError(t, ps.Update(0.1))
	health.Translate(-100)
	require.NoError(t, ps.Update(0.1))
	health.Set(0)
	require.NoError(t, ps.Update(0.1))

	assert.Equal(t, []int{20, 0}, seen)
	assert.True(t, health.IsMin())

	health.SetToMax()
	assert.True(t, health.IsMax())
	assert.Equal(t, 30, NewPoints(0, 30, 99).Current())
}

func TestUpdatablesSystem(t *testing.T) {
	us := NewUpdatablesSystem()
	total := 0.0
	us.Add(entityWith(&UpdatablesComponent{Updatables: []Updatable{
		func(delta float64) { total += delta },
		nil,
		func(delta float64) { total += delta },
	}}))

	require.NoError(t, us.Update(0.25))
	assert.InDelta(t, 0.5, total, 1e-9)

	us.SetOn(false)
	require.NoError(t, us.Update(0.25))
	assert.InDelta(t, 0.5, total, 1e-9)
}

func testFrames(n int) []*drawables.TextureRegion {
	atlas := drawables.NewTextureAtlas()
	atlas.AddPage("page", image.NewRGBA(image.Rect(0, 0, 16*n, 16)))
	for i := 0; i < n; i++ {
		atlas.AddRegion("page", "run", i, image.Rect(16*i, 0, 16*(i+1), 16))
	}
	return atlas.FindRegions("run")
}

func TestAnimationsSystemUpdatesSprite(t *testing.T) {
	as := NewAnimationsSystem()

	frames := testFrames(3)
	sprite := drawables.NewSprite(drawables.PLAYGROUND, 0)
	key := "run"
	animator := NewAnimator(sprite, map[string]*Animation{
		"run":  NewAnimation(frames, 0.1, true),
		"idle": NewAnimation(frames[:1], 1, false),
	}, func() string { return key })
	as.Add(entityWith(&AnimationsComponent{Animators: []*Animator{animator}}))

	require.NoError(t, as.Update(0))
	assert.Same(t, frames[0], sprite.Region)
	assert.Equal(t, "run", animator.CurrentKey())

	require.NoError(t, as.Update(0.15))
	assert.Same(t, frames[1], sprite.Region)

	require.NoError(t, as.Update(0.2))
	assert.Same(t, frames[0], sprite.Region)

	key = "idle"
	require.NoError(t, as.Update(0.05))
	assert.Equal(t, "idle", animator.CurrentKey())
	assert.Same(t, frames[0], sprite.Region)
}

func TestAnimationFinishes(t *testing.T) {
	a := NewAnimation(testFrames(2), 0.5, false)
	assert.InDelta(t, 1.0, a.Duration(), 1e-9)
	a.Update(0.6)
	assert.Equal(t, 1, a.FrameIndex())
	assert.False(t, a.IsFinished())
	a.Update(5)
	assert.True(t, a.IsFinished())
	assert.Equal(t, 1, a.FrameIndex())
}

func TestDrawableSystemsFeedConsumers(t *testing.T) {
	var drawn []drawables.ComparableDrawable
	consume := func(d drawables.ComparableDrawable) { drawn = append(drawn, d) }

	fs, err := NewFontsSystem(consume)
	require.NoError(t, err)
	ss, err := NewSpritesSystem(consume)
	require.NoError(t, err)

	visible := drawables.NewFontHandle(drawables.DefaultTypeface(), "hello", math.NewVec2Zero())
	hidden := drawables.NewFontHandle(drawables.DefaultTypeface(), "hidden", math.NewVec2Zero())
	hidden.Hidden = true
	fs.Add(entityWith(&FontsComponent{Fonts: []*drawables.FontHandle{visible, hidden}}))

	sprite := drawables.NewSprite(drawables.PLAYGROUND, 1)
	sprite.Region = testFrames(1)[0]
	blank := drawables.NewSprite(drawables.PLAYGROUND, 2)
	followed := false
	ss.Add(entityWith(&SpritesComponent{
		Sprites:    []*drawables.Sprite{sprite, blank},
		UpdateFunc: func(float64) { followed = true },
	}))

	require.NoError(t, fs.Update(0.1))
	require.NoError(t, ss.Update(0.1))

	require.Len(t, drawn, 2)
	assert.Same(t, visible, drawn[0])
	assert.Same(t, sprite, drawn[1])
	assert.True(t, followed)

	_, err = NewFontsSystem(nil)
	assert.Error(t, err)
	_, err = NewSpritesSystem(nil)
	assert.Error(t, err)
}

func TestDrawableShapesSystemDebugShapes(t *testing.T) {
	var shapes []drawables.DrawableShape
	ds, err := NewDrawableShapesSystem(func(s drawables.DrawableShape) { shapes = append(shapes, s) }, false)
	require.NoError(t, err)

	prod := drawables.NewRectShape(math.NewRect(0, 0, 1, 1), nil, drawables.FILLED)
	debug := &drawables.LineShape{From: math.NewVec2(0, 0), To: math.NewVec2(1, 1)}
	ds.Add(entityWith(&DrawableShapesComponent{
		Shapes:      []ShapeSupplier{func() drawables.DrawableShape { return prod }, func() drawables.DrawableShape { return nil }},
		DebugShapes: []ShapeSupplier{func() drawables.DrawableShape { return debug }},
	}))

	require.NoError(t, ds.Update(0.1))
	assert.Len(t, shapes, 1)

	shapes = nil
	ds.SetDebug(true)
	require.NoError(t, ds.Update(0.1))
	require.Len(t, shapes, 2)
	assert.Same(t, debug, shapes[1])
}

type audioRecorder struct {
	sounds     []SoundRequest
	music      []MusicRequest
	stopSounds []interface{}
	stopMusic  int
}

func (r *audioRecorder) config() *AudioSystemConfig {
	return &AudioSystemConfig{
		PlaySound:         func(req SoundRequest) { r.sounds = append(r.sounds, req) },
		PlayMusic:         func(req MusicRequest) { r.music = append(r.music, req) },
		StopSound:         func(source interface{}) { r.stopSounds = append(r.stopSounds, source) },
		StopMusic:         func() { r.stopMusic++ },
		StopSoundsWhenOff: true,
		StopMusicWhenOff:  true,
	}
}

func TestAudioSystemDrainsRequests(t *testing.T) {
	_, err := NewAudioSystem(&AudioSystemConfig{})
	require.Error(t, err)

	rec := &audioRecorder{}
	as, err := NewAudioSystem(rec.config())
	require.NoError(t, err)

	c := NewAudioComponent()
	as.Add(entityWith(c))

	c.RequestSound("jump", false)
	c.RequestMusic("theme", true)
	c.RequestStopSound("alarm")
	assert.Equal(t, 3, c.Pending())

	require.NoError(t, as.Update(0.1))
	assert.Equal(t, []SoundRequest{{Source: "jump"}}, rec.sounds)
	assert.Equal(t, []MusicRequest{{Source: "theme", Loop: true}}, rec.music)
	assert.Equal(t, []interface{}{"alarm"}, rec.stopSounds)
	assert.Zero(t, c.Pending())

	require.NoError(t, as.Update(0.1))
	assert.Len(t, rec.sounds, 1)
}

func TestAudioSystemOffDropsRequests(t *testing.T) {
	rec := &audioRecorder{}
	as, err := NewAudioSystem(rec.config())
	require.NoError(t, err)
	c := NewAudioComponent()
	as.Add(entityWith(c))

	as.SetOn(false)
	assert.Equal(t, []interface{}{nil}, rec.stopSounds)
	assert.Equal(t, 1, rec.stopMusic)

	c.RequestSound("jump", false)
	c.RequestStopMusic()
	require.NoError(t, as.Update(0.1))
	assert.Empty(t, rec.sounds)

	as.SetOn(true)
	require.NoError(t, as.Update(0.1))
	assert.Empty(t, rec.sounds)
	assert.Equal(t, 1, rec.stopMusic)
	assert.Zero(t, c.Pending())
}
