package entities

import (
	"fmt"
	"image/color"

	"github.com/spaghettifunk/rocketpartners/engine/controller"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
	"github.com/spaghettifunk/rocketpartners/engine/math"
	"github.com/spaghettifunk/rocketpartners/engine/systems"
	engineworld "github.com/spaghettifunk/rocketpartners/engine/world"
	"github.com/spaghettifunk/rocketpartners/game/assets"
	"github.com/spaghettifunk/rocketpartners/game/controllers"
	"github.com/spaghettifunk/rocketpartners/game/events"
	"github.com/spaghettifunk/rocketpartners/game/world"
)

const (
	MAX_HEALTH = 30
	MIN_HEALTH = 0

	DAMAGE_DURATION       = 0.75
	DAMAGE_RECOVERY_TIME  = 1.5
	DAMAGE_FLASH_DURATION = 0.05
	BRAKE_DURATION        = 0.2

	CLAMP_VEL_X = 25
	CLAMP_VEL_Y = 50

	JETPACK_IMPULSE      = 2
	JETDASH_IMPULSE      = 8
	JETDASH_DELTA_SCALAR = 2.5

	MAX_GROUND_RUN_SPEED  = 9
	MAX_JUMP_RUN_SPEED    = 4
	MAX_JETPACK_RUN_SPEED = 2

	RUN_IMPULSE         = 1.5
	GROUND_JUMP_IMPULSE = 15

	SLIP_ANIMATION_THRESHOLD = 0.3
)

// Spawn property holding the bottom center of the player, a math.Vec2.
const PROP_SPAWN_POSITION = "position"

// Health points key in the points component.
const HEALTH = "health"

type Facing int8

const (
	FACING_LEFT  Facing = -1
	FACING_RIGHT Facing = 1
)

/** @brief Everything the player needs from the game. */
type PlayerConfig struct {
	Poller *controller.ControllerPoller
	/** @brief Receives GAME_OVER when the player runs out of health. May be nil. */
	Events *core.EventSystem
	/** @brief Sprite sheet of the player. Without it the player is not drawn. */
	Atlas *drawables.TextureAtlas
	/** @brief Shows the jetpack stamina on screen. May be nil. */
	DebugText func(text string)
}

// Player is the entity driven by the controller.
type Player struct {
	*ecs.GameEntity

	config  *PlayerConfig
	body    *engineworld.Body
	health  *systems.Points
	stamina *JetpackStamina
	audio   *systems.AudioComponent

	sprite        *drawables.Sprite
	flameSprite   *drawables.Sprite
	animator      *systems.Animator
	flameAnimator *systems.Animator

	jumping    *systems.Behavior
	jetpacking *systems.Behavior
	jetdashing *systems.Behavior

	damageTimer         *Timer
	damageRecoveryTimer *Timer
	damageFlashTimer    *Timer
	brakeTimer          *Timer

	facing      Facing
	running     bool
	invincible  bool
	damageFlash bool
}

func NewPlayer(config *PlayerConfig) (*Player, error) {
	if config == nil || config.Poller == nil {
		err := fmt.Errorf("func NewPlayer - config.Poller cannot be nil")
		core.LogError("%s", err)
		return nil, err
	}
	p := &Player{
		GameEntity:          ecs.NewGameEntity(),
		config:              config,
		stamina:             NewJetpackStamina(),
		audio:               systems.NewAudioComponent(),
		damageTimer:         NewTimer(DAMAGE_DURATION),
		damageRecoveryTimer: NewTimer(DAMAGE_RECOVERY_TIME),
		damageFlashTimer:    NewTimer(DAMAGE_FLASH_DURATION),
		brakeTimer:          NewTimer(BRAKE_DURATION),
		facing:              FACING_RIGHT,
	}
	p.AddComponent(p.audio)
	p.AddComponent(p.defineBodyComponent())
	p.AddComponent(p.defineBehaviorsComponent())
	p.AddComponent(p.defineUpdatablesComponent())
	p.AddComponent(p.defineSpritesComponent())
	p.AddComponent(p.defineAnimationsComponent())
	p.AddComponent(p.definePointsComponent())
	p.AddComponent(p.defineControllerComponent())
	p.OnSpawn = p.spawn
	return p, nil
}

func (p *Player) spawn(props core.Properties) {
	if pos, ok := props[PROP_SPAWN_POSITION].(math.Vec2); ok {
		p.body.SetPosition(math.NewVec2(pos.X-p.body.Bounds.Width/2, pos.Y))
	}
	p.body.Velocity = math.NewVec2Zero()
	p.body.GravityOn = true
	world.ClearOnGround(p.body)

	p.damageTimer.SetToEnd()
	p.damageRecoveryTimer.SetToEnd()
	p.damageFlashTimer.SetToEnd()
	p.brakeTimer.SetToEnd()

	p.health.SetToMax()
	p.stamina.Reset()
	p.facing = FACING_RIGHT
	p.running = false
	p.invincible = false
	p.damageFlash = false
}

func (p *Player) Body() *engineworld.Body        { return p.body }
func (p *Player) Health() *systems.Points        { return p.health }
func (p *Player) Stamina() *JetpackStamina       { return p.stamina }
func (p *Player) Audio() *systems.AudioComponent { return p.audio }
func (p *Player) Sprite() *drawables.Sprite      { return p.sprite }
func (p *Player) Facing() Facing                 { return p.facing }
func (p *Player) IsRunning() bool                { return p.running }
func (p *Player) IsJumping() bool                { return p.jumping.Running() }
func (p *Player) IsJetpacking() bool             { return p.jetpacking.Running() }
func (p *Player) IsJetdashing() bool             { return p.jetdashing.Running() }
func (p *Player) IsDamaged() bool                { return !p.damageTimer.IsFinished() }
func (p *Player) SetInvincible(invincible bool)  { p.invincible = invincible }

// IsInvincible holds while damaged, while recovering and when forced.
func (p *Player) IsInvincible() bool {
	return p.invincible || !p.damageTimer.IsFinished() || !p.damageRecoveryTimer.IsFinished()
}

func (p *Player) OnGround() bool {
	return world.OnGround(p.body)
}

// TakeDamage implements world.Damageable.
func (p *Player) TakeDamage(damager world.Damager) {
	if p.IsInvincible() {
		return
	}
	p.health.Translate(-damager.Damage())
	p.audio.RequestSound(assets.PLAYER_DAMAGE_SOUND, false)
	p.damageTimer.Reset()
	p.damageRecoveryTimer.Reset()
}

func (p *Player) defineBodyComponent() *systems.BodyComponent {
	body := engineworld.NewBody(engineworld.DYNAMIC, math.NewRect(0, 0, 0.85*world.PPM, 1.25*world.PPM))
	body.GravityOn = true
	body.Properties[world.PROP_OWNER] = p

	full := func(t world.FixtureType) *engineworld.Fixture {
		return engineworld.NewFixture(t, body.Bounds.Width, body.Bounds.Height)
	}
	body.AddFixture(full(world.BODY))
	body.AddFixture(full(world.PLAYER))
	body.AddFixture(full(world.DAMAGEABLE))
	feet := body.AddFixture(engineworld.NewFixture(world.FEET, 0.6*world.PPM, 0.1*world.PPM))
	feet.Offset.Y = -0.625 * world.PPM

	body.PreProcess = func(float32) {
		gravity := float32(world.NORMAL_GRAVITY)
		if world.OnGround(body) {
			gravity = world.GROUND_GRAVITY
		}
		body.Gravity = math.NewVec2(0, gravity*world.PPM)
		world.ClearOnGround(body)
	}
	body.PostProcess = func(float32) {
		body.Velocity.X = math.Clamp(body.Velocity.X, -CLAMP_VEL_X*world.PPM, CLAMP_VEL_X*world.PPM)
		body.Velocity.Y = math.Clamp(body.Velocity.Y, -CLAMP_VEL_Y*world.PPM, CLAMP_VEL_Y*world.PPM)
	}
	p.body = body

	colors := map[world.FixtureType]color.Color{
		world.BODY: color.Gray{Y: 0x80},
		world.FEET: color.RGBA{G: 0xff, A: 0xff},
	}
	shapes := &systems.DrawableShapesComponent{}
	shapes.DebugShapes = append(shapes.DebugShapes, func() drawables.DrawableShape {
		return drawables.NewRectShape(body.Bounds, color.RGBA{R: 0x96, G: 0x4b, A: 0xff}, drawables.LINE)
	})
	for _, f := range body.Fixtures {
		c, ok := colors[f.Type.(world.FixtureType)]
		if !ok {
			continue
		}
		shapes.DebugShapes = append(shapes.DebugShapes, func() drawables.DrawableShape {
			return drawables.NewRectShape(f.Bounds(), c, drawables.LINE)
		})
	}
	p.AddComponent(shapes)

	return &systems.BodyComponent{Body: body}
}

func (p *Player) defineUpdatablesComponent() *systems.UpdatablesComponent {
	return &systems.UpdatablesComponent{Updatables: []systems.Updatable{
		func(delta float64) {
			if !p.jetpacking.Running() && !p.jetdashing.Running() {
				p.stamina.Update(delta)
			}
			if p.config.DebugText != nil {
				p.config.DebugText(fmt.Sprintf("Jetpack Stamina: %.2f", p.stamina.ImpulseRatio()))
			}

			p.brakeTimer.Update(delta)
			p.damageTimer.Update(delta)
			if p.damageTimer.IsFinished() && !p.damageRecoveryTimer.IsFinished() {
				p.damageRecoveryTimer.Update(delta)
				p.damageFlashTimer.Update(delta)
				if p.damageFlashTimer.IsFinished() {
					p.damageFlashTimer.Reset()
					p.damageFlash = !p.damageFlash
				}
			}
			if p.damageRecoveryTimer.IsJustFinished() {
				p.damageFlash = false
			}
		},
	}}
}

func (p *Player) clampVelocityX(speed float32) {
	limit := speed * world.PPM
	p.body.Velocity.X = math.Clamp(p.body.Velocity.X, -limit, limit)
}

func (p *Player) defineBehaviorsComponent() *systems.BehaviorsComponent {
	poller := p.config.Poller

	p.jumping = &systems.Behavior{
		Evaluate: func(float64) bool {
			if p.IsDamaged() || !poller.IsPressed(controllers.A) || p.jetdashing.Running() {
				return false
			}
			if p.jumping.Running() {
				return p.body.Velocity.Y > 0
			}
			return poller.IsJustPressed(controllers.A) && p.OnGround()
		},
		Init: func() {
			p.clampVelocityX(MAX_JUMP_RUN_SPEED)
			p.body.Velocity.Y = GROUND_JUMP_IMPULSE * world.PPM
		},
		End: func() {
			if p.body.Velocity.Y > 0 {
				p.body.Velocity.Y = 0
			}
		},
	}

	p.jetpacking = &systems.Behavior{
		Evaluate: func(float64) bool {
			if p.IsDamaged() || !p.stamina.HasStamina() || !poller.IsPressed(controllers.A) ||
				p.OnGround() || p.jumping.Running() || p.jetdashing.Running() {
				return false
			}
			return p.jetpacking.Running() || poller.IsJustPressed(controllers.A)
		},
		Init: func() {
			p.audio.RequestSound(assets.JETPACK_SOUND, true)
			p.stamina.SetJetpacking(true)
			p.body.GravityOn = false
			p.clampVelocityX(MAX_JETPACK_RUN_SPEED)
		},
		Act: func(delta float64) {
			p.stamina.Update(delta)
			p.body.Velocity.Y = JETPACK_IMPULSE * world.PPM
		},
		End: func() {
			p.audio.RequestStopSound(assets.JETPACK_SOUND)
			p.stamina.SetJetpacking(false)
			p.body.GravityOn = true
		},
	}

	p.jetdashing = &systems.Behavior{
		Evaluate: func(float64) bool {
			if p.IsDamaged() || !p.stamina.HasStamina() || !poller.IsPressed(controllers.B) || p.OnGround() {
				return false
			}
			return p.jetdashing.Running() || poller.IsJustPressed(controllers.B)
		},
		Init: func() {
			p.audio.RequestSound(assets.JETDASH_SOUND, false)
			p.stamina.SetJetpacking(true)
			p.body.GravityOn = false
			p.body.Velocity = math.NewVec2(JETDASH_IMPULSE*world.PPM*float32(p.facing), 0)
		},
		Act: func(delta float64) {
			p.stamina.Update(JETDASH_DELTA_SCALAR * delta)
			p.body.Velocity = math.NewVec2(JETDASH_IMPULSE*world.PPM*float32(p.facing), 0)
		},
		End: func() {
			p.stamina.SetJetpacking(false)
			p.body.GravityOn = true
			p.brakeTimer.Reset()
		},
	}

	return &systems.BehaviorsComponent{Behaviors: []*systems.Behavior{p.jumping, p.jetpacking, p.jetdashing}}
}

func (p *Player) defineSpritesComponent() *systems.SpritesComponent {
	p.sprite = drawables.NewSprite(drawables.FOREGROUND, 1)
	p.sprite.Bounds = math.NewRect(0, 0, 2.475*world.PPM, 1.875*world.PPM)

	p.flameSprite = drawables.NewSprite(drawables.FOREGROUND, 0)
	p.flameSprite.Bounds = math.NewRect(0, 0, world.PPM, world.PPM)

	return &systems.SpritesComponent{
		Sprites: []*drawables.Sprite{p.sprite, p.flameSprite},
		UpdateFunc: func(float64) {
			p.sprite.FlipX = p.facing == FACING_LEFT
			p.sprite.Hidden = p.damageFlash
			bottom := p.body.Bounds.Center()
			bottom.Y = p.body.Bounds.Y
			p.sprite.SetCenter(math.NewVec2(bottom.X, bottom.Y+p.sprite.Bounds.Height/2))

			p.flameSprite.Hidden = !p.jetpacking.Running() && !p.jetdashing.Running()
			p.flameSprite.FlipX = p.facing == FACING_LEFT
			offset := math.NewVec2(-0.5*float32(p.facing), -0.25)
			if p.jetdashing.Running() {
				offset = math.NewVec2(-0.75*float32(p.facing), -0.1)
			}
			p.flameSprite.SetCenter(p.body.Bounds.Center().Add(offset.MulScalar(world.PPM)))
		},
	}
}

func frames(atlas *drawables.TextureAtlas, name string) []*drawables.TextureRegion {
	if atlas == nil {
		return nil
	}
	if regions := atlas.FindRegions(name); len(regions) > 0 {
		return regions
	}
	if region := atlas.FindRegion(name); region != nil {
		return []*drawables.TextureRegion{region}
	}
	return nil
}

func (p *Player) animationKey() string {
	if !p.OnGround() {
		if p.jetdashing.Running() {
			return "jetdash"
		}
		if p.jetpacking.Running() {
			return "jetpack"
		}
		if !p.brakeTimer.IsFinished() {
			return "brake"
		}
		return "jump"
	}
	if p.running {
		return "run"
	}
	if p.body.Velocity.X >= SLIP_ANIMATION_THRESHOLD*world.PPM || p.body.Velocity.X <= -SLIP_ANIMATION_THRESHOLD*world.PPM {
		return "slip"
	}
	return "stand"
}

// Animation key, atlas region and timing of every player animation.
var playerAnimations = []struct {
	key      string
	region   string
	duration float64
	loop     bool
}{
	{"stand", "stand", 1, false},
	{"jump", "jump", 1, false},
	{"run", "run", 0.175, true},
	{"jetpack", "jetpack", 1, false},
	{"jetdash", "thrust", 0.05, false},
	{"brake", "brake", 1, false},
	{"slip", "slip", 1, false},
	{"damaged", "damaged", 1, false},
}

const (
	FLAME_ANIMATION = "flame"
	FLAME_REGION    = "jetpackFlame"
)

func (p *Player) defineAnimationsComponent() *systems.AnimationsComponent {
	atlas := p.config.Atlas
	animations := make(map[string]*systems.Animation, len(playerAnimations))
	for _, a := range playerAnimations {
		animations[a.key] = systems.NewAnimation(frames(atlas, a.region), a.duration, a.loop)
	}
	flame := map[string]*systems.Animation{
		FLAME_ANIMATION: systems.NewAnimation(frames(atlas, FLAME_REGION), 0.1, true),
	}
	p.animator = systems.NewAnimator(p.sprite, animations, func() string {
		if p.IsDamaged() {
			return "damaged"
		}
		return p.animationKey()
	})
	p.flameAnimator = systems.NewAnimator(p.flameSprite, flame, func() string { return FLAME_ANIMATION })
	return &systems.AnimationsComponent{Animators: []*systems.Animator{p.animator, p.flameAnimator}}
}

// SetAtlas points every animation at the regions of a new sprite sheet, for
// instance after the sheet was reloaded from disk. Sprites pick the new
// regions up on their next animation update.
func (p *Player) SetAtlas(atlas *drawables.TextureAtlas) {
	p.config.Atlas = atlas
	for _, a := range playerAnimations {
		p.animator.Animations[a.key].Frames = frames(atlas, a.region)
	}
	p.flameAnimator.Animations[FLAME_ANIMATION].Frames = frames(atlas, FLAME_REGION)
}

func (p *Player) Atlas() *drawables.TextureAtlas { return p.config.Atlas }

func (p *Player) definePointsComponent() *systems.PointsComponent {
	c := systems.NewPointsComponent()
	p.health = systems.NewPoints(MIN_HEALTH, MAX_HEALTH, MAX_HEALTH)
	c.PutPoints(HEALTH, p.health, func(points *systems.Points) {
		if points.Current() > MIN_HEALTH {
			return
		}
		core.LogInfo("player %s ran out of health", p.ID())
		p.Kill()
		if p.config.Events != nil {
			_ = p.config.Events.Submit(core.NewEvent(events.GAME_OVER, core.Properties{"player": p}))
		}
	})
	return c
}

// run pushes the player towards dir, up to the speed allowed by its state.
func (p *Player) run(dir Facing, delta float64) {
	p.facing = dir
	p.running = true

	threshold := float32(MAX_JUMP_RUN_SPEED * world.PPM)
	switch {
	case p.OnGround():
		threshold = MAX_GROUND_RUN_SPEED * world.PPM
	case p.jetpacking.Running():
		threshold = MAX_JETPACK_RUN_SPEED * world.PPM
	}
	impulse := float32(RUN_IMPULSE*world.PPM*delta) * world.PPM
	if dir == FACING_LEFT && p.body.Velocity.X > -threshold {
		p.body.Velocity.X -= impulse
	}
	if dir == FACING_RIGHT && p.body.Velocity.X < threshold {
		p.body.Velocity.X += impulse
	}
}

func (p *Player) runActuator(dir Facing, other controllers.ControllerButton) *systems.ButtonActuator {
	stop := func(poller *controller.ControllerPoller) {
		if !poller.IsPressed(other) {
			p.running = false
		}
	}
	return &systems.ButtonActuator{
		OnPressContinued: func(poller *controller.ControllerPoller, delta float64) {
			if p.IsDamaged() {
				stop(poller)
				return
			}
			p.run(dir, delta)
		},
		OnJustReleased: stop,
	}
}

func (p *Player) defineControllerComponent() *systems.ControllerComponent {
	c := systems.NewControllerComponent()
	c.Actuators[controllers.LEFT] = p.runActuator(FACING_LEFT, controllers.RIGHT)
	c.Actuators[controllers.RIGHT] = p.runActuator(FACING_RIGHT, controllers.LEFT)
	return c
}
