package systems

import (
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/ecs"
)

// Animation cycles through frames, each shown for FrameDuration seconds.
type Animation struct {
	Frames        []*drawables.TextureRegion
	FrameDuration float64
	Loop          bool

	elapsed float64
}

func NewAnimation(frames []*drawables.TextureRegion, frameDuration float64, loop bool) *Animation {
	return &Animation{
		Frames:        frames,
		FrameDuration: frameDuration,
		Loop:          loop,
	}
}

func (a *Animation) Duration() float64 {
	return a.FrameDuration * float64(len(a.Frames))
}

func (a *Animation) Update(delta float64) {
	a.elapsed += delta
	if a.Loop && a.Duration() > 0 {
		for a.elapsed >= a.Duration() {
			a.elapsed -= a.Duration()
		}
	}
}

func (a *Animation) Reset() { a.elapsed = 0 }

// IsFinished is always false for looping animations.
func (a *Animation) IsFinished() bool {
	return !a.Loop && a.elapsed >= a.Duration()
}

func (a *Animation) FrameIndex() int {
	if len(a.Frames) == 0 || a.FrameDuration <= 0 {
		return 0
	}
	i := int(a.elapsed / a.FrameDuration)
	if i >= len(a.Frames) {
		i = len(a.Frames) - 1
	}
	return i
}

func (a *Animation) CurrentRegion() *drawables.TextureRegion {
	if len(a.Frames) == 0 {
		return nil
	}
	return a.Frames[a.FrameIndex()]
}

// Animator plays on its sprite the animation named by KeySupplier. Switching
// key restarts the new animation from its first frame.
type Animator struct {
	Sprite      *drawables.Sprite
	Animations  map[string]*Animation
	KeySupplier func() string

	current string
}

func NewAnimator(sprite *drawables.Sprite, animations map[string]*Animation, keySupplier func() string) *Animator {
	return &Animator{
		Sprite:      sprite,
		Animations:  animations,
		KeySupplier: keySupplier,
	}
}

func (a *Animator) CurrentKey() string { return a.current }

func (a *Animator) Update(delta float64) {
	if a.KeySupplier == nil || a.Sprite == nil {
		return
	}
	key := a.KeySupplier()
	animation, ok := a.Animations[key]
	if !ok {
		return
	}
	if key != a.current {
		a.current = key
		animation.Reset()
	} else {
		animation.Update(delta)
	}
	if region := animation.CurrentRegion(); region != nil {
		a.Sprite.Region = region
	}
}

type AnimationsComponent struct {
	Animators []*Animator
}

type AnimationsSystem struct {
	*ecs.BaseGameSystem
}

func NewAnimationsSystem() *AnimationsSystem {
	as := &AnimationsSystem{
		BaseGameSystem: ecs.NewBaseGameSystem(ANIMATIONS_SYSTEM, ecs.ComponentType[*AnimationsComponent]()),
	}
	as.Process = func(e *ecs.GameEntity, delta float64) error {
		c, _ := ecs.GetComponent[*AnimationsComponent](e)
		for _, animator := range c.Animators {
			animator.Update(delta)
		}
		return nil
	}
	return as
}
