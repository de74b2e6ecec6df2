package world

import (
	engineworld "github.com/spaghettifunk/rocketpartners/engine/world"
)

// SpecialCollision resolves game specific pairs before the standard handler.
// It returns true when the pair was handled.
type SpecialCollision func(a, b *engineworld.Body) bool

// CollisionHandler runs the special collision hook, then the standard push-out,
// and marks dynamic bodies pushed upwards as standing on the ground.
type CollisionHandler struct {
	Special  SpecialCollision
	standard engineworld.StandardCollisionHandler
}

func NewCollisionHandler(special SpecialCollision) *CollisionHandler {
	return &CollisionHandler{Special: special}
}

func (h *CollisionHandler) HandleCollision(a, b *engineworld.Body) bool {
	if h.Special != nil && h.Special(a, b) {
		return true
	}
	dynamic := a
	if b.Type == engineworld.DYNAMIC {
		dynamic = b
	}
	before := dynamic.Bounds.Y
	if !h.standard.HandleCollision(a, b) {
		return false
	}
	if dynamic.Bounds.Y > before {
		dynamic.Properties[PROP_ON_GROUND] = true
	}
	return true
}

// OnGround reports whether a collision pushed the body up since the flag was
// last cleared.
func OnGround(body *engineworld.Body) bool {
	v, _ := body.Properties[PROP_ON_GROUND].(bool)
	return v
}

// ClearOnGround resets the ground flag, usually before each world step.
func ClearOnGround(body *engineworld.Body) {
	delete(body.Properties, PROP_ON_GROUND)
}
