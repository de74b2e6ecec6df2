package world

import "fmt"

// FixtureType is the category of a fixture; the filter map decides which
// categories interact.
type FixtureType uint8

const (
	BLOCK FixtureType = iota
	PLAYER
	BODY
	FEET
	HEAD
	SIDE
	ITEM
	GATE
	FORCE
	SHIELD
	BOUNCER
	DEATH
	DAMAGER
	DAMAGEABLE
	PROJECTILE
	TELEPORTER
)

var fixtureNames = [...]string{
	BLOCK:      "BLOCK",
	PLAYER:     "PLAYER",
	BODY:       "BODY",
	FEET:       "FEET",
	HEAD:       "HEAD",
	SIDE:       "SIDE",
	ITEM:       "ITEM",
	GATE:       "GATE",
	FORCE:      "FORCE",
	SHIELD:     "SHIELD",
	BOUNCER:    "BOUNCER",
	DEATH:      "DEATH",
	DAMAGER:    "DAMAGER",
	DAMAGEABLE: "DAMAGEABLE",
	PROJECTILE: "PROJECTILE",
	TELEPORTER: "TELEPORTER",
}

// FixtureTypes returns every category in declaration order.
func FixtureTypes() []FixtureType {
	out := make([]FixtureType, len(fixtureNames))
	for i := range fixtureNames {
		out[i] = FixtureType(i)
	}
	return out
}

func (t FixtureType) String() string {
	if int(t) < len(fixtureNames) {
		return fixtureNames[t]
	}
	return fmt.Sprintf("FixtureType(%d)", uint8(t))
}

// World units are pixels; PPM converts meters to world units.
const (
	PPM = 32

	NORMAL_GRAVITY = -40
	// Keeps grounded bodies pressed against the floor so they keep sensing it.
	GROUND_GRAVITY = -0.5
)
