package world

import (
	"github.com/spaghettifunk/rocketpartners/engine/core"
	engineworld "github.com/spaghettifunk/rocketpartners/engine/world"
)

// Property keys looked up on bodies and fixtures.
const (
	PROP_OWNER     = "owner"
	PROP_ON_GROUND = "on_ground"
)

// Damager is the owner of a DAMAGER fixture.
type Damager interface {
	Damage() int
}

// Damageable is the owner of a DAMAGEABLE fixture.
type Damageable interface {
	TakeDamage(damager Damager)
}

// Collectable is the owner of an ITEM fixture.
type Collectable interface {
	Collect(collector interface{})
}

// Owner returns the object registered as the owner of the fixture, falling back
// to the owner of its body.
func Owner(f *engineworld.Fixture) interface{} {
	if f == nil {
		return nil
	}
	if o, ok := f.Properties[PROP_OWNER]; ok {
		return o
	}
	if f.Body != nil {
		return f.Body.Properties[PROP_OWNER]
	}
	return nil
}

// ContactListener routes the contacts between interacting fixtures to their
// owners.
type ContactListener struct{}

func NewContactListener() *ContactListener {
	return &ContactListener{}
}

func (l *ContactListener) BeginContact(contact engineworld.Contact, _ float32) {
	if damageable, damager, ok := contact.FixturesInOrder(DAMAGEABLE, DAMAGER); ok {
		l.damage(damageable, damager)
		return
	}
	if player, item, ok := contact.FixturesInOrder(PLAYER, ITEM); ok {
		collectable, ok := Owner(item).(Collectable)
		if !ok {
			core.LogDebug("item fixture without a collectable owner")
			return
		}
		collectable.Collect(Owner(player))
	}
}

// ContinueContact keeps damaging while the fixtures overlap; the damageable
// owner decides whether it is still recovering.
func (l *ContactListener) ContinueContact(contact engineworld.Contact, _ float32) {
	if damageable, damager, ok := contact.FixturesInOrder(DAMAGEABLE, DAMAGER); ok {
		l.damage(damageable, damager)
	}
}

func (l *ContactListener) EndContact(engineworld.Contact, float32) {}

func (l *ContactListener) damage(damageable, damager *engineworld.Fixture) {
	target, ok := Owner(damageable).(Damageable)
	if !ok {
		return
	}
	source, ok := Owner(damager).(Damager)
	if !ok {
		return
	}
	target.TakeDamage(source)
}
