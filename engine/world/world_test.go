package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rocketpartners/engine/math"
)

type category int

const (
	catPlayer category = iota
	catItem
	catDamager
	catDamageable
	catBlock
)

func TestFilterMapAllowsDeclaredPairsBothWays(t *testing.T) {
	fm := NewFilterMap(map[interface{}][]interface{}{
		catPlayer:     {catItem},
		catDamageable: {catDamager},
	})

	assert.True(t, fm.Allows(catPlayer, catItem))
	assert.True(t, fm.Allows(catItem, catPlayer))
	assert.True(t, fm.Allows(catDamager, catDamageable))
	assert.False(t, fm.Allows(catPlayer, catDamager))
	assert.False(t, fm.Allows(catBlock, catBlock))
	assert.Equal(t, []interface{}{catItem}, fm.Targets(catPlayer))

	var empty *FilterMap
	assert.False(t, empty.Allows(catPlayer, catItem))
}

func TestContactOrdering(t *testing.T) {
	player := NewFixture(catPlayer, 1, 1)
	item := NewFixture(catItem, 1, 1)
	c := Contact{A: item, B: player}

	assert.True(t, c.FixturesMatch(catPlayer, catItem))
	assert.True(t, c.FixturesMatch(catItem, catPlayer))
	assert.False(t, c.FixturesMatch(catPlayer, catDamager))

	first, second, ok := c.FixturesInOrder(catPlayer, catItem)
	require.True(t, ok)
	assert.Same(t, player, first)
	assert.Same(t, item, second)

	_, _, ok = c.FixturesInOrder(catBlock, catItem)
	assert.False(t, ok)
}

func TestFixtureBoundsFollowBody(t *testing.T) {
	body := NewBody(DYNAMIC, math.NewRect(0, 0, 2, 2))
	feet := body.AddFixture(NewFixture(catPlayer, 1, 0.5))
	feet.Offset = math.NewVec2(0, -1)

	assert.Same(t, body, feet.Body)
	assert.Equal(t, math.NewRect(0.5, -0.25, 1, 0.5), feet.Bounds())

	body.Translate(math.NewVec2(1, 0))
	assert.Equal(t, math.NewRect(1.5, -0.25, 1, 0.5), feet.Bounds())
}

func TestBodyStep(t *testing.T) {
	body := NewBody(DYNAMIC, math.NewRect(0, 0, 1, 1))
	body.Velocity = math.NewVec2(2, 0)
	body.Gravity = math.NewVec2(0, -10)
	body.GravityOn = true

	body.Step(0.5)
	assert.InDelta(t, 1.0, body.Bounds.X, 1e-6)
	assert.InDelta(t, -2.5, body.Bounds.Y, 1e-6)
	assert.True(t, body.PositionDelta().Compare(math.NewVec2(1, -2.5), 1e-6))

	static := NewBody(STATIC, math.NewRect(0, 0, 1, 1))
	static.Velocity = math.NewVec2(5, 5)
	static.Step(1)
	assert.Equal(t, math.NewVec2Zero(), static.Position())
}

func TestStandardCollisionHandlerPushesDynamicOut(t *testing.T) {
	ground := NewBody(STATIC, math.NewRect(0, 0, 10, 1))
	player := NewBody(DYNAMIC, math.NewRect(4, 0.75, 1, 1))
	player.Velocity = math.NewVec2(1, -3)

	h := StandardCollisionHandler{}
	assert.True(t, h.HandleCollision(player, ground))
	assert.InDelta(t, 1.0, player.Bounds.Y, 1e-6)
	assert.Equal(t, float32(0), player.Velocity.Y)
	assert.Equal(t, float32(1), player.Velocity.X)

	assert.False(t, h.HandleCollision(player, ground), "no overlap left")
	assert.False(t, h.HandleCollision(ground, NewBody(STATIC, ground.Bounds)))
}
