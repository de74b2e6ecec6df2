package world

import (
	engineworld "github.com/spaghettifunk/rocketpartners/engine/world"
)

// FilterMap declares the fixture categories that interact. Every pair not
// listed here, in either direction, is ignored by the world system.
func FilterMap() *engineworld.FilterMap {
	return engineworld.NewFilterMap(map[interface{}][]interface{}{
		PLAYER:     {ITEM},
		DAMAGEABLE: {DAMAGER},
	})
}
