package events

import (
	"fmt"

	"github.com/spaghettifunk/rocketpartners/engine/core"
)

// Game event codes live above the engine reserved range.
const (
	TURN_CONTROLLER_ON core.SystemEventCode = core.MAX_EVENT_CODE + 1 + iota
	TURN_CONTROLLER_OFF
	GAME_PAUSE
	GAME_RESUME
	PLAYER_SPAWN
	GAME_OVER
	// An asset was reloaded from disk.
	/* Properties usage:
	 * string source = props["source"]
	 */
	ASSET_RELOADED
)

const PROP_SOURCE = "source"

var names = map[core.SystemEventCode]string{
	TURN_CONTROLLER_ON:  "TURN_CONTROLLER_ON",
	TURN_CONTROLLER_OFF: "TURN_CONTROLLER_OFF",
	GAME_PAUSE:          "GAME_PAUSE",
	GAME_RESUME:         "GAME_RESUME",
	PLAYER_SPAWN:        "PLAYER_SPAWN",
	GAME_OVER:           "GAME_OVER",
	ASSET_RELOADED:      "ASSET_RELOADED",
}

// All returns the game event codes in declaration order.
func All() []core.SystemEventCode {
	return []core.SystemEventCode{
		TURN_CONTROLLER_ON,
		TURN_CONTROLLER_OFF,
		GAME_PAUSE,
		GAME_RESUME,
		PLAYER_SPAWN,
		GAME_OVER,
		ASSET_RELOADED,
	}
}

func Name(code core.SystemEventCode) string {
	if n, ok := names[code]; ok {
		return n
	}
	return fmt.Sprintf("EVENT(%d)", code)
}
