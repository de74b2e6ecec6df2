package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/rocketpartners/engine/core"
)

func TestCodesAreInTheApplicationRange(t *testing.T) {
	seen := map[core.SystemEventCode]bool{}
	for _, code := range All() {
		assert.Greater(t, code, core.MAX_EVENT_CODE)
		assert.False(t, seen[code], "duplicate code %d", code)
		seen[code] = true
	}
	assert.Len(t, seen, 7)
	assert.Equal(t, "GAME_OVER", Name(GAME_OVER))
	assert.Equal(t, "EVENT(1)", Name(core.EVENT_CODE_APPLICATION_QUIT))
}
