package systems

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rocketpartners/engine/controller"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/graph"
)

func testManagerConfig() *SystemManagerConfig {
	rec := &audioRecorder{}
	return &SystemManagerConfig{
		Poller: controller.NewControllerPoller(controller.Buttons{}, fakeKeys{}),
		World:  &WorldSystemConfig{ContactListener: &contactRecorder{}, FixedStep: 1.0 / 150},
		Pathfinding: &PathfindingSystemConfig{
			Factory: func(*PathfindingComponent) *graph.Pathfinder { return nil },
			Timeout: 10 * time.Millisecond,
		},
		Drawables: func(drawables.ComparableDrawable) {},
		Shapes:    func(drawables.DrawableShape) {},
		Audio:     rec.config(),
	}
}

func TestSystemManagerOrder(t *testing.T) {
	sm, err := NewSystemManager(testManagerConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		CONTROLLER_SYSTEM,
		BEHAVIORS_SYSTEM,
		WORLD_SYSTEM,
		CULLABLES_SYSTEM,
		PATHFINDING_SYSTEM,
		POINTS_SYSTEM,
		UPDATABLES_SYSTEM,
		FONTS_SYSTEM,
		ANIMATIONS_SYSTEM,
		SPRITES_SYSTEM,
		DRAWABLE_SHAPES_SYSTEM,
		AUDIO_SYSTEM,
	}, sm.Names())
	assert.Len(t, sm.Systems(), 12)

	ws, ok := GetSystem[*WorldSystem](sm, WORLD_SYSTEM)
	require.True(t, ok)
	assert.Equal(t, WORLD_SYSTEM, ws.Name())

	_, ok = GetSystem[*WorldSystem](sm, AUDIO_SYSTEM)
	assert.False(t, ok)
	_, ok = sm.Get("nope")
	assert.False(t, ok)

	assert.NoError(t, sm.Shutdown())
}

func TestSystemManagerFailsFast(t *testing.T) {
	_, err := NewSystemManager(nil)
	assert.Error(t, err)

	cfg := testManagerConfig()
	cfg.Poller = nil
	_, err = NewSystemManager(cfg)
	assert.Error(t, err)

	cfg = testManagerConfig()
	cfg.Audio = nil
	_, err = NewSystemManager(cfg)
	assert.Error(t, err)
}
