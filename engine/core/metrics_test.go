package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsUpdate(t *testing.T) {
	require.NoError(t, MetricsInitialize())

	for i := 0; i < int(AVG_COUNT); i++ {
		MetricsUpdate(0.010)
	}
	assert.InDelta(t, 10.0, MetricsFrameTime(), 1e-6)
	assert.Zero(t, MetricsFPS(), "no full second accumulated yet")

	for i := 0; i < 80; i++ {
		MetricsUpdate(0.010)
	}
	assert.Greater(t, MetricsFPS(), 0.0)

	families, err := MetricsRegistry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["rocketpartners_frames_total"])
	assert.True(t, names["rocketpartners_frame_seconds"])
	assert.True(t, names["rocketpartners_fps"])
}
