package core

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const AVG_COUNT uint8 = 30

type MetricsState struct {
	FrameAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64

	registry   *prometheus.Registry
	fpsGauge   prometheus.Gauge
	frameTimes prometheus.Histogram
	frameCount prometheus.Counter
}

var metricsMu sync.Mutex
var metricsState *MetricsState = nil

func newMetricsState() *MetricsState {
	ms := &MetricsState{
		registry: prometheus.NewRegistry(),
		fpsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rocketpartners",
			Name:      "fps",
			Help:      "Frames rendered during the last full second.",
		}),
		frameTimes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rocketpartners",
			Name:      "frame_seconds",
			Help:      "Time spent on a single frame.",
			Buckets:   []float64{0.001, 0.004, 0.008, 0.0167, 0.033, 0.05, 0.1, 0.25},
		}),
		frameCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rocketpartners",
			Name:      "frames_total",
			Help:      "Total number of frames processed.",
		}),
	}
	ms.registry.MustRegister(ms.fpsGauge, ms.frameTimes, ms.frameCount)
	return ms
}

// MetricsInitialize (re)creates the frame metrics and their registry.
func MetricsInitialize() error {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	metricsState = newMetricsState()
	return nil
}

// MetricsRegistry exposes the prometheus registry holding the frame metrics.
func MetricsRegistry() *prometheus.Registry {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState == nil {
		return nil
	}
	return metricsState.registry
}

func MetricsUpdate(frame_elapsed_time float64) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState == nil {
		return
	}

	metricsState.frameTimes.Observe(frame_elapsed_time)
	metricsState.frameCount.Inc()

	// Calculate frame ms average
	frame_ms := (frame_elapsed_time * 1000.0)
	metricsState.MStimes[metricsState.FrameAVGCounter] = frame_ms
	if metricsState.FrameAVGCounter == AVG_COUNT-1 {
		var sum float64
		for i := uint8(0); i < AVG_COUNT; i++ {
			sum += metricsState.MStimes[i]
		}
		metricsState.MSavg = sum / float64(AVG_COUNT)
	}
	metricsState.FrameAVGCounter++
	metricsState.FrameAVGCounter %= AVG_COUNT

	// Calculate Frames per second.
	metricsState.AccumulatedFrameMS += frame_ms
	if metricsState.AccumulatedFrameMS > 1000 {
		metricsState.FPS = float64(metricsState.Frames)
		metricsState.fpsGauge.Set(metricsState.FPS)
		metricsState.AccumulatedFrameMS -= 1000
		metricsState.Frames = 0
	}

	// Count all Frames.
	metricsState.Frames++
}

func MetricsFPS() float64 {
	fps, _ := MetricsFrame()
	return fps
}

func MetricsFrameTime() float64 {
	_, avg := MetricsFrame()
	return avg
}

func MetricsFrame() (float64, float64) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState == nil {
		return 0, 0
	}
	return metricsState.FPS, metricsState.MSavg
}
