// Package observe records render metrics through the OpenTelemetry Metrics
// API. DefaultMetrics uses the global meter provider, which is a no-op until
// the process installs one; tests use NewMetrics with their own provider.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all voicefx metrics.
const meterName = "github.com/cwbudde/algo-voicefx"

// Status values for the status attribute.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the metric instruments for render runs. All fields are safe
// for concurrent use.
type Metrics struct {
	// RenderDuration tracks end-to-end time of one batch request. Use with
	// attributes preset and status.
	RenderDuration metric.Float64Histogram

	// DecodeDuration tracks WAV decode time per input file.
	DecodeDuration metric.Float64Histogram

	// Renders counts finished batch requests by preset and status.
	Renders metric.Int64Counter

	// RenderedSeconds accumulates the audio duration written, by preset.
	RenderedSeconds metric.Float64Counter

	// ActiveRenders tracks requests currently in flight.
	ActiveRenders metric.Int64UpDownCounter
}

// renderBuckets are histogram boundaries in seconds for offline renders.
var renderBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised Metrics using mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	met := &Metrics{}

	var err error

	if met.RenderDuration, err = m.Float64Histogram("voicefx.render.duration",
		metric.WithDescription("Time to decode, evaluate and encode one preset request."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(renderBuckets...),
	); err != nil {
		return nil, err
	}

	if met.DecodeDuration, err = m.Float64Histogram("voicefx.decode.duration",
		metric.WithDescription("Time to decode one input file."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(renderBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Renders, err = m.Int64Counter("voicefx.renders",
		metric.WithDescription("Finished preset requests by preset and status."),
	); err != nil {
		return nil, err
	}

	if met.RenderedSeconds, err = m.Float64Counter("voicefx.rendered_audio",
		metric.WithDescription("Audio duration written by preset."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if met.ActiveRenders, err = m.Int64UpDownCounter("voicefx.active_renders",
		metric.WithDescription("Preset requests currently rendering."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level Metrics built from
// otel.GetMeterProvider on first use.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error

		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})

	return defaultMetrics
}

// RecordRender records one finished request.
func (m *Metrics) RecordRender(ctx context.Context, preset, status string, elapsed time.Duration, audioSeconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("preset", preset),
		attribute.String("status", status),
	)

	m.Renders.Add(ctx, 1, attrs)
	m.RenderDuration.Record(ctx, elapsed.Seconds(), attrs)

	if status == StatusOK && audioSeconds > 0 {
		m.RenderedSeconds.Add(ctx, audioSeconds, metric.WithAttributes(attribute.String("preset", preset)))
	}
}

// RecordDecode records the decode time of one input.
func (m *Metrics) RecordDecode(ctx context.Context, elapsed time.Duration) {
	m.DecodeDuration.Record(ctx, elapsed.Seconds())
}

// TrackActive increments the in-flight gauge and returns the matching
// decrement.
func (m *Metrics) TrackActive(ctx context.Context) func() {
	m.ActiveRenders.Add(ctx, 1)
	return func() { m.ActiveRenders.Add(ctx, -1) }
}
