package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
)

// RequireAudioNearlyEqual fails t if got and want differ in shape or sample
// rate, or if any sample pair differs by more than eps.
func RequireAudioNearlyEqual(t testing.TB, got, want *buffer.Audio, eps float64) {
	t.Helper()

	if !got.SameShape(want) {
		t.Fatalf("shape mismatch: got %dch x %d @ %d Hz, want %dch x %d @ %d Hz",
			got.NumChannels(), got.NumFrames(), got.SampleRate(),
			want.NumChannels(), want.NumFrames(), want.SampleRate())
	}

	for ch := range got.NumChannels() {
		g, w := got.Channel(ch), want.Channel(ch)
		for i := range g {
			if diff := math.Abs(g[i] - w[i]); diff > eps {
				t.Fatalf("ch %d frame %d: got %v, want %v (diff %v > eps %v)", ch, i, g[i], w[i], diff, eps)
			}
		}
	}
}

// RequireFinite fails t if any sample is NaN or Inf.
func RequireFinite(t testing.TB, a *buffer.Audio) {
	t.Helper()

	for ch := range a.NumChannels() {
		for i, v := range a.Channel(ch) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("ch %d frame %d: non-finite value %v", ch, i, v)
			}
		}
	}
}

// MaxAbsDiff returns the largest absolute sample difference between a and b.
func MaxAbsDiff(a, b *buffer.Audio) (float64, error) {
	if !a.SameShape(b) {
		return 0, fmt.Errorf("shape mismatch: %dch x %d vs %dch x %d",
			a.NumChannels(), a.NumFrames(), b.NumChannels(), b.NumFrames())
	}

	maxDiff := 0.0
	for ch := range a.NumChannels() {
		x, y := a.Channel(ch), b.Channel(ch)
		for i := range x {
			if d := math.Abs(x[i] - y[i]); d > maxDiff {
				maxDiff = d
			}
		}
	}

	return maxDiff, nil
}
