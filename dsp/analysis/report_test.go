package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
)

func tone(freq, amp float64, frames, sampleRate int) []float64 {
	x := make([]float64, frames)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}

	return x
}

func TestAnalyzeSineLevels(t *testing.T) {
	a, err := buffer.FromChannels(16000, tone(1000, 0.5, 16000, 16000))
	if err != nil {
		t.Fatalf("FromChannels: %v", err)
	}

	r, err := Analyze(a)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if math.Abs(r.PeakDBFS-20*math.Log10(0.5)) > 0.01 {
		t.Errorf("PeakDBFS = %.3f", r.PeakDBFS)
	}

	// Sine RMS is 3.01 dB below its peak.
	if want := 20*math.Log10(0.5) - 3.0103; math.Abs(r.RMSDBFS-want) > 0.01 {
		t.Errorf("RMSDBFS = %.3f, want %.3f", r.RMSDBFS, want)
	}

	if r.Clipped() {
		t.Error("unexpected clipping")
	}

	if math.Abs(r.CentroidHz-1000) > 30 {
		t.Errorf("CentroidHz = %.1f, want ~1000", r.CentroidHz)
	}

	if r.Duration() != 1 || r.Channels != 1 || r.SampleRate != 16000 {
		t.Errorf("unexpected shape: %+v", r)
	}
}

func TestAnalyzeDetectsClipping(t *testing.T) {
	a, _ := buffer.FromChannels(8000, []float64{0.2, 1.5, -1.2, 1.0}, []float64{0, 0, 0, -1.01})

	r, err := Analyze(a)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if r.ClippedSamples != 3 || !r.Clipped() {
		t.Fatalf("ClippedSamples = %d, want 3", r.ClippedSamples)
	}

	if r.PeakDBFS <= 0 {
		t.Fatalf("PeakDBFS = %v, want > 0", r.PeakDBFS)
	}
}

func TestAnalyzeSilence(t *testing.T) {
	a, _ := buffer.New(2, 4096, 16000)

	r, err := Analyze(a)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !math.IsInf(r.PeakDBFS, -1) || !math.IsInf(r.RMSDBFS, -1) || !math.IsInf(r.LoudnessLUFS, -1) {
		t.Fatalf("silence levels: peak=%v rms=%v loudness=%v", r.PeakDBFS, r.RMSDBFS, r.LoudnessLUFS)
	}

	if r.CentroidHz != 0 {
		t.Fatalf("CentroidHz = %v, want 0", r.CentroidHz)
	}

	if _, err := Analyze(nil); err == nil {
		t.Fatal("expected error for nil buffer")
	}
}

func TestSpectralCentroidOrdering(t *testing.T) {
	const sr = 16000

	low, err := SpectralCentroid(tone(300, 0.5, 8192, sr), sr, 1024)
	if err != nil {
		t.Fatalf("SpectralCentroid: %v", err)
	}

	high, err := SpectralCentroid(tone(4000, 0.5, 8192, sr), sr, 1024)
	if err != nil {
		t.Fatalf("SpectralCentroid: %v", err)
	}

	if !(low < high) {
		t.Fatalf("centroid ordering: low=%.1f high=%.1f", low, high)
	}
}

func TestSpectralCentroidArguments(t *testing.T) {
	x := tone(440, 0.5, 4096, 16000)

	if _, err := SpectralCentroid(x, 16000, 1000); err == nil {
		t.Fatal("expected error for non power of two")
	}

	if _, err := SpectralCentroid(x, 0, 1024); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	c, err := SpectralCentroid(x[:100], 16000, 1024)
	if err != nil || c != 0 {
		t.Fatalf("short input: got %v, %v", c, err)
	}
}
