package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// DefaultFFTSize is the analysis frame length for the spectral centroid.
const DefaultFFTSize = 2048

// Report describes the level and spectral balance of a buffer.
type Report struct {
	Channels   int
	SampleRate int
	Frames     int

	// PeakDBFS is the largest absolute sample across channels in dBFS.
	PeakDBFS float64
	// RMSDBFS is the RMS level over all channels in dBFS.
	RMSDBFS float64
	// ClippedSamples counts samples with magnitude above full scale.
	ClippedSamples int
	// LoudnessLUFS is the gated integrated loudness, -Inf when the buffer
	// is silent or shorter than 400 ms.
	LoudnessLUFS float64
	// CentroidHz is the power-weighted mean frequency of the mono mixdown.
	// Zero for silence or input shorter than one frame.
	CentroidHz float64
}

// Clipped reports whether any sample exceeded full scale.
func (r Report) Clipped() bool { return r.ClippedSamples > 0 }

// Duration returns the length in seconds.
func (r Report) Duration() float64 {
	if r.SampleRate <= 0 {
		return 0
	}

	return float64(r.Frames) / float64(r.SampleRate)
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("channels", r.Channels),
		slog.Int("sample_rate", r.SampleRate),
		slog.Float64("seconds", r.Duration()),
		slog.String("peak_dbfs", formatDB(r.PeakDBFS)),
		slog.String("rms_dbfs", formatDB(r.RMSDBFS)),
		slog.String("loudness_lufs", formatDB(r.LoudnessLUFS)),
		slog.Int("clipped", r.ClippedSamples),
		slog.Float64("centroid_hz", math.Round(r.CentroidHz)),
	)
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%.2f", v)
}

// Analyze computes a Report for a.
func Analyze(a *buffer.Audio) (Report, error) {
	if a == nil {
		return Report{}, errors.New("analysis: nil buffer")
	}

	r := Report{
		Channels:   a.NumChannels(),
		SampleRate: a.SampleRate(),
		Frames:     a.NumFrames(),
	}

	var (
		peak   float64
		energy float64
	)

	for ch := range a.NumChannels() {
		data := a.Channel(ch)
		peak = math.Max(peak, vecmath.MaxAbs(data))
		energy += vecmath.DotProduct(data, data)

		for _, x := range data {
			if math.Abs(x) > 1 {
				r.ClippedSamples++
			}
		}
	}

	r.PeakDBFS = core.LinearToDB(peak)

	total := r.Channels * r.Frames
	if total > 0 {
		r.RMSDBFS = core.LinearPowerToDB(energy / float64(total))
	} else {
		r.RMSDBFS = math.Inf(-1)
	}

	r.LoudnessLUFS = IntegratedLoudness(a)

	centroid, err := SpectralCentroid(buffer.Mixdown(a).Channel(0), float64(a.SampleRate()), DefaultFFTSize)
	if err != nil {
		return Report{}, err
	}

	r.CentroidHz = centroid

	return r, nil
}

// SpectralCentroid returns the power-weighted mean frequency of x, averaged
// over non-overlapping Hann-windowed frames of fftSize samples. fftSize must
// be a power of two. It returns 0 when x is silent or shorter than fftSize.
func SpectralCentroid(x []float64, sampleRate float64, fftSize int) (float64, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return 0, fmt.Errorf("analysis: fft size must be a power of two: %d", fftSize)
	}

	if sampleRate <= 0 {
		return 0, fmt.Errorf("analysis: sample rate must be positive: %g", sampleRate)
	}

	if len(x) < fftSize {
		return 0, nil
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("analysis: fft plan: %w", err)
	}

	bins := fftSize/2 + 1
	win := hann(fftSize)

	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * sampleRate / float64(fftSize)
	}

	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)
	re := make([]float64, bins)
	im := make([]float64, bins)
	power := make([]float64, bins)
	acc := make([]float64, bins)

	for start := 0; start+fftSize <= len(x); start += fftSize {
		for i := range in {
			in[i] = complex(x[start+i]*win[i], 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return 0, fmt.Errorf("analysis: fft: %w", err)
		}

		for k := range bins {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}

		vecmath.Power(power, re, im)
		vecmath.AddBlockInPlace(acc, power)
	}

	total := vecmath.Sum(acc)
	if total <= 0 {
		return 0, nil
	}

	return vecmath.DotProduct(freqs, acc) / total, nil
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	return w
}
