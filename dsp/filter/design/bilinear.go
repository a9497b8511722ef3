package design

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
)

// FirstOrderHighpass designs a 6 dB/octave high-pass by the bilinear
// transform with prewarping at freq. B2 and A2 are zero.
func FirstOrderHighpass(freq, sampleRate float64) biquad.Coefficients {
	k, ok := prewarp(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	g := 1 / (1 + k)

	return biquad.Coefficients{B0: g, B1: -g, A1: (k - 1) * g}
}

// FirstOrderLowpass designs a 6 dB/octave low-pass by the bilinear
// transform with prewarping at freq. B2 and A2 are zero.
func FirstOrderLowpass(freq, sampleRate float64) biquad.Coefficients {
	k, ok := prewarp(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	g := 1 / (1 + k)

	return biquad.Coefficients{B0: k * g, B1: k * g, A1: (k - 1) * g}
}

// prewarp returns tan(pi*freq/sampleRate) for a realisable corner.
func prewarp(freq, sampleRate float64) (float64, bool) {
	if !realisable(freq, sampleRate) {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}

// realisable reports whether freq lies strictly between 0 and Nyquist for a
// finite positive sampleRate.
func realisable(freq, sampleRate float64) bool {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return false
	}

	return freq > 0 && freq < sampleRate/2 && !math.IsInf(freq, 0)
}
