package design

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// rbj holds the intermediate terms shared by the Audio EQ Cookbook designs.
type rbj struct {
	cosW  float64
	alpha float64
	amp   float64 // 10^(gainDB/40)
}

func newRBJ(freq, gainDB, q, sampleRate float64) (rbj, bool) {
	if !realisable(freq, sampleRate) || !(q > 0) || math.IsInf(q, 0) {
		return rbj{}, false
	}

	w := 2 * math.Pi * freq / sampleRate

	return rbj{
		cosW:  math.Cos(w),
		alpha: math.Sin(w) / (2 * q),
		amp:   math.Pow(10, gainDB/40),
	}, true
}

// normalise divides by a0. A degenerate a0 yields zero coefficients.
func normalise(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{B0: b0 / a0, B1: b1 / a0, B2: b2 / a0, A1: a1 / a0, A2: a2 / a0}
}

// Peak designs a peaking EQ with gainDB at freq and bandwidth set by q.
// A non-positive q yields zero coefficients.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	p, ok := newRBJ(freq, gainDB, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	aa, ad := p.alpha*p.amp, p.alpha/p.amp

	return normalise(1+aa, -2*p.cosW, 1-aa, 1+ad, -2*p.cosW, 1-ad)
}

// HighShelf designs a shelf with gainDB above freq.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	p, ok := newRBJ(freq, gainDB, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	a, c := p.amp, p.cosW
	beta := 2 * math.Sqrt(a) * p.alpha

	return normalise(
		a*((a+1)+(a-1)*c+beta),
		-2*a*((a-1)+(a+1)*c),
		a*((a+1)+(a-1)*c-beta),
		(a+1)-(a-1)*c+beta,
		2*((a-1)-(a+1)*c),
		(a+1)-(a-1)*c-beta,
	)
}

// Highpass designs a 12 dB/octave high-pass.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	p, ok := newRBJ(freq, 0, q, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	b := (1 + p.cosW) / 2

	return normalise(b, -2*b, b, 1+p.alpha, -2*p.cosW, 1-p.alpha)
}

// BS.1770 K-weighting corners.
const (
	kShelfHz     = 1500.0
	kShelfGainDB = 4.0
	kHighpassHz  = 38.0
)

// KWeighting returns the loudness pre-filter in processing order: a +4 dB
// shelf above 1.5 kHz and a 38 Hz high-pass. A section is zero when the
// sample rate cannot represent its corner.
func KWeighting(sampleRate float64) [2]biquad.Coefficients {
	return [2]biquad.Coefficients{
		HighShelf(kShelfHz, kShelfGainDB, defaultQ, sampleRate),
		Highpass(kHighpassHz, defaultQ, sampleRate),
	}
}
