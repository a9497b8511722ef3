package buffer

import vecmath "github.com/cwbudde/algo-vecmath"

// AddInPlace performs dst[i] += src[i]. Slices must have equal length.
func AddInPlace(dst, src []float64) {
	if len(dst) == 0 {
		return
	}

	vecmath.AddBlockInPlace(dst, src)
}

// ScaleInPlace multiplies every sample by g. A gain of exactly 1 is a no-op,
// so unity stages stay bit-exact.
func ScaleInPlace(dst []float64, g float64) {
	if g == 1 || len(dst) == 0 {
		return
	}

	vecmath.ScaleBlockInPlace(dst, g)
}

// PeakAbs returns max(|x[i]|), or 0 for an empty slice.
func PeakAbs(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return vecmath.MaxAbs(x)
}

// Accumulate adds src into dst channel by channel. Both buffers must have
// the same shape and sample rate.
func (a *Audio) Accumulate(src *Audio) error {
	if err := checkShape(a, src); err != nil {
		return err
	}

	for ch := range a.channels {
		AddInPlace(a.channels[ch], src.channels[ch])
	}

	return nil
}

// Scale multiplies every channel by g in place.
func (a *Audio) Scale(g float64) {
	for _, samples := range a.channels {
		ScaleInPlace(samples, g)
	}
}

// Peak returns the largest absolute sample value across all channels.
func (a *Audio) Peak() float64 {
	peak := 0.0
	for _, samples := range a.channels {
		if p := PeakAbs(samples); p > peak {
			peak = p
		}
	}

	return peak
}
