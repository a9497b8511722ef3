package buffer

import "fmt"

// Deinterleave converts frame-major samples (f0c0, f0c1, f1c0, ...) into a
// channel-major buffer. A trailing partial frame is dropped.
func Deinterleave(frames []float64, channels, sampleRate int) (*Audio, error) {
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	n := len(frames) / channels

	out, err := New(channels, n, sampleRate)
	if err != nil {
		return nil, err
	}

	for ch := range out.channels {
		dst := out.channels[ch]
		for i := range dst {
			dst[i] = frames[i*channels+ch]
		}
	}

	return out, nil
}

// Interleave converts the buffer into frame-major order, the layout most
// encoders expect.
func Interleave(a *Audio) []float64 {
	channels := a.NumChannels()
	out := make([]float64, channels*a.NumFrames())

	for ch, src := range a.channels {
		for i, v := range src {
			out[i*channels+ch] = v
		}
	}

	return out
}

// Mixdown averages all channels into a single-channel buffer.
func Mixdown(a *Audio) *Audio {
	out, _ := New(1, a.NumFrames(), a.sampleRate)
	if a.NumChannels() == 1 {
		copy(out.channels[0], a.channels[0])
		return out
	}

	dst := out.channels[0]
	for _, src := range a.channels {
		AddInPlace(dst, src)
	}

	ScaleInPlace(dst, 1/float64(a.NumChannels()))

	return out
}

// checkShape returns ErrShapeMismatch when dst and src differ in shape.
func checkShape(dst, src *Audio) error {
	if !dst.SameShape(src) {
		return fmt.Errorf("%w: %dx%d@%d vs %dx%d@%d", ErrShapeMismatch,
			dst.NumChannels(), dst.NumFrames(), dst.sampleRate,
			src.NumChannels(), src.NumFrames(), src.sampleRate)
	}

	return nil
}
