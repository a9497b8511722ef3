package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("buffer: sample rate must be > 0")
	// ErrNoChannels is returned when a buffer would have zero channels.
	ErrNoChannels = errors.New("buffer: at least one channel required")
	// ErrRaggedChannels is returned when channels differ in frame count.
	ErrRaggedChannels = errors.New("buffer: channels differ in length")
	// ErrShapeMismatch is returned when two buffers differ in shape or rate.
	ErrShapeMismatch = errors.New("buffer: shape mismatch")
)

// Audio is a channel-major sample buffer with an associated sample rate.
type Audio struct {
	channels   [][]float64
	sampleRate int
}

// New returns a zero-filled buffer with the given shape.
func New(channels, frames, sampleRate int) (*Audio, error) {
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	if frames < 0 {
		frames = 0
	}

	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}

	return &Audio{channels: data, sampleRate: sampleRate}, nil
}

// FromChannels wraps existing channel slices without copying.
// All channels must have the same length.
func FromChannels(sampleRate int, channels ...[]float64) (*Audio, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	frames := len(channels[0])
	for ch, samples := range channels[1:] {
		if len(samples) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d",
				ErrRaggedChannels, ch+1, len(samples), frames)
		}
	}

	return &Audio{channels: channels, sampleRate: sampleRate}, nil
}

// NewLike returns a zero-filled buffer with the same shape and rate as a.
func NewLike(a *Audio) *Audio {
	out, _ := New(a.NumChannels(), a.NumFrames(), a.sampleRate)
	return out
}

// NumChannels returns the channel count.
func (a *Audio) NumChannels() int { return len(a.channels) }

// NumFrames returns the number of frames per channel.
func (a *Audio) NumFrames() int {
	if len(a.channels) == 0 {
		return 0
	}

	return len(a.channels[0])
}

// SampleRate returns the sample rate in Hz.
func (a *Audio) SampleRate() int { return a.sampleRate }

// Channel returns the samples of channel ch. The slice aliases the buffer.
func (a *Audio) Channel(ch int) []float64 { return a.channels[ch] }

// Channels returns all channel slices. The slices alias the buffer.
func (a *Audio) Channels() [][]float64 { return a.channels }

// Clone returns a deep copy of the buffer.
func (a *Audio) Clone() *Audio {
	data := make([][]float64, len(a.channels))
	for ch, samples := range a.channels {
		data[ch] = make([]float64, len(samples))
		copy(data[ch], samples)
	}

	return &Audio{channels: data, sampleRate: a.sampleRate}
}

// SameShape reports whether a and b have equal channel count, frame count
// and sample rate.
func (a *Audio) SameShape(b *Audio) bool {
	return a.NumChannels() == b.NumChannels() &&
		a.NumFrames() == b.NumFrames() &&
		a.sampleRate == b.sampleRate
}

// Equal reports whether a and b have the same shape and bit-identical samples.
func (a *Audio) Equal(b *Audio) bool {
	if !a.SameShape(b) {
		return false
	}

	for ch := range a.channels {
		x, y := a.channels[ch], b.channels[ch]
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
	}

	return true
}

// Duration returns the buffer length in seconds.
func (a *Audio) Duration() float64 {
	return float64(a.NumFrames()) / float64(a.sampleRate)
}
