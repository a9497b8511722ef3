package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Limiter is a Compressor pinned at 100:1 with a 0.1 ms attack, followed by
// a hard clip at the threshold. Output magnitude never exceeds Ceiling.
type Limiter struct {
	comp    *Compressor
	ceiling float64
}

// NewLimiter returns a limiter at -10 dBFS with a 100 ms release.
func NewLimiter(sampleRate float64) (*Limiter, error) {
	c, err := NewCompressor(sampleRate)
	if err != nil {
		return nil, err
	}

	// Fixed shape; only threshold and release are exposed.
	_ = c.SetRatio(100)
	_ = c.SetAttack(0.1)

	l := &Limiter{comp: c}
	if err := l.SetThreshold(-10); err != nil {
		return nil, err
	}

	return l, nil
}

// SetThreshold moves both the compressor knee and the clip ceiling.
func (l *Limiter) SetThreshold(dB float64) error {
	if err := l.comp.SetThreshold(dB); err != nil {
		return fmt.Errorf("limiter: %w", err)
	}

	l.ceiling = core.DBToLinear(dB)

	return nil
}

// SetRelease sets the release time in milliseconds.
func (l *Limiter) SetRelease(ms float64) error {
	if err := l.comp.SetRelease(ms); err != nil {
		return fmt.Errorf("limiter: %w", err)
	}

	return nil
}

// Ceiling reports the linear clip level.
func (l *Limiter) Ceiling() float64 { return l.ceiling }

// ProcessSample compresses x and clips the result to the ceiling.
func (l *Limiter) ProcessSample(x float64) float64 {
	y := l.comp.ProcessSample(x)
	if math.Abs(y) <= l.ceiling {
		return y
	}

	return math.Copysign(l.ceiling, y)
}

// ProcessInPlace limits buf in place.
func (l *Limiter) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = l.ProcessSample(x)
	}
}

// Reset clears the envelope.
func (l *Limiter) Reset() { l.comp.Reset() }
