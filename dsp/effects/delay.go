package effects

import "math"

const (
	delayMaxSeconds  = 30.0
	delayMaxFeedback = 0.99
)

// Delay is a feedback echo. The ring holds exactly round(seconds*sr)
// samples, so a zero delay time passes input through unchanged.
type Delay struct {
	sr   float64
	ring []float64
	pos  int

	fb  float64
	wet float64
}

// NewDelay returns a 0.5 s delay with no feedback at an even dry/wet mix.
func NewDelay(sampleRate float64) (*Delay, error) {
	if err := checkSampleRate("delay", sampleRate); err != nil {
		return nil, err
	}

	d := &Delay{sr: sampleRate, wet: 0.5}
	if err := d.SetTime(0.5); err != nil {
		return nil, err
	}

	return d, nil
}

// SetTime resizes the ring to the given delay in seconds. Pending echoes
// are discarded.
func (d *Delay) SetTime(seconds float64) error {
	if err := checkRange("delay time", seconds, 0, delayMaxSeconds); err != nil {
		return err
	}

	d.ring = make([]float64, int(math.Round(seconds*d.sr)))
	d.pos = 0

	return nil
}

// SetFeedback sets how much of each echo is fed back into the ring.
func (d *Delay) SetFeedback(fb float64) error {
	if err := checkRange("delay feedback", fb, 0, delayMaxFeedback); err != nil {
		return err
	}

	d.fb = fb

	return nil
}

// SetMix sets the wet proportion; the dry path gets the remainder.
func (d *Delay) SetMix(wet float64) error {
	if err := checkUnit("delay mix", wet); err != nil {
		return err
	}

	d.wet = wet

	return nil
}

// Len reports the delay in samples.
func (d *Delay) Len() int { return len(d.ring) }

// Reset silences the ring.
func (d *Delay) Reset() {
	clear(d.ring)
	d.pos = 0
}

// ProcessSample pushes x into the ring and returns the mixed output.
func (d *Delay) ProcessSample(x float64) float64 {
	n := len(d.ring)
	if n == 0 {
		return x
	}

	echo := d.ring[d.pos]
	d.ring[d.pos] = x + d.fb*echo
	d.pos = (d.pos + 1) % n

	return x + d.wet*(echo-x)
}

// ProcessInPlace runs ProcessSample over buf.
func (d *Delay) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = d.ProcessSample(x)
	}
}
