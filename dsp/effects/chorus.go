package effects

import "math"

const (
	defaultChorusRateHz        = 1.0
	defaultChorusDepth         = 0.25
	defaultChorusCentreDelayMs = 7.0
	defaultChorusFeedback      = 0.0
	defaultChorusMix           = 0.5

	// chorusMaxDepthMs is the modulation swing at depth 1.
	chorusMaxDepthMs       = 5.0
	maxChorusCentreDelayMs = 100.0
	maxChorusRateHz        = 100.0
	maxChorusFeedback      = 0.95
)

// Chorus is a single-voice chorus: a sine-modulated fractional delay around
// a centre time, with feedback and dry/wet mix.
type Chorus struct {
	sampleRate    float64
	rateHz        float64
	depth         float64
	centreDelayMs float64
	feedback      float64
	mix           float64

	phase     float64
	delayLine []float64
	write     int
}

// NewChorus creates a chorus with 1 Hz rate, 0.25 depth, 7 ms centre delay,
// no feedback and a 50% mix.
func NewChorus(sampleRate float64) (*Chorus, error) {
	if err := checkSampleRate("chorus", sampleRate); err != nil {
		return nil, err
	}

	c := &Chorus{
		sampleRate:    sampleRate,
		rateHz:        defaultChorusRateHz,
		depth:         defaultChorusDepth,
		centreDelayMs: defaultChorusCentreDelayMs,
		feedback:      defaultChorusFeedback,
		mix:           defaultChorusMix,
	}

	maxMs := maxChorusCentreDelayMs + chorusMaxDepthMs
	c.delayLine = make([]float64, int(math.Ceil(maxMs*0.001*sampleRate))+4)

	return c, nil
}

// SetRate sets LFO rate in Hz.
func (c *Chorus) SetRate(hz float64) error {
	if err := checkRange("chorus rate", hz, 0, maxChorusRateHz); err != nil {
		return err
	}

	c.rateHz = hz

	return nil
}

// SetDepth sets modulation depth in [0, 1].
func (c *Chorus) SetDepth(depth float64) error {
	if err := checkUnit("chorus depth", depth); err != nil {
		return err
	}

	c.depth = depth

	return nil
}

// SetCentreDelay sets the centre delay in milliseconds.
func (c *Chorus) SetCentreDelay(ms float64) error {
	if err := checkRange("chorus centre delay", ms, 1, maxChorusCentreDelayMs); err != nil {
		return err
	}

	c.centreDelayMs = ms

	return nil
}

// SetFeedback sets feedback in [-0.95, 0.95].
func (c *Chorus) SetFeedback(feedback float64) error {
	if err := checkRange("chorus feedback", feedback, -maxChorusFeedback, maxChorusFeedback); err != nil {
		return err
	}

	c.feedback = feedback

	return nil
}

// SetMix sets wet amount in [0, 1].
func (c *Chorus) SetMix(mix float64) error {
	if err := checkUnit("chorus mix", mix); err != nil {
		return err
	}

	c.mix = mix

	return nil
}

// Rate returns the LFO rate in Hz.
func (c *Chorus) Rate() float64 { return c.rateHz }

// Depth returns the modulation depth.
func (c *Chorus) Depth() float64 { return c.depth }

// CentreDelay returns the centre delay in milliseconds.
func (c *Chorus) CentreDelay() float64 { return c.centreDelayMs }

// Feedback returns the feedback amount.
func (c *Chorus) Feedback() float64 { return c.feedback }

// Mix returns the wet amount.
func (c *Chorus) Mix() float64 { return c.mix }

// ProcessSample processes one sample.
func (c *Chorus) ProcessSample(input float64) float64 {
	lfo := math.Sin(c.phase)

	c.phase += 2 * math.Pi * c.rateHz / c.sampleRate
	if c.phase >= 2*math.Pi {
		c.phase -= 2 * math.Pi
	}

	delayMs := c.centreDelayMs + lfo*c.depth*chorusMaxDepthMs
	if delayMs < 0 {
		delayMs = 0
	}

	delayed := c.read(delayMs * 0.001 * c.sampleRate)

	c.delayLine[c.write] = input + delayed*c.feedback
	c.write++
	if c.write >= len(c.delayLine) {
		c.write = 0
	}

	return input*(1-c.mix) + delayed*c.mix
}

// ProcessInPlace applies chorus to buf in place.
func (c *Chorus) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// Reset clears the delay line and LFO phase.
func (c *Chorus) Reset() {
	clear(c.delayLine)
	c.write = 0
	c.phase = 0
}

// read returns the linearly interpolated sample delay samples behind the
// most recent write.
func (c *Chorus) read(delay float64) float64 {
	n := len(c.delayLine)

	pos := float64(c.write) - 1 - delay
	for pos < 0 {
		pos += float64(n)
	}

	i0 := int(pos)
	frac := pos - float64(i0)
	i0 %= n

	i1 := i0 + 1
	if i1 >= n {
		i1 = 0
	}

	return c.delayLine[i0]*(1-frac) + c.delayLine[i1]*frac
}
