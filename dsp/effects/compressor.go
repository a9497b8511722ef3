package effects

import "math"

// Limits and defaults for Compressor. Times are in milliseconds.
const (
	compRatioMin   = 1.0
	compRatioMax   = 1000.0
	compAttackMin  = 0.001
	compAttackMax  = 1000.0
	compReleaseMin = 0.001
	compReleaseMax = 5000.0

	compDefaultAttack  = 1.0
	compDefaultRelease = 100.0

	// dB to log2 scale: log2(10)/20.
	dbToLog2 = 0.166096404744
)

// Compressor is a hard-knee downward compressor with a peak envelope
// follower. Gain is computed in the log2 domain. There is no makeup gain;
// level compensation belongs to a following gain stage.
type Compressor struct {
	sr float64

	threshLog2 float64
	slope      float64 // 1 - 1/ratio
	attack     float64 // ms
	release    float64 // ms

	env      float64
	riseCoef float64
	fallCoef float64
}

// NewCompressor returns a compressor that is transparent until configured:
// 0 dB threshold, 1:1 ratio, 1 ms attack and 100 ms release.
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if err := checkSampleRate("compressor", sampleRate); err != nil {
		return nil, err
	}

	c := &Compressor{sr: sampleRate, attack: compDefaultAttack, release: compDefaultRelease}
	c.retime()

	return c, nil
}

// SetThreshold sets the knee position in dBFS.
func (c *Compressor) SetThreshold(dB float64) error {
	if err := checkFinite("compressor threshold", dB); err != nil {
		return err
	}

	c.threshLog2 = dB * dbToLog2

	return nil
}

// SetRatio sets the input:output ratio above the threshold.
func (c *Compressor) SetRatio(ratio float64) error {
	if err := checkRange("compressor ratio", ratio, compRatioMin, compRatioMax); err != nil {
		return err
	}

	c.slope = 1 - 1/ratio

	return nil
}

// SetAttack sets the attack time in milliseconds.
func (c *Compressor) SetAttack(ms float64) error {
	if err := checkRange("compressor attack", ms, compAttackMin, compAttackMax); err != nil {
		return err
	}

	c.attack = ms
	c.retime()

	return nil
}

// SetRelease sets the release time in milliseconds.
func (c *Compressor) SetRelease(ms float64) error {
	if err := checkRange("compressor release", ms, compReleaseMin, compReleaseMax); err != nil {
		return err
	}

	c.release = ms
	c.retime()

	return nil
}

// ProcessSample advances the envelope by one sample and applies the gain.
func (c *Compressor) ProcessSample(x float64) float64 {
	mag := math.Abs(x)
	if mag > c.env {
		c.env += (mag - c.env) * c.riseCoef
	} else {
		c.env = mag + (c.env-mag)*c.fallCoef
	}

	return x * c.gain(c.env)
}

// ProcessInPlace compresses buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// StaticCurve maps a steady input magnitude to the settled output magnitude.
func (c *Compressor) StaticCurve(mag float64) float64 {
	mag = math.Abs(mag)
	return mag * c.gain(mag)
}

// Reset clears the envelope follower.
func (c *Compressor) Reset() { c.env = 0 }

// retime derives per-sample smoothing from the attack and release times.
// Both are half-life constants.
func (c *Compressor) retime() {
	perMs := 0.001 * c.sr
	c.riseCoef = 1 - smoothingCoeff(-math.Ln2/(c.attack*perMs))
	c.fallCoef = smoothingCoeff(-math.Ln2 / (c.release * perMs))
}

func (c *Compressor) gain(env float64) float64 {
	if env <= 0 || c.slope == 0 {
		return 1
	}

	over := levelLog2(env) - c.threshLog2
	if over <= 0 {
		return 1
	}

	return gainExp2(-over * c.slope)
}
