package effects

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

const (
	reverbNumCombs     = 8
	reverbNumAllpasses = 4

	reverbTuningRate    = 44100.0
	reverbStereoSpread  = 23
	reverbFixedGain     = 0.015
	reverbWetScale      = 3.0
	reverbDryScale      = 2.0
	reverbRoomScale     = 0.28
	reverbRoomOffset    = 0.7
	reverbDampScale     = 0.4
	reverbAllpassFactor = 0.5

	defaultReverbRoomSize = 0.5
	defaultReverbDamping  = 0.5
	defaultReverbWetLevel = 0.33
	defaultReverbDryLevel = 0.4
	defaultReverbWidth    = 1.0
)

var (
	reverbCombTunings    = [reverbNumCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	reverbAllpassTunings = [reverbNumAllpasses]int{556, 441, 341, 225}
)

// Reverb is a Freeverb-style reverb with eight damped combs and four
// allpasses per side. Tunings are scaled from 44.1 kHz to the target rate and
// the right side is offset by a fixed stereo spread.
type Reverb struct {
	sampleRate float64

	roomSize float64
	damping  float64
	wetLevel float64
	dryLevel float64
	width    float64
	freeze   bool

	feedback float64
	damp     float64
	gain     float64
	wet1     float64
	wet2     float64
	dry      float64

	combs   [2][reverbNumCombs]reverbComb
	allpass [2][reverbNumAllpasses]reverbAllpass
}

type reverbComb struct {
	buffer []float64
	index  int
	last   float64
}

func (c *reverbComb) process(input, damp, feedback float64) float64 {
	output := c.buffer[c.index]
	c.last = core.FlushDenormals(output*(1-damp) + c.last*damp)
	c.buffer[c.index] = input + c.last*feedback

	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}

	return output
}

type reverbAllpass struct {
	buffer []float64
	index  int
}

func (a *reverbAllpass) process(input float64) float64 {
	buffered := a.buffer[a.index]
	a.buffer[a.index] = input + buffered*reverbAllpassFactor

	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}

	return buffered - input
}

// NewReverb creates a reverb for sampleRate with room size 0.5, damping 0.5,
// wet level 0.33, dry level 0.4 and full width.
func NewReverb(sampleRate float64) (*Reverb, error) {
	if err := checkSampleRate("reverb", sampleRate); err != nil {
		return nil, err
	}

	r := &Reverb{
		sampleRate: sampleRate,
		roomSize:   defaultReverbRoomSize,
		damping:    defaultReverbDamping,
		wetLevel:   defaultReverbWetLevel,
		dryLevel:   defaultReverbDryLevel,
		width:      defaultReverbWidth,
	}

	scale := sampleRate / reverbTuningRate
	for side := range 2 {
		spread := side * reverbStereoSpread
		for i, tuning := range reverbCombTunings {
			r.combs[side][i].buffer = make([]float64, scaledLength(tuning+spread, scale))
		}

		for i, tuning := range reverbAllpassTunings {
			r.allpass[side][i].buffer = make([]float64, scaledLength(tuning+spread, scale))
		}
	}

	r.update()

	return r, nil
}

func scaledLength(tuning int, scale float64) int {
	n := int(float64(tuning) * scale)
	if n < 1 {
		return 1
	}

	return n
}

// SetRoomSize sets the room size in [0, 1].
func (r *Reverb) SetRoomSize(v float64) error {
	if err := checkUnit("reverb room size", v); err != nil {
		return err
	}

	r.roomSize = v
	r.update()

	return nil
}

// SetDamping sets the high-frequency damping in [0, 1].
func (r *Reverb) SetDamping(v float64) error {
	if err := checkUnit("reverb damping", v); err != nil {
		return err
	}

	r.damping = v
	r.update()

	return nil
}

// SetWetLevel sets the wet level in [0, 1].
func (r *Reverb) SetWetLevel(v float64) error {
	if err := checkUnit("reverb wet level", v); err != nil {
		return err
	}

	r.wetLevel = v
	r.update()

	return nil
}

// SetDryLevel sets the dry level in [0, 1].
func (r *Reverb) SetDryLevel(v float64) error {
	if err := checkUnit("reverb dry level", v); err != nil {
		return err
	}

	r.dryLevel = v
	r.update()

	return nil
}

// SetWidth sets the stereo width in [0, 1].
func (r *Reverb) SetWidth(v float64) error {
	if err := checkUnit("reverb width", v); err != nil {
		return err
	}

	r.width = v
	r.update()

	return nil
}

// SetFreeze enables or disables the infinite-sustain mode.
func (r *Reverb) SetFreeze(on bool) {
	r.freeze = on
	r.update()
}

// RoomSize returns the room size.
func (r *Reverb) RoomSize() float64 { return r.roomSize }

// Damping returns the damping amount.
func (r *Reverb) Damping() float64 { return r.damping }

// WetLevel returns the wet level.
func (r *Reverb) WetLevel() float64 { return r.wetLevel }

// DryLevel returns the dry level.
func (r *Reverb) DryLevel() float64 { return r.dryLevel }

// Width returns the stereo width.
func (r *Reverb) Width() float64 { return r.width }

// Frozen reports whether freeze mode is on.
func (r *Reverb) Frozen() bool { return r.freeze }

// ProcessSample processes one mono sample through the left network.
func (r *Reverb) ProcessSample(input float64) float64 {
	x := input * r.gain

	var acc float64
	for i := range r.combs[0] {
		acc += r.combs[0][i].process(x, r.damp, r.feedback)
	}

	for i := range r.allpass[0] {
		acc = r.allpass[0][i].process(acc)
	}

	return acc*r.wet1 + input*r.dry
}

// ProcessInPlace applies mono reverb to buf in place.
func (r *Reverb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = r.ProcessSample(buf[i])
	}
}

// ProcessStereoInPlace applies stereo reverb to left and right in place.
// Both networks are fed the summed input and cross-mixed by width.
func (r *Reverb) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("reverb stereo length mismatch: %d != %d", len(left), len(right))
	}

	for n := range left {
		x := (left[n] + right[n]) * r.gain

		var outL, outR float64
		for i := range reverbNumCombs {
			outL += r.combs[0][i].process(x, r.damp, r.feedback)
			outR += r.combs[1][i].process(x, r.damp, r.feedback)
		}

		for i := range reverbNumAllpasses {
			outL = r.allpass[0][i].process(outL)
			outR = r.allpass[1][i].process(outR)
		}

		left[n] = outL*r.wet1 + outR*r.wet2 + left[n]*r.dry
		right[n] = outR*r.wet1 + outL*r.wet2 + right[n]*r.dry
	}

	return nil
}

// Reset clears all delay and filter state.
func (r *Reverb) Reset() {
	for side := range 2 {
		for i := range r.combs[side] {
			c := &r.combs[side][i]
			clear(c.buffer)
			c.index = 0
			c.last = 0
		}

		for i := range r.allpass[side] {
			a := &r.allpass[side][i]
			clear(a.buffer)
			a.index = 0
		}
	}
}

func (r *Reverb) update() {
	wet := r.wetLevel * reverbWetScale
	r.wet1 = 0.5 * wet * (1 + r.width)
	r.wet2 = 0.5 * wet * (1 - r.width)
	r.dry = r.dryLevel * reverbDryScale

	if r.freeze {
		r.feedback = 1
		r.damp = 0
		r.gain = 0

		return
	}

	r.feedback = r.roomSize*reverbRoomScale + reverbRoomOffset
	r.damp = r.damping * reverbDampScale
	r.gain = reverbFixedGain
}
