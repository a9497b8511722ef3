package primitive

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
)

// processor is the per-channel kernel surface shared by dsp/effects types.
type processor interface {
	ProcessInPlace(buf []float64)
}

// builder constructs a configured kernel for d at sampleRate.
type builder func(sampleRate float64, d Descriptor) (processor, error)

// kernels lists the kinds whose parameters are validated by their kernel's
// setters.
var kernels = map[Kind]builder{
	Compressor: buildCompressor,
	Limiter:    buildLimiter,
	Distortion: buildDistortion,
	Delay:      buildDelay,
	Chorus:     buildChorus,
	Reverb: func(sr float64, d Descriptor) (processor, error) {
		return newReverb(sr, d)
	},
}

// nominalRate is the sample rate Check builds kernels at.
const nominalRate = 48000

// Check reports ErrInvalidParam when d's parameters cannot be realised at
// any sample rate. Cutoff frequencies are only checked against Nyquist
// once the input rate is known.
func Check(d Descriptor) error {
	switch d.Kind() {
	case HighpassFilter, LowpassFilter, PeakFilter:
		if c := d.Param(ParamCutoffHz); !(c > 0) {
			return fmt.Errorf("%w: %s: cutoff %g Hz", ErrInvalidParam, d.Kind(), c)
		}

		if q := d.Param(ParamQ); d.Kind() == PeakFilter && !(q > 0) {
			return fmt.Errorf("%w: %s: q %g", ErrInvalidParam, d.Kind(), q)
		}

		return nil
	}

	build, ok := kernels[d.Kind()]
	if !ok {
		return nil
	}

	if _, err := build(nominalRate, d); err != nil {
		return invalid(d, err)
	}

	return nil
}

// perChannel builds one fresh kernel per channel and runs it in place.
func perChannel(in *buffer.Audio, d Descriptor, build builder) (*buffer.Audio, error) {
	for ch := range in.NumChannels() {
		p, err := build(float64(in.SampleRate()), d)
		if err != nil {
			return nil, invalid(d, err)
		}

		p.ProcessInPlace(in.Channel(ch))
	}

	return in, nil
}

func invalid(d Descriptor, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidParam, d.Kind(), err)
}

func applyGain(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	in.Scale(core.DBToLinear(d.Param(ParamGainDB)))
	return in, nil
}

func applyHighpass(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	return applyBiquad(in, d, func(sr float64) biquad.Coefficients {
		return design.FirstOrderHighpass(d.Param(ParamCutoffHz), sr)
	})
}

func applyLowpass(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	return applyBiquad(in, d, func(sr float64) biquad.Coefficients {
		return design.FirstOrderLowpass(d.Param(ParamCutoffHz), sr)
	})
}

func applyPeak(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	return applyBiquad(in, d, func(sr float64) biquad.Coefficients {
		return design.Peak(d.Param(ParamCutoffHz), d.Param(ParamGainDB), d.Param(ParamQ), sr)
	})
}

func applyBiquad(in *buffer.Audio, d Descriptor, coeffs func(sampleRate float64) biquad.Coefficients) (*buffer.Audio, error) {
	c := coeffs(float64(in.SampleRate()))
	if c.IsZero() {
		return nil, fmt.Errorf("%w: %s: %s not realisable at %d Hz",
			ErrInvalidParam, d.Kind(), d, in.SampleRate())
	}

	for ch := range in.NumChannels() {
		biquad.NewSection(c).ProcessBlock(in.Channel(ch))
	}

	return in, nil
}

func applyCompressor(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	return perChannel(in, d, buildCompressor)
}

func buildCompressor(sr float64, d Descriptor) (processor, error) {
	c, err := effects.NewCompressor(sr)
	if err != nil {
		return nil, err
	}

	if err := c.SetThreshold(d.Param(ParamThresholdDB)); err != nil {
		return nil, err
	}

	if err := c.SetRatio(d.Param(ParamRatio)); err != nil {
		return nil, err
	}

	if err := c.SetAttack(d.Param(ParamAttackMs)); err != nil {
		return nil, err
	}

	if err := c.SetRelease(d.Param(ParamReleaseMs)); err != nil {
		return nil, err
	}

	return c, nil
}

func applyLimiter(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	return perChannel(in, d, buildLimiter)
}

func buildLimiter(sr float64, d Descriptor) (processor, error) {
	l, err := effects.NewLimiter(sr)
	if err != nil {
		return nil, err
	}

	if err := l.SetThreshold(d.Param(ParamThresholdDB)); err != nil {
		return nil, err
	}

	if err := l.SetRelease(d.Param(ParamReleaseMs)); err != nil {
		return nil, err
	}

	return l, nil
}

func applyDistortion(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	return perChannel(in, d, buildDistortion)
}

func buildDistortion(_ float64, d Descriptor) (processor, error) {
	fx := effects.NewDistortion()
	if err := fx.SetDrive(d.Param(ParamDriveDB)); err != nil {
		return nil, err
	}

	return fx, nil
}

func applyDelay(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	return perChannel(in, d, buildDelay)
}

func buildDelay(sr float64, d Descriptor) (processor, error) {
	fx, err := effects.NewDelay(sr)
	if err != nil {
		return nil, err
	}

	if err := fx.SetTime(d.Param(ParamDelaySeconds)); err != nil {
		return nil, err
	}

	if err := fx.SetFeedback(d.Param(ParamFeedback)); err != nil {
		return nil, err
	}

	if err := fx.SetMix(d.Param(ParamMix)); err != nil {
		return nil, err
	}

	return fx, nil
}

func applyChorus(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	return perChannel(in, d, buildChorus)
}

func buildChorus(sr float64, d Descriptor) (processor, error) {
	fx, err := effects.NewChorus(sr)
	if err != nil {
		return nil, err
	}

	setters := []struct {
		set  func(float64) error
		name string
	}{
		{fx.SetRate, ParamRateHz},
		{fx.SetDepth, ParamDepth},
		{fx.SetCentreDelay, ParamCentreDelayMs},
		{fx.SetFeedback, ParamFeedback},
		{fx.SetMix, ParamMix},
	}

	for _, s := range setters {
		if err := s.set(d.Param(s.name)); err != nil {
			return nil, err
		}
	}

	return fx, nil
}

func newReverb(sampleRate float64, d Descriptor) (*effects.Reverb, error) {
	fx, err := effects.NewReverb(sampleRate)
	if err != nil {
		return nil, err
	}

	setters := []struct {
		set  func(float64) error
		name string
	}{
		{fx.SetRoomSize, ParamRoomSize},
		{fx.SetDamping, ParamDamping},
		{fx.SetWetLevel, ParamWetLevel},
		{fx.SetDryLevel, ParamDryLevel},
		{fx.SetWidth, ParamWidth},
	}

	for _, s := range setters {
		if err := s.set(d.Param(s.name)); err != nil {
			return nil, err
		}
	}

	fx.SetFreeze(d.Param(ParamFreezeMode) >= 0.5)

	return fx, nil
}

// applyReverb renders stereo input through the cross-mixed stereo network and
// every other layout through one mono network per channel.
func applyReverb(in *buffer.Audio, d Descriptor) (*buffer.Audio, error) {
	if in.NumChannels() == 2 {
		fx, err := newReverb(float64(in.SampleRate()), d)
		if err != nil {
			return nil, invalid(d, err)
		}

		if err := fx.ProcessStereoInPlace(in.Channel(0), in.Channel(1)); err != nil {
			return nil, err
		}

		return in, nil
	}

	return perChannel(in, d, kernels[Reverb])
}
