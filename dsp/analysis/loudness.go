package analysis

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
)

// Gated loudness parameters from ITU-R BS.1770.
const (
	blockSeconds       = 0.4
	blockStepSeconds   = 0.1
	absoluteGateLUFS   = -70.0
	relativeGateOffset = -10.0
	loudnessOffset     = -0.691
)

// IntegratedLoudness returns the gated integrated loudness of a in LUFS.
// All channels are weighted equally. It returns -Inf for silence or input
// shorter than one 400 ms block.
func IntegratedLoudness(a *buffer.Audio) float64 {
	sr := float64(a.SampleRate())
	blockLen := int(math.Round(blockSeconds * sr))
	step := max(int(math.Round(blockStepSeconds*sr)), 1)

	if blockLen <= 0 || a.NumFrames() < blockLen {
		return math.Inf(-1)
	}

	kw := design.KWeighting(sr)

	weighted := make([][]float64, a.NumChannels())
	for ch := range a.NumChannels() {
		x := make([]float64, a.NumFrames())
		copy(x, a.Channel(ch))

		biquad.NewCascade(kw[:]...).ProcessBlock(x)

		weighted[ch] = x
	}

	var blocks []float64

	for start := 0; start+blockLen <= a.NumFrames(); start += step {
		power := 0.0
		for _, x := range weighted {
			seg := x[start : start+blockLen]
			power += vecmath.DotProduct(seg, seg) / float64(blockLen)
		}

		blocks = append(blocks, power)
	}

	gated, mean := gate(blocks, absoluteGateLUFS)
	if len(gated) == 0 {
		return math.Inf(-1)
	}

	gated, mean = gate(gated, toLUFS(mean)+relativeGateOffset)
	if len(gated) == 0 {
		return math.Inf(-1)
	}

	return toLUFS(mean)
}

// gate keeps the blocks louder than threshold and returns them with their
// mean power.
func gate(blocks []float64, threshold float64) ([]float64, float64) {
	var (
		kept []float64
		sum  float64
	)

	for _, b := range blocks {
		if toLUFS(b) > threshold {
			kept = append(kept, b)
			sum += b
		}
	}

	if len(kept) == 0 {
		return nil, 0
	}

	return kept, sum / float64(len(kept))
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return math.Inf(-1)
	}

	return loudnessOffset + 10*math.Log10(meanSquare)
}
