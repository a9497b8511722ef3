package effects

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

func checkSampleRate(effect string, sr float64) error {
	if sr <= 0 || !core.IsFinite(sr) {
		return fmt.Errorf("%s: invalid sample rate %g", effect, sr)
	}

	return nil
}

func checkFinite(name string, v float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("%s %g is not finite", name, v)
	}

	return nil
}

// checkRange accepts finite v in [lo, hi].
func checkRange(name string, v, lo, hi float64) error {
	if !core.IsFinite(v) || v < lo || v > hi {
		return fmt.Errorf("%s %g outside [%g, %g]", name, v, lo, hi)
	}

	return nil
}

func checkUnit(name string, v float64) error {
	return checkRange(name, v, 0, 1)
}
