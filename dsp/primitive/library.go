package primitive

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
)

// Func applies one primitive to in. The caller hands over a private copy, so
// implementations may process in place and return it. The returned buffer
// must keep the sample rate; the channel count is checked by the evaluator.
type Func func(in *buffer.Audio, d Descriptor) (*buffer.Audio, error)

// Library maps primitive kinds to implementations.
type Library struct {
	funcs map[Kind]Func
}

var errDuplicateKind = errors.New("primitive: duplicate kind")

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{funcs: make(map[Kind]Func)}
}

// Register adds an implementation for kind.
func (l *Library) Register(kind Kind, fn Func) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}

	if fn == nil {
		return errors.New("primitive: nil func")
	}

	if _, exists := l.funcs[kind]; exists {
		return fmt.Errorf("%w: %s", errDuplicateKind, kind)
	}

	l.funcs[kind] = fn

	return nil
}

// MustRegister is like Register but panics on error.
func (l *Library) MustRegister(kind Kind, fn Func) {
	if err := l.Register(kind, fn); err != nil {
		panic("primitive library: " + err.Error())
	}
}

// Lookup returns the implementation for kind, or nil.
func (l *Library) Lookup(kind Kind) Func {
	if l == nil {
		return nil
	}

	return l.funcs[kind]
}

// Supports reports whether kind has an implementation.
func (l *Library) Supports(kind Kind) bool {
	return l.Lookup(kind) != nil
}

// Without returns a copy of l lacking the given kinds.
func (l *Library) Without(kinds ...Kind) *Library {
	out := NewLibrary()
	for k, fn := range l.funcs {
		out.funcs[k] = fn
	}

	for _, k := range kinds {
		delete(out.funcs, k)
	}

	return out
}

// DefaultLibrary returns a library with an implementation for every Kind.
func DefaultLibrary() *Library {
	l := NewLibrary()

	l.MustRegister(Gain, applyGain)
	l.MustRegister(HighpassFilter, applyHighpass)
	l.MustRegister(LowpassFilter, applyLowpass)
	l.MustRegister(PeakFilter, applyPeak)
	l.MustRegister(Compressor, applyCompressor)
	l.MustRegister(Distortion, applyDistortion)
	l.MustRegister(Reverb, applyReverb)
	l.MustRegister(Delay, applyDelay)
	l.MustRegister(Chorus, applyChorus)
	l.MustRegister(Limiter, applyLimiter)

	return l
}
