package primitive

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

var (
	// ErrUnknownKind is returned for a primitive kind outside the closed set.
	ErrUnknownKind = errors.New("primitive: unknown kind")
	// ErrUnknownParam is returned for a parameter name the kind does not accept.
	ErrUnknownParam = errors.New("primitive: unknown parameter")
	// ErrInvalidParam is returned for a parameter value the kind cannot realise.
	ErrInvalidParam = errors.New("primitive: invalid parameter")
)

// Parameter names.
const (
	ParamGainDB        = "gain_db"
	ParamCutoffHz      = "cutoff_frequency_hz"
	ParamQ             = "q"
	ParamThresholdDB   = "threshold_db"
	ParamRatio         = "ratio"
	ParamAttackMs      = "attack_ms"
	ParamReleaseMs     = "release_ms"
	ParamDriveDB       = "drive_db"
	ParamRoomSize      = "room_size"
	ParamDamping       = "damping"
	ParamWetLevel      = "wet_level"
	ParamDryLevel      = "dry_level"
	ParamWidth         = "width"
	ParamFreezeMode    = "freeze_mode"
	ParamDelaySeconds  = "delay_seconds"
	ParamFeedback      = "feedback"
	ParamMix           = "mix"
	ParamRateHz        = "rate_hz"
	ParamDepth         = "depth"
	ParamCentreDelayMs = "centre_delay_ms"
)

var defaults = map[Kind]map[string]float64{
	Gain:           {ParamGainDB: 1},
	HighpassFilter: {ParamCutoffHz: 50},
	LowpassFilter:  {ParamCutoffHz: 50},
	PeakFilter:     {ParamCutoffHz: 50, ParamGainDB: 0, ParamQ: 0.7071},
	Compressor: {
		ParamThresholdDB: 0, ParamRatio: 1, ParamAttackMs: 1, ParamReleaseMs: 100,
	},
	Distortion: {ParamDriveDB: 25},
	Reverb: {
		ParamRoomSize: 0.5, ParamDamping: 0.5, ParamWetLevel: 0.33,
		ParamDryLevel: 0.4, ParamWidth: 1, ParamFreezeMode: 0,
	},
	Delay: {ParamDelaySeconds: 0.5, ParamFeedback: 0, ParamMix: 0.5},
	Chorus: {
		ParamRateHz: 1, ParamDepth: 0.25, ParamCentreDelayMs: 7,
		ParamFeedback: 0, ParamMix: 0.5,
	},
	Limiter: {ParamThresholdDB: -10, ParamReleaseMs: 100},
}

// Defaults returns a copy of the default parameter set for kind, or nil for
// an unknown kind.
func Defaults(kind Kind) map[string]float64 {
	d, ok := defaults[kind]
	if !ok {
		return nil
	}

	return maps.Clone(d)
}

// Descriptor is an immutable primitive kind plus its explicitly set
// parameters. The zero value is not valid; use New.
type Descriptor struct {
	kind   Kind
	params map[string]float64
}

// New validates params against kind and returns a Descriptor holding a
// private copy of them.
func New(kind Kind, params map[string]float64) (Descriptor, error) {
	def, ok := defaults[kind]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}

	for name, v := range params {
		if _, known := def[name]; !known {
			return Descriptor{}, fmt.Errorf("%w: %s has no %q", ErrUnknownParam, kind, name)
		}

		if !core.IsFinite(v) {
			return Descriptor{}, fmt.Errorf("%w: %s.%s = %v", ErrInvalidParam, kind, name, v)
		}
	}

	return Descriptor{kind: kind, params: maps.Clone(params)}, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(kind Kind, params map[string]float64) Descriptor {
	d, err := New(kind, params)
	if err != nil {
		panic(err)
	}

	return d
}

// Kind returns the primitive kind.
func (d Descriptor) Kind() Kind { return d.kind }

// Param returns the named parameter, falling back to the kind's default.
// Unknown names return 0.
func (d Descriptor) Param(name string) float64 {
	if v, ok := d.params[name]; ok {
		return v
	}

	return defaults[d.kind][name]
}

// IsSet reports whether name was given explicitly.
func (d Descriptor) IsSet(name string) bool {
	_, ok := d.params[name]
	return ok
}

// Params returns a copy of the explicitly set parameters.
func (d Descriptor) Params() map[string]float64 {
	return maps.Clone(d.params)
}

// Effective returns the full parameter set with defaults filled in.
func (d Descriptor) Effective() map[string]float64 {
	out := Defaults(d.kind)
	maps.Copy(out, d.params)

	return out
}

// String renders the descriptor as kind(name=value, ...) with explicit
// parameters in name order.
func (d Descriptor) String() string {
	if len(d.params) == 0 {
		return d.kind.String()
	}

	var sb strings.Builder

	sb.WriteString(d.kind.String())
	sb.WriteByte('(')

	for i, name := range slices.Sorted(maps.Keys(d.params)) {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(d.params[name], 'g', -1, 64))
	}

	sb.WriteByte(')')

	return sb.String()
}
