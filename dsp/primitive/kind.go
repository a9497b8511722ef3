package primitive

import (
	"fmt"
	"strings"
)

// Kind identifies a DSP primitive.
type Kind int

// Supported primitive kinds.
const (
	Gain Kind = iota + 1
	HighpassFilter
	LowpassFilter
	PeakFilter
	Compressor
	Distortion
	Reverb
	Delay
	Chorus
	Limiter
)

var kindNames = [...]string{
	Gain:           "gain",
	HighpassFilter: "highpass",
	LowpassFilter:  "lowpass",
	PeakFilter:     "peak",
	Compressor:     "compressor",
	Distortion:     "distortion",
	Reverb:         "reverb",
	Delay:          "delay",
	Chorus:         "chorus",
	Limiter:        "limiter",
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for k := Gain; k <= Limiter; k++ {
		out = append(out, k)
	}

	return out
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= Gain && k <= Limiter
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind resolves a kind from its name. Matching ignores case and
// surrounding whitespace; "highpass_filter" style suffixes are accepted.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "_filter")

	for k := Gain; k <= Limiter; k++ {
		if kindNames[k] == n {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
