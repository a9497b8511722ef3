package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-voicefx/dsp/analysis"
	"github.com/cwbudde/algo-voicefx/dsp/preset"
)

var (
	// ErrMissingInput is returned for a request whose input file does not
	// exist or is not a regular file.
	ErrMissingInput = errors.New("batch: missing input file")
	// ErrAmbiguousOutput is returned by Expand when an explicit output path
	// is combined with more than one preset.
	ErrAmbiguousOutput = errors.New("batch: explicit output needs exactly one preset")
	// ErrDuplicateOutput is returned for a request whose output path an
	// earlier request in the same run already writes.
	ErrDuplicateOutput = errors.New("batch: duplicate output path")
)

// Request names one render. Output is optional; when empty the output path
// is derived from Input and Preset.
type Request struct {
	Input  string
	Preset string
	Output string
}

// Outcome is the result of one Request.
type Outcome struct {
	Request  Request
	Output   string
	Report   analysis.Report
	Duration time.Duration
	Err      error
}

// OK reports whether the request produced an output file.
func (o Outcome) OK() bool { return o.Err == nil }

// Expand builds one request per preset for input. Presets naming the same
// registry key are rendered once. A non-empty output is only valid together
// with a single preset.
func Expand(input string, presets []string, output string) ([]Request, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: empty path", ErrMissingInput)
	}

	seen := make(map[string]bool, len(presets))
	reqs := make([]Request, 0, len(presets))

	for _, p := range presets {
		key := preset.NormalizeName(p)
		if seen[key] {
			continue
		}

		seen[key] = true
		reqs = append(reqs, Request{Input: input, Preset: p, Output: output})
	}

	if output != "" && len(reqs) != 1 {
		return nil, fmt.Errorf("%w: got %d presets", ErrAmbiguousOutput, len(reqs))
	}

	return reqs, nil
}
