package testutil

import (
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/internal/wavio"
)

// WriteWAV encodes a into dir/name at bitDepth and returns the full path.
func WriteWAV(t testing.TB, dir, name string, a *buffer.Audio, bitDepth int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := wavio.Encode(path, buffer.Interleave(a), a.NumChannels(), a.SampleRate(), bitDepth); err != nil {
		t.Fatalf("wavio.Encode(%s): %v", path, err)
	}

	return path
}

// ReadWAV decodes path into an Audio buffer.
func ReadWAV(t testing.TB, path string) *buffer.Audio {
	t.Helper()

	frames, channels, sampleRate, err := wavio.Decode(path)
	if err != nil {
		t.Fatalf("wavio.Decode(%s): %v", path, err)
	}

	a, err := buffer.Deinterleave(frames, channels, sampleRate)
	if err != nil {
		t.Fatalf("buffer.Deinterleave: %v", err)
	}

	return a
}
