package pipeline

import (
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/primitive"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func stage(t *testing.T, kind primitive.Kind, params map[string]float64) *Stage {
	t.Helper()

	d, err := primitive.New(kind, params)
	if err != nil {
		t.Fatalf("primitive.New(%v): %v", kind, err)
	}

	return NewStage(d)
}

func chain(t *testing.T, children ...Node) *Chain {
	t.Helper()

	c, err := NewChain(children...)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	return c
}

func mix(t *testing.T, branches ...Node) *MixBus {
	t.Helper()

	m, err := NewMixBus(branches...)
	if err != nil {
		t.Fatalf("NewMixBus: %v", err)
	}

	return m
}

func voice(t *testing.T, channels, frames, sampleRate int) *buffer.Audio {
	t.Helper()
	return testutil.Voice(t, channels, frames, sampleRate)
}
