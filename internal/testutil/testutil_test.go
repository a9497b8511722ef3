package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(t, 2, 48, 48000, 1000, 1.0)
	if s.NumChannels() != 2 || s.NumFrames() != 48 || s.SampleRate() != 48000 {
		t.Fatalf("shape = %dch x %d @ %d", s.NumChannels(), s.NumFrames(), s.SampleRate())
	}

	if math.Abs(s.Channel(0)[0]) > 1e-15 {
		t.Fatalf("ch0[0] = %v, want 0", s.Channel(0)[0])
	}

	if s.Channel(0)[1] == s.Channel(1)[1] {
		t.Fatal("channels should be phase-offset")
	}

	if p := s.Peak(); p > 1 {
		t.Fatalf("peak = %v", p)
	}
}

func TestVoiceDeterministicAndBounded(t *testing.T) {
	a := Voice(t, 1, 4000, 16000)
	b := Voice(t, 1, 4000, 16000)

	if !a.Equal(b) {
		t.Fatal("Voice not deterministic")
	}

	if p := a.Peak(); p <= 0 || p >= 0.6 {
		t.Fatalf("peak = %v, want (0, 0.6)", p)
	}
}

func TestNoiseSeeds(t *testing.T) {
	a := Noise(t, 42, 1, 64, 8000, 1)
	b := Noise(t, 42, 1, 64, 8000, 1)
	c := Noise(t, 43, 1, 64, 8000, 1)

	if !a.Equal(b) {
		t.Fatal("same seed produced different noise")
	}

	if a.Equal(c) {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(t, 2, 8, 8000, 3)
	for ch := range 2 {
		for i, v := range imp.Channel(ch) {
			want := 0.0
			if i == 3 {
				want = 1
			}

			if v != want {
				t.Fatalf("ch %d [%d] = %v, want %v", ch, i, v, want)
			}
		}
	}

	if Impulse(t, 1, 4, 8000, 10).Peak() != 0 {
		t.Fatal("out-of-range impulse should be silent")
	}
}

func TestMaxAbsDiff(t *testing.T) {
	a := Silence(t, 1, 3, 8000)
	b := a.Clone()
	b.Channel(0)[1] = 0.1

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}

	if _, err := MaxAbsDiff(a, Silence(t, 2, 3, 8000)); err == nil {
		t.Fatal("expected error for shape mismatch")
	}
}

func TestWAVRoundTrip(t *testing.T) {
	in := Voice(t, 2, 800, 16000)
	path := WriteWAV(t, t.TempDir(), "voice.wav", in, 24)

	out := ReadWAV(t, path)
	RequireAudioNearlyEqual(t, out, in, 1e-6)
	RequireFinite(t, out)
}
