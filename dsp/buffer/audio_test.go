package buffer

import (
	"errors"
	"testing"
)

func TestNewZeroFilled(t *testing.T) {
	a, err := New(2, 8, 16000)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.NumChannels() != 2 || a.NumFrames() != 8 || a.SampleRate() != 16000 {
		t.Fatalf("shape = %dx%d@%d, want 2x8@16000", a.NumChannels(), a.NumFrames(), a.SampleRate())
	}
	for ch := range a.Channels() {
		for i, v := range a.Channel(ch) {
			if v != 0 {
				t.Fatalf("channel %d sample %d = %v, want 0", ch, i, v)
			}
		}
	}
}

func TestNewRejectsInvalidShape(t *testing.T) {
	if _, err := New(0, 8, 16000); !errors.Is(err, ErrNoChannels) {
		t.Fatalf("New(0 channels) error = %v, want ErrNoChannels", err)
	}
	if _, err := New(1, 8, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("New(rate 0) error = %v, want ErrInvalidSampleRate", err)
	}
}

func TestFromChannelsSharesMemory(t *testing.T) {
	s := []float64{1, 2, 3}
	a, err := FromChannels(8000, s)
	if err != nil {
		t.Fatalf("FromChannels: %v", err)
	}
	a.Channel(0)[0] = 99
	if s[0] != 99 {
		t.Fatal("FromChannels should share underlying memory")
	}
}

func TestFromChannelsRagged(t *testing.T) {
	_, err := FromChannels(8000, []float64{1, 2}, []float64{1})
	if !errors.Is(err, ErrRaggedChannels) {
		t.Fatalf("error = %v, want ErrRaggedChannels", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	a, _ := FromChannels(8000, []float64{1, 2}, []float64{3, 4})
	c := a.Clone()
	c.Channel(1)[0] = -1
	if a.Channel(1)[0] != 3 {
		t.Fatal("Clone shares memory with source")
	}
	if !a.SameShape(c) {
		t.Fatal("Clone changed shape")
	}
}

func TestEqual(t *testing.T) {
	a, _ := FromChannels(8000, []float64{1, 2})
	b, _ := FromChannels(8000, []float64{1, 2})
	c, _ := FromChannels(16000, []float64{1, 2})
	d, _ := FromChannels(8000, []float64{1, 2.0000001})

	if !a.Equal(b) {
		t.Fatal("identical buffers compare unequal")
	}
	if a.Equal(c) {
		t.Fatal("buffers with different rates compare equal")
	}
	if a.Equal(d) {
		t.Fatal("buffers with different samples compare equal")
	}
}

func TestDuration(t *testing.T) {
	a, _ := New(1, 16000, 16000)
	if a.Duration() != 1 {
		t.Fatalf("Duration() = %v, want 1", a.Duration())
	}
}
