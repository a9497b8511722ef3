package effects

import (
	"math"
	"testing"
)

func TestChorusDryOnlyIsIdentity(t *testing.T) {
	c, err := NewChorus(44100)
	if err != nil {
		t.Fatalf("NewChorus: %v", err)
	}

	if err := c.SetMix(0); err != nil {
		t.Fatalf("SetMix: %v", err)
	}

	for i := range 512 {
		x := math.Sin(float64(i) * 0.05)
		if y := c.ProcessSample(x); y != x {
			t.Fatalf("sample %d: got=%v want=%v", i, y, x)
		}
	}
}

func TestChorusZeroDepthIsFixedDelay(t *testing.T) {
	c, _ := NewChorus(1000)
	_ = c.SetDepth(0)
	_ = c.SetCentreDelay(10)
	_ = c.SetMix(1)

	buf := make([]float64, 32)
	buf[0] = 1
	c.ProcessInPlace(buf)

	var peakIdx int
	for i := range buf {
		if math.Abs(buf[i]) > math.Abs(buf[peakIdx]) {
			peakIdx = i
		}
	}

	if peakIdx != 11 {
		t.Fatalf("impulse peak at %d, want 11", peakIdx)
	}
}

func TestChorusOutputBounded(t *testing.T) {
	c, _ := NewChorus(16000)
	_ = c.SetFeedback(0.5)

	buf := make([]float64, 16000)
	for i := range buf {
		buf[i] = 0.5 * math.Sin(2*math.Pi*300*float64(i)/16000)
	}

	c.ProcessInPlace(buf)

	for i, y := range buf {
		if math.IsNaN(y) || math.Abs(y) > 2 {
			t.Fatalf("sample %d out of range: %v", i, y)
		}
	}
}

func TestChorusSetterValidation(t *testing.T) {
	c, _ := NewChorus(44100)

	if err := c.SetDepth(2); err == nil {
		t.Fatal("expected depth error")
	}

	if err := c.SetCentreDelay(0); err == nil {
		t.Fatal("expected centre delay error")
	}

	if err := c.SetFeedback(1); err == nil {
		t.Fatal("expected feedback error")
	}

	if err := c.SetRate(-1); err == nil {
		t.Fatal("expected rate error")
	}
}
