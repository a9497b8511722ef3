package effects

import (
	"math"
	"testing"
)

func TestLimiterNeverExceedsCeiling(t *testing.T) {
	l, err := NewLimiter(44100)
	if err != nil {
		t.Fatalf("NewLimiter: %v", err)
	}

	if err := l.SetThreshold(-6); err != nil {
		t.Fatalf("SetThreshold: %v", err)
	}

	ceiling := math.Pow(10, -6.0/20)
	if math.Abs(l.Ceiling()-ceiling) > 1e-12 {
		t.Fatalf("ceiling: got=%v want=%v", l.Ceiling(), ceiling)
	}

	for i := range 4096 {
		x := 1.5 * math.Sin(2*math.Pi*440*float64(i)/44100)
		if y := l.ProcessSample(x); math.Abs(y) > ceiling+1e-12 {
			t.Fatalf("sample %d exceeds ceiling: %v > %v", i, math.Abs(y), ceiling)
		}
	}
}

func TestLimiterQuietSignalUntouched(t *testing.T) {
	l, err := NewLimiter(44100)
	if err != nil {
		t.Fatalf("NewLimiter: %v", err)
	}

	buf := []float64{0.01, -0.02, 0.05, -0.1, 0.2, 0}
	want := append([]float64(nil), buf...)
	l.ProcessInPlace(buf)

	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("sample %d changed: got=%v want=%v", i, buf[i], want[i])
		}
	}
}

func TestLimiterRejectsBadRelease(t *testing.T) {
	l, err := NewLimiter(44100)
	if err != nil {
		t.Fatalf("NewLimiter: %v", err)
	}

	if err := l.SetRelease(0); err == nil {
		t.Fatal("expected release error")
	}
}
