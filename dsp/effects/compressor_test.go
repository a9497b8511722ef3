package effects

import (
	"math"
	"testing"
)

func TestNewCompressorRejectsBadSampleRate(t *testing.T) {
	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewCompressor(sr); err == nil {
			t.Fatalf("expected error for sample rate %v", sr)
		}
	}
}

func TestCompressorNeutralDefaultsPassThrough(t *testing.T) {
	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatalf("NewCompressor: %v", err)
	}

	for i := range 256 {
		x := 0.9 * math.Sin(2*math.Pi*float64(i)/37)
		if y := c.ProcessSample(x); y != x {
			t.Fatalf("sample %d changed at 1:1 ratio: got=%v want=%v", i, y, x)
		}
	}
}

func TestCompressorStaticCurve(t *testing.T) {
	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatalf("NewCompressor: %v", err)
	}

	if err := c.SetThreshold(-20); err != nil {
		t.Fatalf("SetThreshold: %v", err)
	}

	if err := c.SetRatio(4); err != nil {
		t.Fatalf("SetRatio: %v", err)
	}

	tests := []struct {
		name    string
		inDB    float64
		wantDB  float64
		epsilon float64
	}{
		{"below threshold", -30, -30, 1e-9},
		{"at threshold", -20, -20, 1e-9},
		{"12 dB over", -8, -17, 1e-6},
		{"20 dB over", 0, -15, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := math.Pow(10, tt.inDB/20)
			got := 20 * math.Log10(c.StaticCurve(in))

			if math.Abs(got-tt.wantDB) > tt.epsilon {
				t.Fatalf("output level: got=%.6f dB want=%.6f dB", got, tt.wantDB)
			}
		})
	}
}

func TestCompressorReducesLoudSine(t *testing.T) {
	c, err := NewCompressor(16000)
	if err != nil {
		t.Fatalf("NewCompressor: %v", err)
	}

	_ = c.SetThreshold(-22)
	_ = c.SetRatio(3)

	buf := make([]float64, 16000)
	for i := range buf {
		buf[i] = 0.8 * math.Sin(2*math.Pi*220*float64(i)/16000)
	}

	c.ProcessInPlace(buf)

	var peak float64
	for _, x := range buf[8000:] {
		peak = math.Max(peak, math.Abs(x))
	}

	if peak >= 0.5 {
		t.Fatalf("expected settled peak well below input, got %v", peak)
	}
}

func TestCompressorSetterValidation(t *testing.T) {
	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatalf("NewCompressor: %v", err)
	}

	if err := c.SetRatio(0.5); err == nil {
		t.Fatal("expected ratio error")
	}

	if err := c.SetAttack(0); err == nil {
		t.Fatal("expected attack error")
	}

	if err := c.SetRelease(-1); err == nil {
		t.Fatal("expected release error")
	}

	if err := c.SetThreshold(math.Inf(-1)); err == nil {
		t.Fatal("expected threshold error")
	}
}

func TestCompressorResetRestoresState(t *testing.T) {
	c, _ := NewCompressor(48000)
	_ = c.SetThreshold(-10)
	_ = c.SetRatio(8)

	in := make([]float64, 512)
	for i := range in {
		in[i] = math.Sin(float64(i) * 0.1)
	}

	first := append([]float64(nil), in...)
	c.ProcessInPlace(first)
	c.Reset()

	second := append([]float64(nil), in...)
	c.ProcessInPlace(second)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs after reset: %v vs %v", i, first[i], second[i])
		}
	}
}
